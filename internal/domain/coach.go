package domain

import "time"

// ChatSender identifies who wrote a chat message.
type ChatSender string

const (
	SenderUser  ChatSender = "user"
	SenderCoach ChatSender = "ai"
)

// ReplySource tells where a coach reply came from.
type ReplySource string

const (
	ReplySourceScripted ReplySource = "scripted"
	ReplySourceLLM      ReplySource = "llm"
)

// ChatMessage is one line of the coach conversation.
// @Description Coach chat message.
type ChatMessage struct {
	ID        string     `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Sender    ChatSender `json:"sender" example:"ai"`
	Text      string     `json:"text" example:"Deep sleep (N3) is essential for physical recovery."`
	Timestamp time.Time  `json:"timestamp" example:"2025-05-20T09:00:00Z"`
}

// CoachMessageRequest is the request body for asking the coach.
// @Description Question for the sleep coach.
type CoachMessageRequest struct {
	// Question text (1-1000 chars)
	Text string `json:"text" validate:"required,notblank,max=1000" example:"How was my deep sleep?"`
}

// CoachReply is the coach's answer to one question.
// @Description Coach answer with provenance.
type CoachReply struct {
	Message ChatMessage `json:"message"`
	Source  ReplySource `json:"source" example:"scripted"`
	// Trace ID for feedback (only present when Langfuse is enabled)
	TraceID string `json:"trace_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// CoachFeedbackRequest is the request body for rating a coach reply.
// @Description Rating for a previous coach reply.
type CoachFeedbackRequest struct {
	TraceID string `json:"trace_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Score   int    `json:"score" validate:"required,min=1,max=5" example:"4"`
	Comment string `json:"comment,omitempty" validate:"omitempty,max=1000" example:"Helpful"`
}

// Impact ranks how much a prescription is expected to help.
type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
	ImpactLow    Impact = "Low"
)

// Prescription is one behavioral recommendation of a diagnosis.
type Prescription struct {
	ID       int    `json:"id" example:"1"`
	Category string `json:"category" example:"Sleep Stage"`
	Issue    string `json:"issue" example:"N3 (deep sleep) share below 8%"`
	Cause    string `json:"cause" example:"High body temperature and smartphone use before bed"`
	Solution string `json:"solution" example:"Block blue light two hours before bed"`
	Impact   Impact `json:"impact" example:"High"`
}

// Diagnosis is the coach's overall verdict shown next to the chat.
// @Description Coach diagnosis card with prescriptions.
type Diagnosis struct {
	// Good, Warning or Bad
	Status        string         `json:"status" example:"Warning"`
	Title         string         `json:"title" example:"Lack of deep sleep (N3) and frequent awakenings"`
	Summary       string         `json:"summary"`
	Prescriptions []Prescription `json:"prescriptions"`
}
