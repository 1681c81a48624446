package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
	"github.com/blaisecz/sleep-dashboard/internal/langfuse"
	"github.com/blaisecz/sleep-dashboard/internal/llm"
	"github.com/blaisecz/sleep-dashboard/internal/metrics"
	"github.com/blaisecz/sleep-dashboard/internal/repository"
	"github.com/blaisecz/sleep-dashboard/internal/xslog"
)

const (
	// maxTranscript bounds the kept conversation, greeting included.
	maxTranscript = 200

	feedbackScoreName = "user_rating"
)

// CoachService is the sleep coach chat.
type CoachService interface {
	// Greeting returns the coach's opening message.
	Greeting() domain.ChatMessage
	// Messages returns the conversation so far, oldest first.
	Messages() []domain.ChatMessage
	// Reply answers a question. Without an LLM, or when the LLM fails, the answer
	// comes from the scripted topic table.
	Reply(ctx context.Context, text string) (*domain.CoachReply, error)
	// Feedback records a rating for a previous reply.
	Feedback(ctx context.Context, req domain.CoachFeedbackRequest) error
	// Diagnosis returns the diagnosis card.
	Diagnosis() domain.Diagnosis
}

type coachService struct {
	llmClient      llm.CoachLLM
	reportRepo     repository.ReportRepository
	patterns       PatternService
	langfuseClient langfuse.Client
	metrics        *metrics.Metrics
	logger         *slog.Logger
	now            func() time.Time
	sessionID      string

	mu         sync.Mutex
	greeting   domain.ChatMessage
	transcript []domain.ChatMessage
}

// NewCoachService creates a new CoachService. llmClient and patterns may be nil.
func NewCoachService(
	llmClient llm.CoachLLM,
	reportRepo repository.ReportRepository,
	patterns PatternService,
	langfuseClient langfuse.Client,
	m *metrics.Metrics,
	logger *slog.Logger,
) CoachService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &coachService{
		llmClient:      llmClient,
		reportRepo:     reportRepo,
		patterns:       patterns,
		langfuseClient: langfuseClient,
		metrics:        m,
		logger:         logger,
		now:            time.Now,
		sessionID:      uuid.New().String(),
	}
	s.greeting = s.message(domain.SenderCoach, greetingText)
	s.transcript = []domain.ChatMessage{s.greeting}
	return s
}

func (s *coachService) Greeting() domain.ChatMessage {
	return s.greeting
}

func (s *coachService) Messages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ChatMessage(nil), s.transcript...)
}

func (s *coachService) Diagnosis() domain.Diagnosis {
	d := defaultDiagnosis
	d.Prescriptions = append([]domain.Prescription(nil), defaultDiagnosis.Prescriptions...)
	return d
}

func (s *coachService) Reply(ctx context.Context, text string) (*domain.CoachReply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", domain.ErrInvalidInput)
	}

	tracer := otel.Tracer("sleep-dashboard-api/coach")
	ctx, span := tracer.Start(ctx, "CoachService.Reply")
	defer span.End()
	span.SetAttributes(attribute.String("langfuse.observation.input", text))

	question := s.message(domain.SenderUser, text)

	report, err := s.reportRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoReport) {
			s.logger.WarnContext(ctx, "failed to read current report", xslog.Error(err))
		}
		report = nil
	}

	topic, answer := ScriptedReply(text, report)
	source := domain.ReplySourceScripted

	if s.llmClient != nil {
		in := llm.CoachInput{Question: text, Report: report, History: s.historyStats()}
		generated, err := s.llmClient.GenerateReply(ctx, in)
		switch {
		case err == nil:
			answer = generated
			source = domain.ReplySourceLLM
			topic = ""
		case errors.Is(err, llm.ErrOpenAIUnavailable):
		default:
			span.RecordError(err)
			s.logger.WarnContext(ctx, "llm coach reply failed, using scripted reply", xslog.Error(err))
		}
	}

	span.SetAttributes(
		attribute.String("coach.source", string(source)),
		attribute.String("langfuse.observation.output", answer),
	)
	if topic != "" {
		span.SetAttributes(attribute.String("coach.topic", topic))
	}

	reply := &domain.CoachReply{
		Message: s.message(domain.SenderCoach, answer),
		Source:  source,
	}
	reply.TraceID = s.trace(ctx, span, text, reply, report != nil)

	s.metrics.ObserveCoachReply(string(source))

	s.mu.Lock()
	s.transcript = append(s.transcript, question, reply.Message)
	if over := len(s.transcript) - maxTranscript; over > 0 {
		// Keep the greeting and drop the oldest exchanges.
		s.transcript = append(s.transcript[:1], s.transcript[1+over:]...)
	}
	s.mu.Unlock()

	return reply, nil
}

// trace records the exchange in Langfuse and returns the trace ID used for feedback.
func (s *coachService) trace(ctx context.Context, span trace.Span, question string, reply *domain.CoachReply, hasReport bool) string {
	if s.langfuseClient == nil || !s.langfuseClient.IsEnabled() {
		return ""
	}

	var traceID string
	if sc := span.SpanContext(); sc.IsValid() {
		traceID = sc.TraceID().String()
	}

	id, err := s.langfuseClient.CreateTrace(ctx, langfuse.TraceInput{
		ID:        traceID,
		SessionID: s.sessionID,
		Name:      "coach-reply",
		Input:     map[string]any{"text": question, "has_report": hasReport},
		Output:    map[string]any{"text": reply.Message.Text, "source": reply.Source},
		Tags:      []string{"sleep-dashboard", "coach"},
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to create coach trace", xslog.Error(err))
		return ""
	}
	return id
}

func (s *coachService) historyStats() *domain.AggregateStats {
	if s.patterns == nil {
		return nil
	}
	view := s.patterns.Current()
	if view.Status != domain.PatternStatusReady || view.Stats.Count == 0 {
		return nil
	}
	return &view.Stats
}

func (s *coachService) Feedback(ctx context.Context, req domain.CoachFeedbackRequest) error {
	if req.TraceID == "" {
		return fmt.Errorf("%w: trace_id is required", domain.ErrInvalidInput)
	}
	if req.Score < 1 || req.Score > 5 {
		return fmt.Errorf("%w: score must be between 1 and 5", domain.ErrInvalidInput)
	}

	if s.langfuseClient == nil || !s.langfuseClient.IsEnabled() {
		s.logger.InfoContext(ctx, "coach feedback received without langfuse",
			slog.String("trace_id", req.TraceID),
			slog.Int("score", req.Score),
		)
		return nil
	}

	if err := s.langfuseClient.CreateScore(ctx, langfuse.ScoreInput{
		TraceID: req.TraceID,
		Name:    feedbackScoreName,
		Value:   float64(req.Score),
		Comment: req.Comment,
	}); err != nil {
		return fmt.Errorf("recording feedback: %w", err)
	}
	return nil
}

func (s *coachService) message(sender domain.ChatSender, text string) domain.ChatMessage {
	return domain.ChatMessage{
		ID:        uuid.New().String(),
		Sender:    sender,
		Text:      text,
		Timestamp: s.now().UTC(),
	}
}
