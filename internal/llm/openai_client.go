package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const DefaultModel = "gpt-4o-mini"

const systemPrompt = `You are a non-medical sleep coach inside a sleep analysis dashboard.

You receive the user's question, and, when available, their latest EEG-based sleep report
(six-stage hypnogram W/N1/N2/N3/N4/R, stage shares in percent, total sleep time in minutes,
sleep efficiency in percent) and aggregate statistics over their report history.

Rules:
- Base every statement only on the provided data. If no report is provided, say so and answer generally.
- Do NOT provide medical advice or diagnoses.
- Do NOT mention diseases, disorders, doctors, or treatment.
- Focus on behavior and routines (bedtime regularity, light exposure, activity, wind-down habits).
- Answer in the language of the question.
- Be concise: at most 4 sentences.

You must respond as strict JSON with exactly this shape:

{
  "reply": "your answer"
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Question:

%s

Sleep data JSON ("report" is the latest night, "history" aggregates past reports; either may be absent):

%s

Respond in the required JSON format.`

// CoachInput is the data a coach reply is grounded on.
type CoachInput struct {
	Question string                 `json:"-"`
	Report   *domain.SleepReport    `json:"report,omitempty"`
	History  *domain.AggregateStats `json:"history,omitempty"`
}

// CoachLLM is the interface for generating coach replies using an LLM.
type CoachLLM interface {
	// GenerateReply answers the question in the input.
	GenerateReply(ctx context.Context, in CoachInput) (string, error)
}

// OpenAIClient implements CoachLLM using the OpenAI API.
type OpenAIClient struct {
	client       openai.Client
	model        string
	systemPrompt string
}

// NewOpenAIClient creates a new OpenAI client for coach replies.
// Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model string, opts ...option.RequestOption) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = DefaultModel
	}

	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)

	return &OpenAIClient{
		client:       client,
		model:        model,
		systemPrompt: systemPrompt,
	}
}

// SetSystemPrompt replaces the built-in system prompt. Blank prompts are ignored.
func (c *OpenAIClient) SetSystemPrompt(prompt string) {
	if c == nil || strings.TrimSpace(prompt) == "" {
		return
	}
	c.systemPrompt = prompt
}

type replyOutput struct {
	Reply string `json:"reply"`
}

// GenerateReply calls OpenAI to answer a coach question.
func (c *OpenAIClient) GenerateReply(ctx context.Context, in CoachInput) (string, error) {
	if c == nil {
		return "", ErrOpenAIUnavailable
	}

	contextJSON, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, in.Question, string(contextJSON))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	var output replyOutput
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &output); err != nil {
		return "", fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}
	reply := strings.TrimSpace(output.Reply)
	if reply == "" {
		return "", fmt.Errorf("%w: empty reply", ErrOpenAIResponse)
	}

	return reply, nil
}
