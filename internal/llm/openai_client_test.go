package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/v3/option"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
)

func TestNewOpenAIClient_NoKey(t *testing.T) {
	if c := NewOpenAIClient("", ""); c != nil {
		t.Fatal("expected nil client without API key")
	}

	var c *OpenAIClient
	if _, err := c.GenerateReply(context.Background(), CoachInput{Question: "hi"}); !errors.Is(err, ErrOpenAIUnavailable) {
		t.Fatalf("expected ErrOpenAIUnavailable, got %v", err)
	}
}

func completionServer(t *testing.T, content string, gotPrompt *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if gotPrompt != nil {
			*gotPrompt = string(body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": `+content+`}}]
		}`)
	}))
}

func TestGenerateReply(t *testing.T) {
	var prompt string
	srv := completionServer(t, `"{\"reply\": \"Your deep sleep share was 18%.\"}"`, &prompt)
	defer srv.Close()

	c := NewOpenAIClient("sk-test", "", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	reply, err := c.GenerateReply(context.Background(), CoachInput{
		Question: "How was my deep sleep?",
		Report:   &domain.SleepReport{ID: "r1", Date: "2025-05-20", Summary: domain.ReportSummary{Stages: domain.StageBreakdown{Deep: 18}}},
	})
	if err != nil {
		t.Fatalf("GenerateReply() error = %v", err)
	}
	if reply != "Your deep sleep share was 18%." {
		t.Errorf("reply = %q", reply)
	}
	if !strings.Contains(prompt, "How was my deep sleep?") || !strings.Contains(prompt, "2025-05-20") {
		t.Errorf("prompt missing question or report: %s", prompt)
	}
}

func TestGenerateReply_BadContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `"sure, here you go"`},
		{"empty reply", `"{\"reply\": \"  \"}"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := completionServer(t, tt.content, nil)
			defer srv.Close()

			c := NewOpenAIClient("sk-test", "gpt-4o-mini", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
			_, err := c.GenerateReply(context.Background(), CoachInput{Question: "?"})
			if !errors.Is(err, ErrOpenAIResponse) {
				t.Fatalf("expected ErrOpenAIResponse, got %v", err)
			}
		})
	}
}

func TestGenerateReply_RequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewOpenAIClient("sk-test", "", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	if _, err := c.GenerateReply(context.Background(), CoachInput{Question: "?"}); !errors.Is(err, ErrOpenAIRequest) {
		t.Fatalf("expected ErrOpenAIRequest, got %v", err)
	}
}

func TestSetSystemPrompt(t *testing.T) {
	var prompt string
	srv := completionServer(t, `"{\"reply\": \"ok\"}"`, &prompt)
	defer srv.Close()

	c := NewOpenAIClient("sk-test", "", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	c.SetSystemPrompt("   ")
	c.SetSystemPrompt("You are a terse coach.")

	if _, err := c.GenerateReply(context.Background(), CoachInput{Question: "?"}); err != nil {
		t.Fatalf("GenerateReply() error = %v", err)
	}
	if !strings.Contains(prompt, "You are a terse coach.") {
		t.Errorf("custom system prompt not sent: %s", prompt)
	}
}
