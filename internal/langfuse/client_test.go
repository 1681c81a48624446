package langfuse

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func flush(t *testing.T, c Client) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
}

// recorder captures ingestion requests.
type recorder struct {
	mu     sync.Mutex
	bodies []map[string]any
	auth   string
}

func (rec *recorder) handler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)

		rec.mu.Lock()
		if user, pass, ok := r.BasicAuth(); ok {
			rec.auth = user + ":" + pass
		}
		rec.bodies = append(rec.bodies, body)
		rec.mu.Unlock()

		w.WriteHeader(status)
	}
}

func (rec *recorder) event(t *testing.T) map[string]any {
	t.Helper()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.bodies) != 1 {
		t.Fatalf("expected 1 ingestion request, got %d", len(rec.bodies))
	}
	batch, ok := rec.bodies[0]["batch"].([]any)
	if !ok || len(batch) != 1 {
		t.Fatal("expected batch with 1 event")
	}
	return batch[0].(map[string]any)
}

func TestNewClient_Disabled(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"empty base URL", Config{PublicKey: "pk", SecretKey: "sk"}},
		{"empty public key", Config{BaseURL: "http://localhost", SecretKey: "sk"}},
		{"empty secret key", Config{BaseURL: "http://localhost", PublicKey: "pk"}},
		{"all empty", Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(tt.config)
			if c.IsEnabled() {
				t.Error("expected client to be disabled")
			}
		})
	}
}

func TestDisabledClient_IsNoop(t *testing.T) {
	c := NewClient(Config{})

	traceID, err := c.CreateTrace(context.Background(), TraceInput{Name: "coach-reply"})
	if err != nil || traceID != "" {
		t.Errorf("CreateTrace() = %q, %v; want empty, nil", traceID, err)
	}
	if err := c.CreateScore(context.Background(), ScoreInput{TraceID: "t", Name: "user_rating", Value: 4}); err != nil {
		t.Errorf("CreateScore() error = %v", err)
	}
	flush(t, c)
}

func TestCreateTrace_EnabledClient(t *testing.T) {
	rec := &recorder{}
	server := httptest.NewServer(rec.handler(http.StatusOK))
	defer server.Close()

	c := NewClient(Config{
		BaseURL:     server.URL,
		PublicKey:   "pk-test",
		SecretKey:   "sk-test",
		Environment: "testing",
	})

	traceID, err := c.CreateTrace(context.Background(), TraceInput{
		SessionID: "session-1",
		Name:      "coach-reply",
		Input:     map[string]any{"text": "How was my REM?"},
		Output:    map[string]any{"source": "scripted"},
		Tags:      []string{"sleep-dashboard"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if traceID == "" {
		t.Fatal("expected non-empty trace ID")
	}
	flush(t, c)

	if rec.auth != "pk-test:sk-test" {
		t.Errorf("expected auth pk-test:sk-test, got %s", rec.auth)
	}

	event := rec.event(t)
	if event["type"] != "trace-create" {
		t.Errorf("expected type trace-create, got %v", event["type"])
	}
	body := event["body"].(map[string]any)
	if body["id"] != traceID || body["name"] != "coach-reply" || body["sessionId"] != "session-1" {
		t.Errorf("unexpected trace body: %v", body)
	}
	metadata := body["metadata"].(map[string]any)
	if metadata["environment"] != "testing" {
		t.Errorf("expected environment testing, got %v", metadata["environment"])
	}
}

func TestCreateScore_EnabledClient(t *testing.T) {
	rec := &recorder{}
	server := httptest.NewServer(rec.handler(http.StatusOK))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, PublicKey: "pk-test", SecretKey: "sk-test"})

	err := c.CreateScore(context.Background(), ScoreInput{
		TraceID: "trace-abc123",
		Name:    "user_rating",
		Value:   4.5,
		Comment: "Very helpful",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	flush(t, c)

	event := rec.event(t)
	if event["type"] != "score-create" {
		t.Errorf("expected type score-create, got %v", event["type"])
	}
	body := event["body"].(map[string]any)
	if body["traceId"] != "trace-abc123" || body["name"] != "user_rating" || body["value"] != 4.5 || body["comment"] != "Very helpful" {
		t.Errorf("unexpected score body: %v", body)
	}
}

func TestCreateScore_RequiresTraceID(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:0", PublicKey: "pk", SecretKey: "sk"})
	if err := c.CreateScore(context.Background(), ScoreInput{Name: "user_rating", Value: 1}); err == nil {
		t.Fatal("expected error without trace id")
	}
}

func TestCreateTrace_ServerErrorIsLogged(t *testing.T) {
	rec := &recorder{}
	server := httptest.NewServer(rec.handler(http.StatusInternalServerError))
	defer server.Close()

	var logs bytes.Buffer
	c := NewClient(Config{
		BaseURL:   server.URL,
		PublicKey: "pk-test",
		SecretKey: "sk-test",
		Logger:    slog.New(slog.NewTextHandler(&logs, nil)),
	})

	traceID, err := c.CreateTrace(context.Background(), TraceInput{Name: "test"})
	if err != nil {
		t.Errorf("CreateTrace() error = %v, want nil (send is async)", err)
	}
	if traceID == "" {
		t.Error("expected trace ID even on error")
	}
	flush(t, c)

	if !strings.Contains(logs.String(), "status 500") {
		t.Errorf("expected failure to be logged, got: %s", logs.String())
	}
}
