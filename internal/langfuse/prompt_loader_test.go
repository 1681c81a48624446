package langfuse

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestParsePrompt(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"text", `{"type":"text","prompt":"Be a calm coach."}`, "Be a calm coach.", false},
		{"untyped text", `{"prompt":"Plain."}`, "Plain.", false},
		{
			"chat",
			`{"type":"chat","prompt":[{"role":"system","content":"Be brief."},{"type":"placeholder","name":"history"},{"role":"user","content":""}]}`,
			"SYSTEM: Be brief.\n\nMESSAGE: {{history}}",
			false,
		},
		{"unknown type", `{"type":"image","prompt":"x"}`, "", true},
		{"text not string", `{"type":"text","prompt":{"a":1}}`, "", true},
		{"invalid json", `{"type":`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePrompt([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePrompt() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parsePrompt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadPrompt_FetchAndCache(t *testing.T) {
	var gotPath, gotLabel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLabel = r.URL.Query().Get("label")
		_, _ = io.WriteString(w, `{"type":"text","prompt":"Remote prompt"}`)
	}))
	defer server.Close()

	cache := filepath.Join(t.TempDir(), "prompts", "coach.txt")
	got, err := LoadPrompt(context.Background(), PromptLoaderConfig{
		BaseURL:     server.URL,
		PublicKey:   "pk",
		SecretKey:   "sk",
		PromptName:  "sleep-coach",
		PromptLabel: "production",
		SavePath:    cache,
	})
	if err != nil {
		t.Fatalf("LoadPrompt() error = %v", err)
	}
	if got != "Remote prompt" {
		t.Errorf("LoadPrompt() = %q", got)
	}
	if gotPath != "/api/public/v2/prompts/sleep-coach" || gotLabel != "production" {
		t.Errorf("unexpected request path %q label %q", gotPath, gotLabel)
	}

	cached, err := os.ReadFile(cache)
	if err != nil || string(cached) != "Remote prompt" {
		t.Errorf("prompt not cached: %q, %v", cached, err)
	}
}

func TestLoadPrompt_FallsBackToFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cache := filepath.Join(t.TempDir(), "coach.txt")
	if err := os.WriteFile(cache, []byte("Cached prompt"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadPrompt(context.Background(), PromptLoaderConfig{
		BaseURL:    server.URL,
		PublicKey:  "pk",
		SecretKey:  "sk",
		PromptName: "sleep-coach",
		SavePath:   cache,
	})
	if err != nil || got != "Cached prompt" {
		t.Fatalf("LoadPrompt() = %q, %v; want cached prompt", got, err)
	}
}

func TestLoadPrompt_NothingConfigured(t *testing.T) {
	_, err := LoadPrompt(context.Background(), PromptLoaderConfig{PromptName: "sleep-coach"})
	if !errors.Is(err, ErrNoPrompt) {
		t.Fatalf("LoadPrompt() error = %v, want ErrNoPrompt", err)
	}
}
