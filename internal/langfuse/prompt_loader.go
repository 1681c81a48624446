package langfuse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/blaisecz/sleep-dashboard/internal/xslog"
)

// PromptLoaderConfig describes how to load a prompt from Langfuse or fallback storage.
type PromptLoaderConfig struct {
	BaseURL   string
	PublicKey string
	SecretKey string

	PromptName  string
	PromptLabel string
	// SavePath caches the last fetched prompt and serves as the fallback.
	SavePath string

	Logger *slog.Logger
}

var (
	errLangfuseDisabled = errors.New("langfuse integration disabled")
	// ErrNoPrompt means neither Langfuse nor the local file produced a prompt.
	ErrNoPrompt = errors.New("no prompt available")
)

// LoadPrompt retrieves a prompt from Langfuse with an optional local fallback.
func LoadPrompt(ctx context.Context, cfg PromptLoaderConfig) (string, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.PromptName == "" {
		return readPromptFromFile(cfg.SavePath)
	}

	prompt, err := fetchPromptFromLangfuse(ctx, cfg)
	if err == nil {
		if err := savePromptToFile(cfg.SavePath, prompt); err != nil {
			logger.WarnContext(ctx, "failed to cache prompt locally", slog.String("path", cfg.SavePath), xslog.Error(err))
		}
		return prompt, nil
	}
	if !errors.Is(err, errLangfuseDisabled) {
		logger.WarnContext(ctx, "prompt fetch failed", slog.String("prompt", cfg.PromptName), xslog.Error(err))
	}

	return readPromptFromFile(cfg.SavePath)
}

func fetchPromptFromLangfuse(ctx context.Context, cfg PromptLoaderConfig) (string, error) {
	if cfg.BaseURL == "" || cfg.PublicKey == "" || cfg.SecretKey == "" {
		return "", errLangfuseDisabled
	}

	parsed, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid LANGFUSE_BASE_URL: %w", err)
	}
	parsed.Path = strings.TrimSuffix(parsed.Path, "/") + "/api/public/v2/prompts/" + url.PathEscape(cfg.PromptName)
	if cfg.PromptLabel != "" {
		parsed.RawQuery = url.Values{"label": {cfg.PromptLabel}}.Encode()
	}

	requestCtx, cancel := context.WithTimeout(ctx, asyncTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create prompt request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(cfg.PublicKey, cfg.SecretKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call Langfuse prompt API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read Langfuse prompt response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Langfuse prompt API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return parsePrompt(body)
}

// parsePrompt extracts the prompt text from a Langfuse prompt object. Chat prompts
// are flattened to "ROLE: content" blocks.
func parsePrompt(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", errors.New("decode Langfuse prompt response: invalid JSON")
	}
	res := gjson.ParseBytes(body)

	prompt := res.Get("prompt")
	switch typ := res.Get("type").String(); typ {
	case "", "text":
		if prompt.Type != gjson.String {
			return "", errors.New("parse text prompt: prompt is not a string")
		}
		return prompt.String(), nil
	case "chat":
		if !prompt.IsArray() {
			return "", errors.New("parse chat prompt: prompt is not an array")
		}
		var builder strings.Builder
		for _, msg := range prompt.Array() {
			content := chatMessageContent(msg)
			if content == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n\n")
			}
			role := msg.Get("role").String()
			if role == "" {
				role = "message"
			}
			builder.WriteString(strings.ToUpper(role))
			builder.WriteString(": ")
			builder.WriteString(content)
		}
		return builder.String(), nil
	default:
		return "", fmt.Errorf("unsupported prompt type %q", typ)
	}
}

func chatMessageContent(msg gjson.Result) string {
	if msg.Get("type").String() == "placeholder" {
		if name := msg.Get("name").String(); name != "" {
			return "{{" + name + "}}"
		}
		return ""
	}
	return msg.Get("content").String()
}

func readPromptFromFile(path string) (string, error) {
	if path == "" {
		return "", ErrNoPrompt
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read local prompt file: %w", ErrNoPrompt, err)
	}
	return string(data), nil
}

func savePromptToFile(path, prompt string) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(prompt), 0o600)
}
