package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAnalysisAPIURL      = "http://localhost:8000/api/v1"
	DefaultAnalysisHistoryPath = "/analysis/history"
	DefaultUploadTimeout       = 60 * time.Second
	DefaultUploadMaxBytes      = 32 << 20
)

type Config struct {
	Port     string
	LogLevel string

	// Analysis API configuration
	AnalysisAPIURL        string
	AnalysisHistoryPath   string
	AnalysisUploadTimeout time.Duration
	UploadMaxBytes        int64

	// OpenAI configuration
	OpenAIAPIKey     string
	OpenAICoachModel string

	// Coach prompt (Langfuse prompt management, with local file fallback)
	CoachPromptName  string
	CoachPromptLabel string
	CoachPromptPath  string

	// Langfuse configuration
	LangfuseBaseURL   string
	LangfusePublicKey string
	LangfuseSecretKey string
	LangfuseEnv       string

	// Port of the local mock analysis API (cmd/mock-analysis)
	MockAnalysisPort string
}

func Load() *Config {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AnalysisAPIURL:        getEnv("ANALYSIS_API_URL", DefaultAnalysisAPIURL),
		AnalysisHistoryPath:   getEnv("ANALYSIS_HISTORY_PATH", DefaultAnalysisHistoryPath),
		AnalysisUploadTimeout: getDuration("ANALYSIS_UPLOAD_TIMEOUT", DefaultUploadTimeout),
		UploadMaxBytes:        getInt64("UPLOAD_MAX_BYTES", DefaultUploadMaxBytes),

		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAICoachModel: getEnv("OPENAI_COACH_MODEL", "gpt-4o-mini"),

		CoachPromptName:  getEnv("COACH_PROMPT_NAME", ""),
		CoachPromptLabel: getEnv("COACH_PROMPT_LABEL", "production"),
		CoachPromptPath:  getEnv("COACH_PROMPT_PATH", ""),

		LangfuseBaseURL:   getEnv("LANGFUSE_BASE_URL", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseEnv:       getEnv("LANGFUSE_ENV", "development"),

		MockAnalysisPort: getEnv("MOCK_ANALYSIS_PORT", "8000"),
	}
}

// LangfuseEnabled reports whether all Langfuse credentials are set.
func (c *Config) LangfuseEnabled() bool {
	return c.LangfuseBaseURL != "" && c.LangfusePublicKey != "" && c.LangfuseSecretKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go durations ("90s") or a bare number of seconds.
// Invalid or non-positive values fall back to the default.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
