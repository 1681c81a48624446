package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/blaisecz/sleep-dashboard/internal/config"
	"github.com/blaisecz/sleep-dashboard/internal/langfuse"
)

func langfuseCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "langfuse",
		Short: "Check the Langfuse connection",
		Long:  "Sends a test trace to Langfuse and loads the coach prompt when COACH_PROMPT_NAME is set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Base URL:    %s\n", cfg.LangfuseBaseURL)
			fmt.Fprintf(out, "Public Key:  %s\n", maskKey(cfg.LangfusePublicKey))
			fmt.Fprintf(out, "Secret Key:  %s\n", maskKey(cfg.LangfuseSecretKey))
			fmt.Fprintf(out, "Environment: %s\n\n", cfg.LangfuseEnv)

			client := langfuse.NewClient(langfuse.Config{
				BaseURL:     cfg.LangfuseBaseURL,
				PublicKey:   cfg.LangfusePublicKey,
				SecretKey:   cfg.LangfuseSecretKey,
				Environment: cfg.LangfuseEnv,
				Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
			})
			if !client.IsEnabled() {
				return errors.New("langfuse is disabled, set LANGFUSE_BASE_URL, LANGFUSE_PUBLIC_KEY and LANGFUSE_SECRET_KEY")
			}

			ctx := cmd.Context()
			traceID, err := client.CreateTrace(ctx, langfuse.TraceInput{
				Name:   "sleepctl-check",
				Input:  map[string]any{"time": time.Now().Format(time.RFC3339)},
				Output: map[string]any{"status": "success"},
				Tags:   []string{"test", "manual"},
			})
			if err != nil {
				return fmt.Errorf("failed to create trace: %w", err)
			}
			if err := client.Flush(ctx); err != nil {
				return fmt.Errorf("failed to send trace: %w", err)
			}
			fmt.Fprintf(out, "Trace %s sent, view at %s/trace/%s\n", traceID, cfg.LangfuseBaseURL, traceID)

			if cfg.CoachPromptName == "" {
				return nil
			}
			prompt, err := langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
				BaseURL:     cfg.LangfuseBaseURL,
				PublicKey:   cfg.LangfusePublicKey,
				SecretKey:   cfg.LangfuseSecretKey,
				PromptName:  cfg.CoachPromptName,
				PromptLabel: cfg.CoachPromptLabel,
				SavePath:    cfg.CoachPromptPath,
			})
			if err != nil {
				return fmt.Errorf("failed to load prompt %q: %w", cfg.CoachPromptName, err)
			}
			fmt.Fprintf(out, "Prompt %q (%s): %d chars\n", cfg.CoachPromptName, cfg.CoachPromptLabel, len(prompt))
			return nil
		},
	}
}

func maskKey(key string) string {
	if len(key) < 8 {
		if key == "" {
			return "(empty)"
		}
		return "***"
	}
	return key[:8] + "..."
}
