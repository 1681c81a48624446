// Command mock-analysis serves a local stand-in for the sleep analysis API so the
// dashboard can run without the model.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blaisecz/sleep-dashboard/internal/config"
	"github.com/blaisecz/sleep-dashboard/internal/seed"
	"github.com/blaisecz/sleep-dashboard/internal/xslog"
)

func main() {
	cfg := config.Load()
	logger := xslog.NewLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	delay := 2 * time.Second
	if v := os.Getenv("MOCK_ANALYSIS_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid MOCK_ANALYSIS_DELAY: %w", err)
		}
		delay = d
	}

	mock := seed.NewServer(logger, seed.WithDelay(delay))
	server := &http.Server{
		Addr:              ":" + cfg.MockAnalysisPort,
		Handler:           mock.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "starting mock analysis api",
			slog.String("addr", server.Addr),
			slog.Int("history_days", seed.HistoryDays),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("mock analysis api stopped")
	return nil
}
