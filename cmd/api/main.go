// Sleep Dashboard API
//
// Backend for the sleep dashboard: analyses uploaded EEG/wearable files through the
// analysis API, renders the history pattern and hosts the sleep coach.
//
//	@title			Sleep Dashboard API
//	@version		1.0
//	@description	Sleep data analysis, history patterns and an AI sleep coach.
//
//	@BasePath	/v1
//
//	@tag.name			analysis
//	@tag.description	Sleep data upload and analysis
//
//	@tag.name			reports
//	@tag.description	Current analysis report
//
//	@tag.name			patterns
//	@tag.description	History statistics, trend chart and heatmap
//
//	@tag.name			coach
//	@tag.description	Sleep coach chat and diagnosis
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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/blaisecz/sleep-dashboard/internal/analysis"
	"github.com/blaisecz/sleep-dashboard/internal/api"
	"github.com/blaisecz/sleep-dashboard/internal/api/handler"
	"github.com/blaisecz/sleep-dashboard/internal/config"
	"github.com/blaisecz/sleep-dashboard/internal/langfuse"
	"github.com/blaisecz/sleep-dashboard/internal/llm"
	"github.com/blaisecz/sleep-dashboard/internal/metrics"
	"github.com/blaisecz/sleep-dashboard/internal/repository"
	"github.com/blaisecz/sleep-dashboard/internal/service"
	"github.com/blaisecz/sleep-dashboard/internal/telemetry"
	"github.com/blaisecz/sleep-dashboard/internal/xslog"
)

const (
	serviceName     = "sleep-dashboard-api"
	shutdownTimeout = 30 * time.Second
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
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Error("failed to shut down tracer", xslog.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Analysis API client
	analysisClient := analysis.New(cfg.AnalysisAPIURL,
		analysis.WithHistoryPath(cfg.AnalysisHistoryPath),
		analysis.WithUploadTimeout(cfg.AnalysisUploadTimeout),
		analysis.WithLogger(logger),
	)

	// Initialize repositories
	reportRepo := repository.NewReportRepository()

	// Langfuse client (no-op when not configured)
	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
		Logger:      logger,
	})
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := langfuseClient.Flush(flushCtx); err != nil {
			logger.Warn("failed to flush langfuse events", xslog.Error(err))
		}
	}()

	// OpenAI client (nil if not configured, the coach then answers from its script)
	var coachLLM llm.CoachLLM
	if openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAICoachModel); openaiClient != nil {
		if prompt := loadCoachPrompt(ctx, cfg, logger); prompt != "" {
			openaiClient.SetSystemPrompt(prompt)
		}
		coachLLM = openaiClient
	} else {
		logger.WarnContext(ctx, "OpenAI API key not configured, coach will use scripted replies")
	}

	// Initialize services
	analysisService := service.NewAnalysisService(analysisClient, reportRepo, cfg.UploadMaxBytes, m, logger)
	patternService := service.NewPatternService(analysisClient, m, logger)
	coachService := service.NewCoachService(coachLLM, reportRepo, patternService, langfuseClient, m, logger)

	// Initialize handlers
	analysisHandler := handler.NewAnalysisHandler(analysisService, cfg.UploadMaxBytes)
	patternHandler := handler.NewPatternHandler(patternService)
	coachHandler := handler.NewCoachHandler(coachService)

	// Setup router
	router := api.NewRouter(analysisHandler, patternHandler, coachHandler,
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}), logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		// Uploads wait on the analysis model.
		WriteTimeout: cfg.AnalysisUploadTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "starting server",
			slog.String("addr", server.Addr),
			slog.String("analysis_api", cfg.AnalysisAPIURL),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

func loadCoachPrompt(ctx context.Context, cfg *config.Config, logger *slog.Logger) string {
	if cfg.CoachPromptName == "" && cfg.CoachPromptPath == "" {
		return ""
	}

	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	prompt, err := langfuse.LoadPrompt(loadCtx, langfuse.PromptLoaderConfig{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		PromptName:  cfg.CoachPromptName,
		PromptLabel: cfg.CoachPromptLabel,
		SavePath:    cfg.CoachPromptPath,
		Logger:      logger,
	})
	if err != nil {
		logger.WarnContext(ctx, "coach prompt unavailable, using built-in prompt", xslog.Error(err))
		return ""
	}
	logger.InfoContext(ctx, "coach prompt loaded", slog.String("prompt", cfg.CoachPromptName))
	return prompt
}
