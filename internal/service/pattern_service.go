package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
	"github.com/blaisecz/sleep-dashboard/internal/metrics"
	"github.com/blaisecz/sleep-dashboard/internal/pattern"
	"github.com/blaisecz/sleep-dashboard/internal/xslog"
)

const (
	historyFlightKey = "history"

	// historyFetchTimeout bounds the shared fetch, which outlives the caller that started it.
	historyFetchTimeout = 30 * time.Second
)

// PatternService serves the pattern page: history statistics, the trend chart and
// the score heatmap, plus the heatmap tooltip.
type PatternService interface {
	// Load fetches the history once and renders it. It never fails: an unavailable
	// history renders the empty pattern with status unavailable.
	Load(ctx context.Context) domain.PatternView
	// Current returns the last rendered view without fetching.
	Current() domain.PatternView
	// Focus shows the tooltip for the heatmap cell at index.
	// It returns domain.ErrNotFound when index is outside the rendered heatmap.
	Focus(index int) (domain.Tooltip, error)
	// Blur hides the tooltip.
	Blur()
}

type patternService struct {
	api     AnalysisAPI
	flight  singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu         sync.Mutex
	generation uint64
	pattern    domain.Pattern
	status     domain.PatternStatus
	hover      pattern.Hover
}

// NewPatternService creates a new PatternService with an empty rendered view.
func NewPatternService(api AnalysisAPI, m *metrics.Metrics, logger *slog.Logger) PatternService {
	if logger == nil {
		logger = slog.Default()
	}
	return &patternService{
		api:     api,
		metrics: m,
		logger:  logger,
		pattern: domain.EmptyPattern(),
		status:  domain.PatternStatusEmpty,
	}
}

func (s *patternService) Load(ctx context.Context) domain.PatternView {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	tracer := otel.Tracer("sleep-dashboard-api/pattern")
	ctx, span := tracer.Start(ctx, "PatternService.Load",
		trace.WithAttributes(attribute.Int64("pattern.generation", int64(gen))),
	)
	defer span.End()

	status := domain.PatternStatusReady
	p := domain.EmptyPattern()

	ch := s.flight.DoChan(historyFlightKey, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyFetchTimeout)
		defer cancel()
		return s.fetchHistory(fetchCtx)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		// Only this caller gives up; the fetch keeps running for the other waiters.
		res.Err = fmt.Errorf("%w: %w", domain.ErrHistoryUnavailable, ctx.Err())
	}
	span.SetAttributes(attribute.Bool("history.shared", res.Shared))
	if res.Err != nil {
		status = domain.PatternStatusUnavailable
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, "history unavailable")
	} else {
		p = pattern.Aggregate(res.Val.([]pattern.Record))
	}

	if outputJSON, err := json.Marshal(p.Stats); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// A newer activation started while this one was fetching; it owns the display.
		span.SetAttributes(attribute.Bool("pattern.superseded", true))
		return domain.PatternView{Status: status, Pattern: p}
	}
	s.pattern = p
	s.status = status
	s.hover.Leave()
	return s.viewLocked()
}

// fetchHistory runs at most once per concurrent burst of loads.
func (s *patternService) fetchHistory(ctx context.Context) ([]pattern.Record, error) {
	raw, err := s.api.History(ctx)
	if err != nil {
		s.metrics.ObserveHistoryFetch(metrics.OutcomeFailure, 0)
		s.logger.ErrorContext(ctx, "failed to fetch sleep history", xslog.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrHistoryUnavailable, err)
	}

	records, err := pattern.Parse(raw)
	if err != nil {
		s.metrics.ObserveHistoryFetch(metrics.OutcomeFailure, 0)
		s.logger.ErrorContext(ctx, "failed to decode sleep history",
			slog.Int("bytes", len(raw)),
			xslog.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrHistoryUnavailable, err)
	}

	s.metrics.ObserveHistoryFetch(metrics.OutcomeSuccess, len(records))
	s.logger.DebugContext(ctx, "sleep history fetched", slog.Int("records", len(records)))
	return records, nil
}

func (s *patternService) Current() domain.PatternView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *patternService) Focus(index int) (domain.Tooltip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tip, ok := s.hover.Enter(s.pattern.Heatmap, index)
	if !ok {
		return domain.Tooltip{}, fmt.Errorf("%w: heatmap cell %d", domain.ErrNotFound, index)
	}
	return tip, nil
}

func (s *patternService) Blur() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hover.Leave()
}

func (s *patternService) viewLocked() domain.PatternView {
	view := domain.PatternView{Status: s.status, Pattern: s.pattern}
	if tip, ok := s.hover.Current(); ok {
		view.Tooltip = &tip
	}
	return view
}
