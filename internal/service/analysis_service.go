package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
	"github.com/blaisecz/sleep-dashboard/internal/metrics"
	"github.com/blaisecz/sleep-dashboard/internal/repository"
	"github.com/blaisecz/sleep-dashboard/internal/xslog"
)

const DefaultUploadMaxBytes = 32 << 20

// DataFileExtensions are the raw EEG/wearable export formats the analysis API accepts.
var DataFileExtensions = []string{".csv", ".txt"}

// AnalysisAPI is the part of the analysis API client the services depend on.
type AnalysisAPI interface {
	Upload(ctx context.Context, filename string, file io.Reader) (*domain.SleepReport, error)
	History(ctx context.Context) ([]byte, error)
}

// AnalysisService runs uploads through the analysis API and owns the current report.
type AnalysisService interface {
	// Upload analyses a data file and makes the result the current report.
	// On any failure the current report is left untouched.
	Upload(ctx context.Context, filename string, file io.Reader) (*domain.SleepReport, error)
	// Current returns the current report or domain.ErrNoReport.
	Current(ctx context.Context) (*domain.SleepReport, error)
	// Clear discards the current report.
	Clear(ctx context.Context) error
}

type analysisService struct {
	api        AnalysisAPI
	reportRepo repository.ReportRepository
	maxBytes   int64
	validate   *validator.Validate
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewAnalysisService creates a new AnalysisService. A non-positive maxBytes uses
// DefaultUploadMaxBytes.
func NewAnalysisService(
	api AnalysisAPI,
	reportRepo repository.ReportRepository,
	maxBytes int64,
	m *metrics.Metrics,
	logger *slog.Logger,
) AnalysisService {
	if maxBytes <= 0 {
		maxBytes = DefaultUploadMaxBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &analysisService{
		api:        api,
		reportRepo: reportRepo,
		maxBytes:   maxBytes,
		validate:   validator.New(),
		metrics:    m,
		logger:     logger,
	}
}

// IsDataFile reports whether filename has one of the accepted extensions.
func IsDataFile(filename string) bool {
	return slices.Contains(DataFileExtensions, strings.ToLower(filepath.Ext(filename)))
}

func (s *analysisService) Upload(ctx context.Context, filename string, file io.Reader) (*domain.SleepReport, error) {
	tracer := otel.Tracer("sleep-dashboard-api/analysis")
	ctx, span := tracer.Start(ctx, "AnalysisService.Upload",
		trace.WithAttributes(attribute.String("file.name", filename)),
	)
	defer span.End()

	data, err := s.readUpload(filename, file)
	if err != nil {
		s.metrics.ObserveUpload(metrics.OutcomeRejected)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("file.size", len(data)))

	report, err := s.api.Upload(ctx, filename, bytes.NewReader(data))
	if err == nil && report == nil {
		err = errors.New("empty response")
	}
	if err == nil {
		if verr := s.validate.Struct(report); verr != nil {
			err = fmt.Errorf("invalid report: %w", verr)
		}
	}
	if err != nil {
		s.metrics.ObserveUpload(metrics.OutcomeFailure)
		span.RecordError(err)
		span.SetStatus(codes.Error, "analysis failed")
		s.logger.ErrorContext(ctx, "sleep analysis failed",
			slog.String("file", filename),
			xslog.Error(err),
		)
		if errors.Is(err, domain.ErrAnalysisFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrAnalysisFailed, err)
	}

	if err := s.reportRepo.Set(ctx, report); err != nil {
		s.metrics.ObserveUpload(metrics.OutcomeFailure)
		span.RecordError(err)
		return nil, fmt.Errorf("storing report: %w", err)
	}

	s.metrics.ObserveUpload(metrics.OutcomeSuccess)
	s.logger.InfoContext(ctx, "sleep report stored",
		slog.String("report_id", report.ID),
		slog.String("date", report.Date),
	)

	outputPayload := map[string]any{
		"report_id":        report.ID,
		"date":             report.Date,
		"total_sleep_time": report.Summary.TotalSleepTime,
		"sleep_efficiency": report.Summary.SleepEfficiency,
		"stages":           len(report.Stages),
	}
	if outputJSON, err := json.Marshal(outputPayload); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
	}

	return report, nil
}

func (s *analysisService) readUpload(filename string, file io.Reader) ([]byte, error) {
	if filename == "" {
		return nil, fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}
	if !IsDataFile(filename) {
		return nil, fmt.Errorf("%w: unsupported file type %q, expected one of %s",
			domain.ErrInvalidInput, filepath.Ext(filename), strings.Join(DataFileExtensions, ", "))
	}

	data, err := io.ReadAll(io.LimitReader(file, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", domain.ErrInvalidInput)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", domain.ErrFileTooLarge, s.maxBytes)
	}
	return data, nil
}

func (s *analysisService) Current(ctx context.Context) (*domain.SleepReport, error) {
	return s.reportRepo.Get(ctx)
}

func (s *analysisService) Clear(ctx context.Context) error {
	return s.reportRepo.Clear(ctx)
}
