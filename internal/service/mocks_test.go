package service

import (
	"context"
	"io"
	"sync"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
	"github.com/blaisecz/sleep-dashboard/internal/langfuse"
	"github.com/blaisecz/sleep-dashboard/internal/llm"
)

// MockAnalysisAPI is a mock implementation of AnalysisAPI
type MockAnalysisAPI struct {
	UploadFunc  func(ctx context.Context, filename string, file io.Reader) (*domain.SleepReport, error)
	HistoryFunc func(ctx context.Context) ([]byte, error)

	mu           sync.Mutex
	uploadCalls  int
	historyCalls int
}

func (m *MockAnalysisAPI) Upload(ctx context.Context, filename string, file io.Reader) (*domain.SleepReport, error) {
	m.mu.Lock()
	m.uploadCalls++
	m.mu.Unlock()
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, filename, file)
	}
	return nil, nil
}

func (m *MockAnalysisAPI) History(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	m.historyCalls++
	m.mu.Unlock()
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx)
	}
	return []byte(`[]`), nil
}

func (m *MockAnalysisAPI) calls() (uploads, histories int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploadCalls, m.historyCalls
}

// MockReportRepository is a mock implementation of ReportRepository
type MockReportRepository struct {
	report *domain.SleepReport
	err    error
}

func (m *MockReportRepository) Get(ctx context.Context) (*domain.SleepReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.report == nil {
		return nil, domain.ErrNoReport
	}
	return m.report.Clone(), nil
}

func (m *MockReportRepository) Set(ctx context.Context, report *domain.SleepReport) error {
	if m.err != nil {
		return m.err
	}
	m.report = report.Clone()
	return nil
}

func (m *MockReportRepository) Clear(ctx context.Context) error {
	m.report = nil
	return nil
}

// MockCoachLLM is a mock implementation of llm.CoachLLM
type MockCoachLLM struct {
	GenerateReplyFunc func(ctx context.Context, in llm.CoachInput) (string, error)
	lastInput         llm.CoachInput
}

func (m *MockCoachLLM) GenerateReply(ctx context.Context, in llm.CoachInput) (string, error) {
	m.lastInput = in
	if m.GenerateReplyFunc != nil {
		return m.GenerateReplyFunc(ctx, in)
	}
	return "", llm.ErrOpenAIUnavailable
}

// MockLangfuseClient is a mock implementation of langfuse.Client
type MockLangfuseClient struct {
	enabled bool
	traces  []langfuse.TraceInput
	scores  []langfuse.ScoreInput
}

func (m *MockLangfuseClient) IsEnabled() bool { return m.enabled }

func (m *MockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	m.traces = append(m.traces, in)
	if in.ID != "" {
		return in.ID, nil
	}
	return "trace-generated", nil
}

func (m *MockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.scores = append(m.scores, in)
	return nil
}

func (m *MockLangfuseClient) Flush(ctx context.Context) error { return nil }

// MockPatternService is a mock implementation of PatternService
type MockPatternService struct {
	view domain.PatternView
}

func (m *MockPatternService) Load(ctx context.Context) domain.PatternView { return m.view }

func (m *MockPatternService) Current() domain.PatternView { return m.view }

func (m *MockPatternService) Focus(index int) (domain.Tooltip, error) {
	return domain.Tooltip{}, domain.ErrNotFound
}

func (m *MockPatternService) Blur() {}

func demoReport() *domain.SleepReport {
	score := 85.0
	return &domain.SleepReport{
		ID:   "report_2025_grad",
		Date: "2025-05-20",
		Summary: domain.ReportSummary{
			TotalSleepTime:  450,
			SleepEfficiency: 88,
			Stages:          domain.StageBreakdown{Wake: 15, REM: 22, Light: 45, Deep: 18},
		},
		Stages: []domain.StageSegment{
			{StartTime: "23:00", EndTime: "23:15", Stage: domain.StageWake, Level: 5, Confidence: 0.98},
		},
		SleepScore: &score,
	}
}
