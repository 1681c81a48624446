package handler

import (
	"context"
	"io"
	"time"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
)

// MockAnalysisService is a mock implementation of AnalysisService
type MockAnalysisService struct {
	uploadFunc  func(ctx context.Context, filename string, file io.Reader) (*domain.SleepReport, error)
	currentFunc func(ctx context.Context) (*domain.SleepReport, error)
	clearFunc   func(ctx context.Context) error
}

func (m *MockAnalysisService) Upload(ctx context.Context, filename string, file io.Reader) (*domain.SleepReport, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, filename, file)
	}
	return testReport(), nil
}

func (m *MockAnalysisService) Current(ctx context.Context) (*domain.SleepReport, error) {
	if m.currentFunc != nil {
		return m.currentFunc(ctx)
	}
	return nil, domain.ErrNoReport
}

func (m *MockAnalysisService) Clear(ctx context.Context) error {
	if m.clearFunc != nil {
		return m.clearFunc(ctx)
	}
	return nil
}

// MockPatternService is a mock implementation of PatternService
type MockPatternService struct {
	loadFunc  func(ctx context.Context) domain.PatternView
	focusFunc func(index int) (domain.Tooltip, error)
	view      domain.PatternView
	blurred   bool
}

func (m *MockPatternService) Load(ctx context.Context) domain.PatternView {
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	return m.view
}

func (m *MockPatternService) Current() domain.PatternView { return m.view }

func (m *MockPatternService) Focus(index int) (domain.Tooltip, error) {
	if m.focusFunc != nil {
		return m.focusFunc(index)
	}
	return domain.Tooltip{}, domain.ErrNotFound
}

func (m *MockPatternService) Blur() { m.blurred = true }

// MockCoachService is a mock implementation of CoachService
type MockCoachService struct {
	replyFunc    func(ctx context.Context, text string) (*domain.CoachReply, error)
	feedbackFunc func(ctx context.Context, req domain.CoachFeedbackRequest) error
	messages     []domain.ChatMessage
}

func (m *MockCoachService) Greeting() domain.ChatMessage {
	return domain.ChatMessage{ID: "greeting", Sender: domain.SenderCoach, Text: "Hello", Timestamp: time.Unix(0, 0).UTC()}
}

func (m *MockCoachService) Messages() []domain.ChatMessage {
	return append([]domain.ChatMessage{m.Greeting()}, m.messages...)
}

func (m *MockCoachService) Reply(ctx context.Context, text string) (*domain.CoachReply, error) {
	if m.replyFunc != nil {
		return m.replyFunc(ctx, text)
	}
	return &domain.CoachReply{
		Message: domain.ChatMessage{ID: "m1", Sender: domain.SenderCoach, Text: "echo: " + text},
		Source:  domain.ReplySourceScripted,
	}, nil
}

func (m *MockCoachService) Feedback(ctx context.Context, req domain.CoachFeedbackRequest) error {
	if m.feedbackFunc != nil {
		return m.feedbackFunc(ctx, req)
	}
	return nil
}

func (m *MockCoachService) Diagnosis() domain.Diagnosis {
	return domain.Diagnosis{Status: "Warning", Title: "Lack of deep sleep"}
}

func testReport() *domain.SleepReport {
	return &domain.SleepReport{
		ID:   "report_2025_grad",
		Date: "2025-05-20",
		Summary: domain.ReportSummary{
			TotalSleepTime:  450,
			SleepEfficiency: 88,
			Stages:          domain.StageBreakdown{Wake: 15, REM: 22, Light: 45, Deep: 18},
		},
	}
}
