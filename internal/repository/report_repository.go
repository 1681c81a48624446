package repository

import (
	"context"
	"sync"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
)

// ReportRepository holds the single most recent analysis report.
type ReportRepository interface {
	// Get returns a copy of the current report or domain.ErrNoReport when the slot is empty.
	Get(ctx context.Context) (*domain.SleepReport, error)
	// Set replaces the current report.
	Set(ctx context.Context, report *domain.SleepReport) error
	// Clear empties the slot.
	Clear(ctx context.Context) error
}

type reportRepository struct {
	mu     sync.RWMutex
	report *domain.SleepReport
}

// NewReportRepository returns an empty in-memory report slot. It is meant to be
// created once at startup and shared for the process lifetime.
func NewReportRepository() ReportRepository {
	return &reportRepository{}
}

func (r *reportRepository) Get(ctx context.Context) (*domain.SleepReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.report == nil {
		return nil, domain.ErrNoReport
	}
	return r.report.Clone(), nil
}

func (r *reportRepository) Set(ctx context.Context, report *domain.SleepReport) error {
	if report == nil {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	r.report = report.Clone()
	r.mu.Unlock()
	return nil
}

func (r *reportRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	r.report = nil
	r.mu.Unlock()
	return nil
}
