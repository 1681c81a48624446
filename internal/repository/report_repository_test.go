package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
)

func TestReportRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository()

	if _, err := repo.Get(ctx); !errors.Is(err, domain.ErrNoReport) {
		t.Fatalf("Get() on empty slot error = %v, want ErrNoReport", err)
	}

	report := &domain.SleepReport{ID: "r1", Date: "2025-05-20"}
	if err := repo.Set(ctx, report); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != "r1" {
		t.Fatalf("Get() ID = %q, want r1", got.ID)
	}

	// Mutating either side must not leak into the slot.
	got.ID = "mutated"
	report.ID = "mutated too"
	again, _ := repo.Get(ctx)
	if again.ID != "r1" {
		t.Fatalf("stored report was mutated: %q", again.ID)
	}

	if err := repo.Set(ctx, &domain.SleepReport{ID: "r2"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, _ := repo.Get(ctx); got.ID != "r2" {
		t.Fatalf("Set() did not replace report, got %q", got.ID)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := repo.Get(ctx); !errors.Is(err, domain.ErrNoReport) {
		t.Fatalf("Get() after Clear error = %v, want ErrNoReport", err)
	}
}

func TestReportRepository_SetNil(t *testing.T) {
	repo := NewReportRepository()
	if err := repo.Set(context.Background(), nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("Set(nil) error = %v, want ErrInvalidInput", err)
	}
}

func TestReportRepository_ConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository()
	_ = repo.Set(ctx, &domain.SleepReport{ID: "r1"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := repo.Get(ctx); err != nil && !errors.Is(err, domain.ErrNoReport) {
					t.Errorf("Get() error = %v", err)
				}
			}
		}()
	}
	for j := 0; j < 100; j++ {
		_ = repo.Set(ctx, &domain.SleepReport{ID: "r2"})
	}
	wg.Wait()
}
