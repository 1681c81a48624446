package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
	"github.com/blaisecz/sleep-dashboard/internal/metrics"
)

func newAnalysisService(api AnalysisAPI, repo *MockReportRepository, maxBytes int64) AnalysisService {
	return NewAnalysisService(api, repo, maxBytes, metrics.New(prometheus.NewRegistry()), nil)
}

func TestAnalysisService_Upload(t *testing.T) {
	var gotName, gotBody string
	api := &MockAnalysisAPI{
		UploadFunc: func(ctx context.Context, filename string, file io.Reader) (*domain.SleepReport, error) {
			data, _ := io.ReadAll(file)
			gotName, gotBody = filename, string(data)
			return demoReport(), nil
		},
	}
	repo := &MockReportRepository{}
	svc := newAnalysisService(api, repo, 0)

	report, err := svc.Upload(context.Background(), "Night.CSV", strings.NewReader("eeg,data"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if report.ID != "report_2025_grad" {
		t.Errorf("report ID = %q", report.ID)
	}
	if gotName != "Night.CSV" || gotBody != "eeg,data" {
		t.Errorf("api got %q / %q", gotName, gotBody)
	}

	current, err := svc.Current(context.Background())
	if err != nil || current.ID != report.ID {
		t.Fatalf("Current() = %+v, %v", current, err)
	}
}

func TestAnalysisService_UploadRejectsInput(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		body     string
		maxBytes int64
		wantErr  error
	}{
		{"no name", "", "x", 0, domain.ErrInvalidInput},
		{"wrong extension", "night.edf", "x", 0, domain.ErrInvalidInput},
		{"no extension", "night", "x", 0, domain.ErrInvalidInput},
		{"empty file", "night.txt", "", 0, domain.ErrInvalidInput},
		{"too large", "night.csv", "0123456789", 4, domain.ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &MockAnalysisAPI{}
			repo := &MockReportRepository{report: demoReport()}
			svc := newAnalysisService(api, repo, tt.maxBytes)

			_, err := svc.Upload(context.Background(), tt.filename, strings.NewReader(tt.body))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Upload() error = %v, want %v", err, tt.wantErr)
			}
			if uploads, _ := api.calls(); uploads != 0 {
				t.Errorf("analysis API called %d times for rejected input", uploads)
			}
			if repo.report == nil || repo.report.ID != "report_2025_grad" {
				t.Errorf("rejected upload must keep the previous report")
			}
		})
	}
}

func TestAnalysisService_UploadFailureStoresNothing(t *testing.T) {
	tests := []struct {
		name   string
		upload func(ctx context.Context, filename string, file io.Reader) (*domain.SleepReport, error)
	}{
		{
			name: "api error",
			upload: func(context.Context, string, io.Reader) (*domain.SleepReport, error) {
				return nil, errors.New("connection refused")
			},
		},
		{
			name: "empty response",
			upload: func(context.Context, string, io.Reader) (*domain.SleepReport, error) {
				return nil, nil
			},
		},
		{
			name: "report without id",
			upload: func(context.Context, string, io.Reader) (*domain.SleepReport, error) {
				return &domain.SleepReport{Date: "2025-05-20"}, nil
			},
		},
		{
			name: "unknown stage",
			upload: func(context.Context, string, io.Reader) (*domain.SleepReport, error) {
				r := demoReport()
				r.Stages = append(r.Stages, domain.StageSegment{Stage: "N5"})
				return r, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockReportRepository{}
			svc := newAnalysisService(&MockAnalysisAPI{UploadFunc: tt.upload}, repo, 0)

			_, err := svc.Upload(context.Background(), "night.csv", strings.NewReader("x"))
			if !errors.Is(err, domain.ErrAnalysisFailed) {
				t.Fatalf("Upload() error = %v, want ErrAnalysisFailed", err)
			}
			if repo.report != nil {
				t.Errorf("failed upload stored %+v", repo.report)
			}
		})
	}
}

func TestAnalysisService_Clear(t *testing.T) {
	repo := &MockReportRepository{report: demoReport()}
	svc := newAnalysisService(&MockAnalysisAPI{}, repo, 0)

	if err := svc.Clear(context.Background()); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := svc.Current(context.Background()); !errors.Is(err, domain.ErrNoReport) {
		t.Fatalf("Current() after Clear error = %v, want ErrNoReport", err)
	}
}

func TestIsDataFile(t *testing.T) {
	tests := map[string]bool{
		"night.csv":     true,
		"NIGHT.TXT":     true,
		"a.b.csv":       true,
		"night.csv.zip": false,
		"night":         false,
		".csv":          true,
	}
	for name, want := range tests {
		if got := IsDataFile(name); got != want {
			t.Errorf("IsDataFile(%q) = %v, want %v", name, got, want)
		}
	}
}
