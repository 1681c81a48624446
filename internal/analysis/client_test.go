package analysis

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
)

func TestClient_Upload(t *testing.T) {
	var gotUA, gotFile, gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/analysis/upload" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotUA = r.Header.Get("User-Agent")

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing form file: %v", err)
			http.Error(w, "bad", http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		gotFile = string(data)
		gotName = header.Filename

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"r1","date":"2025-05-20","summary":{"totalSleepTime":450,"sleepEfficiency":88,"stages":{"deep":18}},"stages":[{"startTime":"23:00","endTime":"23:15","stage":"W","level":5,"confidence":0.98}]}`)
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/v1/", WithUploadTimeout(time.Second))
	report, err := c.Upload(context.Background(), "night.csv", strings.NewReader("t,fpz\n0,1\n"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if report.ID != "r1" || report.Summary.TotalSleepTime != 450 || len(report.Stages) != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
	if gotFile != "t,fpz\n0,1\n" || gotName != "night.csv" {
		t.Errorf("server got file %q named %q", gotFile, gotName)
	}
	if gotUA != userAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, userAgent)
	}
}

func TestClient_UploadErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"fastapi detail", http.StatusUnprocessableEntity, `{"detail":"unsupported file"}`, "unsupported file"},
		{"message field", http.StatusInternalServerError, `{"message":"model crashed"}`, "model crashed"},
		{"plain text", http.StatusBadGateway, `upstream down`, "upstream down"},
		{"empty body", http.StatusServiceUnavailable, ``, "503 Service Unavailable"},
		{"detail list", http.StatusUnprocessableEntity, `{"detail":[{"loc":["file"]}]}`, "422 Unprocessable Entity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := New(srv.URL).Upload(context.Background(), "a.csv", strings.NewReader("x"))

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Upload() error = %v, want *APIError", err)
			}
			if apiErr.StatusCode != tt.status || apiErr.Message != tt.wantMessage {
				t.Errorf("APIError = %+v, want status %d message %q", apiErr, tt.status, tt.wantMessage)
			}
		})
	}
}

func TestClient_UploadInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":`)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Upload(context.Background(), "a.csv", strings.NewReader("x")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestClient_UploadTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := New(url).Upload(context.Background(), "a.csv", strings.NewReader("x")); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestClient_History(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `[{"date":"2025-05-01","sleep_score":80}]`)
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/v1", WithHistoryPath("reports/history"))
	body, err := c.History(context.Background())
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if string(body) != `[{"date":"2025-05-01","sleep_score":80}]` {
		t.Errorf("History() body = %s", body)
	}
	if gotPath != "/api/v1/reports/history" {
		t.Errorf("History() path = %q", gotPath)
	}
}

func TestClient_HistoryError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).History(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("History() error = %v, want 500 APIError", err)
	}
}

func TestClient_HistoryTooLarge(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "at limit", body: `[1,2,3]`},
		{name: "over limit", body: `[1,2,3,4]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			body, err := New(srv.URL, WithMaxHistoryBytes(7)).History(context.Background())
			if tt.wantErr {
				if !errors.Is(err, ErrHistoryTooLarge) {
					t.Fatalf("History() error = %v, want ErrHistoryTooLarge", err)
				}
				if body != nil {
					t.Errorf("History() body = %s, want nil", body)
				}
				return
			}
			if err != nil {
				t.Fatalf("History() error = %v", err)
			}
			if string(body) != tt.body {
				t.Errorf("History() body = %s, want %s", body, tt.body)
			}
		})
	}
}

func TestAPIError_WrapsAnalysisFailed(t *testing.T) {
	var err error = &APIError{StatusCode: http.StatusBadGateway, Message: "down"}
	if !errors.Is(err, domain.ErrAnalysisFailed) {
		t.Errorf("APIError should match domain.ErrAnalysisFailed")
	}
	if got := err.Error(); got != "analysis api: 502 down" {
		t.Errorf("Error() = %q", got)
	}
}
