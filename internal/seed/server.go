package seed

import (
	"log/slog"
	"math/rand"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	go_json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/blaisecz/sleep-dashboard/internal/api/middleware"
)

const maxUploadBytes = 64 << 20

// Server is an in-memory stand-in for the analysis API. Every upload is answered
// with the demo report dated today and added to the front of the history.
type Server struct {
	logger *slog.Logger
	delay  time.Duration
	now    func() time.Time

	mu      sync.Mutex
	history []HistoryRecord
}

type ServerOption func(*Server)

// WithDelay makes uploads take d, like the real model does.
func WithDelay(d time.Duration) ServerOption {
	return func(s *Server) { s.delay = d }
}

func WithClock(now func() time.Time) ServerOption {
	return func(s *Server) { s.now = now }
}

// WithHistory replaces the generated history.
func WithHistory(records []HistoryRecord) ServerOption {
	return func(s *Server) { s.history = append([]HistoryRecord(nil), records...) }
}

func NewServer(logger *slog.Logger, opts ...ServerOption) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.history == nil {
		rng := rand.New(rand.NewSource(s.now().UnixNano()))
		s.history = History(s.now(), HistoryDays, rng)
	}
	return s
}

// Handler serves the analysis API under /api/v1.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.Recovery(s.logger))

	r.Route("/api/v1/analysis", func(r chi.Router) {
		r.Post("/upload", s.upload)
		r.Get("/history", s.listHistory)
	})
	return r
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "field 'file' is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".csv" && ext != ".txt" {
		writeDetail(w, http.StatusUnprocessableEntity, "unsupported file type "+ext)
		return
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-r.Context().Done():
			return
		}
	}

	report := DemoReport()
	report.ID = "report_" + uuid.NewString()
	report.Date = s.now().Format("2006-01-02")

	s.mu.Lock()
	s.history = append([]HistoryRecord{FromReport(report)}, s.history...)
	s.mu.Unlock()

	s.logger.InfoContext(r.Context(), "analysed upload",
		slog.String("file", header.Filename),
		slog.Int64("size", header.Size),
		slog.String("report_id", report.ID),
	)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	records := append([]HistoryRecord(nil), s.history...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, records)
}

// writeDetail writes an error body shaped like FastAPI's.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = go_json.NewEncoder(w).Encode(v)
}
