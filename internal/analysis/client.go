// Package analysis is the HTTP client for the external sleep analysis API, which
// runs the EEG sleep-stage model and keeps the report history.
package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
)

const (
	DefaultBaseURL     = "http://localhost:8000/api/v1"
	DefaultHistoryPath = "/analysis/history"

	uploadPath = "/analysis/upload"
	// formField is the multipart field the analysis API reads the file from.
	formField = "file"

	DefaultMaxHistoryBytes = 16 << 20
)

// ErrHistoryTooLarge is returned when the history body exceeds the configured limit.
var ErrHistoryTooLarge = errors.New("analysis api: history payload too large")

// Client talks to the analysis API.
type Client struct {
	baseURL         string
	historyPath     string
	maxHistoryBytes int64
	uploadTimeout   time.Duration
	httpClient      *http.Client
	logger          *slog.Logger
}

type clientConfig struct {
	historyPath     string
	maxHistoryBytes int64
	uploadTimeout   time.Duration
	transport       http.RoundTripper
	logger          *slog.Logger
}

type Option func(*clientConfig)

// WithHistoryPath overrides the path of the history endpoint.
func WithHistoryPath(path string) Option {
	return func(cfg *clientConfig) { cfg.historyPath = path }
}

// WithMaxHistoryBytes caps the history body. Values <= 0 keep the default.
func WithMaxHistoryBytes(n int64) Option {
	return func(cfg *clientConfig) { cfg.maxHistoryBytes = n }
}

// WithUploadTimeout bounds the upload request. Zero leaves it to the caller's context.
func WithUploadTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.uploadTimeout = d }
}

func WithTransport(rt http.RoundTripper) Option {
	return func(cfg *clientConfig) { cfg.transport = rt }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = logger }
}

// New creates a client for the analysis API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cfg := &clientConfig{
		historyPath:     DefaultHistoryPath,
		maxHistoryBytes: DefaultMaxHistoryBytes,
		transport:       http.DefaultTransport,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.maxHistoryBytes <= 0 {
		cfg.maxHistoryBytes = DefaultMaxHistoryBytes
	}
	if !strings.HasPrefix(cfg.historyPath, "/") {
		cfg.historyPath = "/" + cfg.historyPath
	}

	return &Client{
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		historyPath:     cfg.historyPath,
		maxHistoryBytes: cfg.maxHistoryBytes,
		uploadTimeout:   cfg.uploadTimeout,
		httpClient:      &http.Client{Transport: newTransport(cfg.transport)},
		logger:          cfg.logger,
	}
}

// Upload sends a raw EEG/wearable data file for analysis and returns the report.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (*domain.SleepReport, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(formField, filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copying upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	if c.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.uploadTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseAPIError(resp)
	}

	var report domain.SleepReport
	if err := go_json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}

	c.logger.DebugContext(ctx, "analysis report received",
		slog.String("report_id", report.ID),
		slog.String("date", report.Date),
	)
	return &report, nil
}

// History fetches the raw list of historical reports. The body is returned as-is so
// the caller can tolerate loosely shaped records.
func (c *Client) History(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.historyPath, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseAPIError(resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxHistoryBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(body)) > c.maxHistoryBytes {
		return nil, fmt.Errorf("%w: over %d bytes", ErrHistoryTooLarge, c.maxHistoryBytes)
	}
	return body, nil
}
