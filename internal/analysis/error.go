package analysis

import (
	"fmt"
	"io"
	"net/http"

	go_json "github.com/goccy/go-json"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
)

// APIError is a non-2xx response from the analysis API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("analysis api: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return domain.ErrAnalysisFailed
}

func parseAPIError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(body) == 0 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	// FastAPI reports errors as {"detail": ...}; detail may be a string or a list.
	var errResp struct {
		Detail  any    `json:"detail"`
		Message string `json:"message"`
	}
	if err := go_json.Unmarshal(body, &errResp); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	msg := errResp.Message
	if s, ok := errResp.Detail.(string); ok && s != "" {
		msg = s
	}
	if msg == "" {
		msg = resp.Status
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    msg,
	}
}
