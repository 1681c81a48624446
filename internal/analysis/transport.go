package analysis

import (
	"fmt"
	"net/http"
)

const userAgent = "sleep-dashboard/1.0"

type analysisTransport struct {
	base http.RoundTripper
}

var _ http.RoundTripper = (*analysisTransport)(nil)

func (t *analysisTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}
	return resp, nil
}

func newTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &analysisTransport{base: base}
}
