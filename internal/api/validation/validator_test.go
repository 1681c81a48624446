package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
	"github.com/blaisecz/sleep-dashboard/pkg/problem"
)

func TestValidate_CoachMessage(t *testing.T) {
	tests := []struct {
		name string
		req  domain.CoachMessageRequest
		want []problem.FieldError
	}{
		{"valid", domain.CoachMessageRequest{Text: "How was my REM?"}, nil},
		{"missing", domain.CoachMessageRequest{}, []problem.FieldError{{Field: "text", Message: "is required"}}},
		{"blank", domain.CoachMessageRequest{Text: "   "}, []problem.FieldError{{Field: "text", Message: "must not be blank"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.req)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_FeedbackUsesJSONNames(t *testing.T) {
	got := Validate(domain.CoachFeedbackRequest{Score: 9})

	want := []problem.FieldError{
		{Field: "trace_id", Message: "is required"},
		{Field: "score", Message: "must be at most 5"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"TraceID":        "trace_id",
		"SleepScore":     "sleep_score",
		"text":           "text",
		"TotalSleepTime": "total_sleep_time",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
