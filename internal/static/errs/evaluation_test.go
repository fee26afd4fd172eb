package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "not found", err: ProblemNotFound, want: http.StatusNotFound},
		{name: "wrapped invalid input", err: fmt.Errorf("%w: stdin must not be empty", InvalidInput), want: http.StatusBadRequest},
		{name: "language", err: UnsupportedLanguage, want: http.StatusBadRequest},
		{name: "corrupt", err: CorruptTestcaseData, want: http.StatusInternalServerError},
		{name: "reference", err: ReferenceSolutionMissing, want: http.StatusInternalServerError},
		{name: "judge down", err: fmt.Errorf("%w: %w", JudgeUnavailable, errors.New("dial tcp")), want: http.StatusBadGateway},
		{name: "poll failed", err: fmt.Errorf("%w: %w", PollingFailed, context.Canceled), want: http.StatusBadGateway},
		{name: "timeout", err: fmt.Errorf("%w: %w", PollTimeout, context.DeadlineExceeded), want: http.StatusGatewayTimeout},
		{name: "throttled", err: TooManyRequests, want: http.StatusTooManyRequests},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestMessageHidesServerSideCauses(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("%w: %w", JudgeUnavailable, errors.New("dial tcp 10.0.0.3:2358: connection refused"))
	if got := Message(err); got != JudgeUnavailable.Error() {
		t.Fatalf("expected %q, got %q", JudgeUnavailable.Error(), got)
	}

	err = fmt.Errorf("%w: stdin must be a non-empty array", InvalidInput)
	if got := Message(err); got != err.Error() {
		t.Fatalf("expected %q, got %q", err.Error(), got)
	}

	if got := Message(errors.New("pq: relation does not exist")); got != InternalError.Error() {
		t.Fatalf("expected %q, got %q", InternalError.Error(), got)
	}
}
