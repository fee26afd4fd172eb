package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.ObserveJudgeCall("submit", nil, 20*time.Millisecond)
	r.ObserveJudgeCall("poll", nil, 5*time.Millisecond)
	r.ObserveJudgeCall("poll", errors.New("reset"), time.Millisecond)
	r.ObservePoll(3)
	r.ObserveEvaluation("submit", "passed", time.Second)
	r.ObserveEvaluation("submit", "passed", time.Second)

	if got := testutil.ToFloat64(r.judgeCalls.WithLabelValues("poll", "error")); got != 1 {
		t.Fatalf("expected 1 failed poll, got %v", got)
	}
	if got := testutil.ToFloat64(r.judgeCalls.WithLabelValues("submit", "ok")); got != 1 {
		t.Fatalf("expected 1 submit, got %v", got)
	}
	if got := testutil.ToFloat64(r.evaluations.WithLabelValues("submit", "passed")); got != 2 {
		t.Fatalf("expected 2 accepted evaluations, got %v", got)
	}
	if got := testutil.CollectAndCount(r.pollIterations); got != 1 {
		t.Fatalf("expected poll histogram to be collected once, got %d", got)
	}
}

func TestNewPrometheusRecorderRegistersOnce(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	NewPrometheusRecorder(reg)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected duplicate registration to panic")
		}
	}()
	NewPrometheusRecorder(reg)
}
