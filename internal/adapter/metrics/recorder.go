package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"gitlab.com/codejudge.net/internal/core/ports/secondary"
)

const metricsNamespace = "codejudge"

var (
	_ secondary.MetricsRecorder = (*PrometheusRecorder)(nil)
	_ secondary.MetricsRecorder = NopRecorder{}
)

var (
	// 10ms -> 30s
	judgeCallBuckets = []float64{
		0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
	}

	// 100ms -> 120s
	evaluationBuckets = []float64{
		0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 60, 120,
	}
)

// PrometheusRecorder exports judge and evaluation metrics.
type PrometheusRecorder struct {
	judgeCalls        *prometheus.CounterVec
	judgeCallSeconds  *prometheus.HistogramVec
	pollIterations    prometheus.Histogram
	evaluations       *prometheus.CounterVec
	evaluationSeconds *prometheus.HistogramVec
}

// NewPrometheusRecorder creates the collectors and registers them on reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		judgeCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "judge",
			Name:      "calls_total",
			Help:      "Number of calls made to the judge",
		}, []string{"op", "result"}),
		judgeCallSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "judge",
			Name:      "call_seconds",
			Help:      "Latency of calls made to the judge",
			Buckets:   judgeCallBuckets,
		}, []string{"op"}),
		pollIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "judge",
			Name:      "poll_iterations",
			Help:      "Status queries needed before a batch finished",
			Buckets:   prometheus.LinearBuckets(1, 1, 15),
		}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "evaluation",
			Name:      "total",
			Help:      "Number of evaluations by mode and outcome",
		}, []string{"mode", "outcome"}),
		evaluationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "evaluation",
			Name:      "seconds",
			Help:      "End to end evaluation latency",
			Buckets:   evaluationBuckets,
		}, []string{"mode"}),
	}
	reg.MustRegister(r.judgeCalls, r.judgeCallSeconds, r.pollIterations, r.evaluations, r.evaluationSeconds)
	return r
}

func (r *PrometheusRecorder) ObserveJudgeCall(op string, err error, elapsed time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.judgeCalls.WithLabelValues(op, result).Inc()
	r.judgeCallSeconds.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (r *PrometheusRecorder) ObservePoll(iterations int) {
	r.pollIterations.Observe(float64(iterations))
}

func (r *PrometheusRecorder) ObserveEvaluation(mode string, outcome string, elapsed time.Duration) {
	r.evaluations.WithLabelValues(mode, outcome).Inc()
	r.evaluationSeconds.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) ObserveJudgeCall(string, error, time.Duration)   {}
func (NopRecorder) ObservePoll(int)                                 {}
func (NopRecorder) ObserveEvaluation(string, string, time.Duration) {}
