package secondary

import "time"

type MetricsRecorder interface {
	ObserveJudgeCall(op string, err error, elapsed time.Duration)
	ObservePoll(iterations int)
	ObserveEvaluation(mode string, outcome string, elapsed time.Duration)
}
