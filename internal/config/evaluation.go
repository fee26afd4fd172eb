package config

import "time"

type EvaluationConfig struct {
	// Timeout bounds a whole evaluation, polling included.
	Timeout time.Duration
	// ParallelRun dispatches the user and reference batches of run mode
	// concurrently.
	ParallelRun bool
}

func NewEvaluationConfig() *EvaluationConfig {
	return &EvaluationConfig{
		Timeout:     secondsEnv("EVALUATION_TIMEOUT_SEC", 60),
		ParallelRun: boolEnv("EVALUATION_PARALLEL_RUN", true),
	}
}
