package judge

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"

	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/domain"
)

// scriptedClient returns the next scripted response for each GetBatch call and
// repeats the last one once the script runs out.
type scriptedClient struct {
	mu sync.Mutex

	tokens    []domain.ExecutionToken
	submitErr error
	submitted [][]domain.ExecutionRequest

	polls   [][]domain.ExecutionResult
	pollErr []error
	calls   int
}

func (c *scriptedClient) SubmitBatch(_ context.Context, requests []domain.ExecutionRequest) ([]domain.ExecutionToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitted = append(c.submitted, requests)
	if c.submitErr != nil {
		return nil, c.submitErr
	}
	return c.tokens, nil
}

func (c *scriptedClient) GetBatch(_ context.Context, _ []domain.ExecutionToken) ([]domain.ExecutionResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.calls
	c.calls++
	if i < len(c.pollErr) && c.pollErr[i] != nil {
		return nil, c.pollErr[i]
	}
	if i >= len(c.polls) {
		i = len(c.polls) - 1
	}
	return c.polls[i], nil
}

func (c *scriptedClient) pollCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func newTestLogger(t *testing.T) *logging.ZapLogger {
	return logging.NewZapLoggerFrom(zaptest.NewLogger(t))
}

func ptr[T any](v T) *T {
	return &v
}

func result(token string, statusID int, stdout string) domain.ExecutionResult {
	return domain.ExecutionResult{
		Token:  domain.ExecutionToken(token),
		Stdout: ptr(stdout),
		Status: domain.ExecutionStatus{ID: statusID},
	}
}
