package judge

import (
	"context"

	"gitlab.com/codejudge.net/internal/domain"
)

// IExecutionService runs a batch of execution requests on the judge.
type IExecutionService interface {
	// Execute dispatches requests as a single batch and waits until every
	// item is terminal. Results are in request order.
	Execute(ctx context.Context, requests []domain.ExecutionRequest) ([]domain.ExecutionResult, error)
}
