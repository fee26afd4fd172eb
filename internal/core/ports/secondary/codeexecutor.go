package secondary

import (
	"context"

	"gitlab.com/codejudge.net/internal/domain"
)

// JudgeClient talks to the external code execution judge.
type JudgeClient interface {
	// SubmitBatch dispatches all requests in one call and returns one token
	// per request, in request order.
	SubmitBatch(ctx context.Context, requests []domain.ExecutionRequest) ([]domain.ExecutionToken, error)

	// GetBatch fetches the current state of every token in one call.
	GetBatch(ctx context.Context, tokens []domain.ExecutionToken) ([]domain.ExecutionResult, error)
}
