package secondary

import (
	"context"

	"gitlab.com/codejudge.net/internal/domain"
)

type ProblemRepository interface {
	// GetProblem returns nil, nil when the problem does not exist.
	GetProblem(ctx context.Context, problemID string) (*domain.Problem, error)
}
