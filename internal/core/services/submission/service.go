package submission

import (
	"context"

	"gitlab.com/codejudge.net/internal/domain"
)

type ISubmissionService interface {
	ListForUser(ctx context.Context, userID string) ([]*domain.Submission, error)
	ListForUserAndProblem(ctx context.Context, userID, problemID string) ([]*domain.Submission, error)
	CountForProblem(ctx context.Context, problemID string) (int, error)
}
