package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codejudge.net/internal/domain"
)

// SubmissionRepository stores graded submissions and their per-case results.
type SubmissionRepository interface {
	// SaveGraded writes the submission, its test case results and, when
	// Solved is set, the (user, problem) solved marker atomically.
	SaveGraded(ctx context.Context, graded *domain.GradedSubmission) error

	// GetWithTestCases returns the submission joined with its results, or
	// nil, nil when it does not exist.
	GetWithTestCases(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error)

	ListByUser(ctx context.Context, userID string) ([]*domain.Submission, error)

	ListByUserAndProblem(ctx context.Context, userID, problemID string) ([]*domain.Submission, error)

	CountByProblem(ctx context.Context, problemID string) (int, error)
}
