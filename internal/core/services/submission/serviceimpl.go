package submission

import (
	"context"
	"fmt"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

var _ ISubmissionService = (*SubmissionService)(nil)

type SubmissionService struct {
	repo   secondary.SubmissionRepository
	logger primary.Logger
}

func NewSubmissionService(repo secondary.SubmissionRepository, logger primary.Logger) *SubmissionService {
	return &SubmissionService{
		repo:   repo,
		logger: logger,
	}
}

func (s *SubmissionService) ListForUser(ctx context.Context, userID string) ([]*domain.Submission, error) {
	if userID == "" {
		return nil, errs.Unauthorized
	}
	submissions, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list submissions", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return nonNil(submissions), nil
}

func (s *SubmissionService) ListForUserAndProblem(ctx context.Context, userID, problemID string) ([]*domain.Submission, error) {
	if userID == "" {
		return nil, errs.Unauthorized
	}
	if problemID == "" {
		return nil, fmt.Errorf("%w: problem id is required", errs.InvalidInput)
	}
	submissions, err := s.repo.ListByUserAndProblem(ctx, userID, problemID)
	if err != nil {
		s.logger.Error("Failed to list submissions", "userId", userID, "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return nonNil(submissions), nil
}

func (s *SubmissionService) CountForProblem(ctx context.Context, problemID string) (int, error) {
	if problemID == "" {
		return 0, fmt.Errorf("%w: problem id is required", errs.InvalidInput)
	}
	count, err := s.repo.CountByProblem(ctx, problemID)
	if err != nil {
		s.logger.Error("Failed to count submissions", "problemId", problemID, "error", err)
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return count, nil
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil(submissions []*domain.Submission) []*domain.Submission {
	if submissions == nil {
		return []*domain.Submission{}
	}
	return submissions
}
