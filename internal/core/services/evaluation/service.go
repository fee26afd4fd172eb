package evaluation

import (
	"context"

	"gitlab.com/codejudge.net/internal/domain"
)

type IEvaluationService interface {
	// Evaluate runs ev against problemID on behalf of userID. Only submit
	// mode persists anything, and only after every case has been graded.
	Evaluate(ctx context.Context, userID, problemID string, ev domain.Evaluation) (*domain.EvaluationOutcome, error)
}
