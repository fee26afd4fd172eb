package evaluation

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

type storedTestcases struct {
	Items []domain.TestCase `validate:"required,min=1,dive"`
}

// An empty list is valid; run mode reports the missing language instead.
type storedReferenceSolutions struct {
	Items []domain.ReferenceSolution `validate:"required,dive"`
}

// problemDecoder validates the JSON columns of a Problem before use. A shape
// mismatch is a data problem, never a client error.
type problemDecoder struct {
	validate *validator.Validate
}

func newProblemDecoder() *problemDecoder {
	return &problemDecoder{validate: validator.New()}
}

func (d *problemDecoder) testcases(p *domain.Problem) ([]domain.TestCase, error) {
	var stored storedTestcases
	if err := json.Unmarshal(p.Testcases, &stored.Items); err != nil {
		return nil, fmt.Errorf("%w: problem %s: %w", errs.CorruptTestcaseData, p.ID, err)
	}
	if err := d.validate.Struct(stored); err != nil {
		return nil, fmt.Errorf("%w: problem %s: %w", errs.CorruptTestcaseData, p.ID, err)
	}
	return stored.Items, nil
}

func (d *problemDecoder) referenceSolutions(p *domain.Problem) ([]domain.ReferenceSolution, error) {
	var stored storedReferenceSolutions
	if err := json.Unmarshal(p.ReferenceSolutions, &stored.Items); err != nil {
		return nil, fmt.Errorf("%w: problem %s reference solutions: %w", errs.CorruptTestcaseData, p.ID, err)
	}
	if err := d.validate.Struct(stored); err != nil {
		return nil, fmt.Errorf("%w: problem %s reference solutions: %w", errs.CorruptTestcaseData, p.ID, err)
	}
	return stored.Items, nil
}

// referenceFor returns the reference solution written in language, matched
// exactly.
func referenceFor(solutions []domain.ReferenceSolution, language string) (domain.ReferenceSolution, bool) {
	for _, s := range solutions {
		if s.Language == language {
			return s, true
		}
	}
	return domain.ReferenceSolution{}, false
}
