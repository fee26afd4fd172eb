package problemrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
	querybuilder "gitlab.com/codejudge.net/internal/utils"
)

var _ secondary.ProblemRepository = (*ProblemRepository)(nil)

// ProblemRepository reads problems owned by problem management. It never
// writes.
type ProblemRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func NewProblemRepository(db *sqlx.DB, logger primary.Logger, schema string) *ProblemRepository {
	return &ProblemRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *ProblemRepository) GetProblem(ctx context.Context, problemID string) (*domain.Problem, error) {
	query, args, err := getProblemQuery(r.schema, problemID)
	if err != nil {
		return nil, fmt.Errorf("failed to build problem query: %w", err)
	}

	var problem domain.Problem
	if err := r.db.GetContext(ctx, &problem, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get problem", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	return &problem, nil
}

// getProblemQuery selects the JSON columns with a null fallback so a missing
// value reaches validation instead of failing the scan.
func getProblemQuery(schema, problemID string) (string, []interface{}, error) {
	tbl := domain.GetProblemTable()
	return querybuilder.NewQueryBuilder(schema).
		Select(
			tbl.ID,
			tbl.Title,
			fmt.Sprintf("COALESCE(%s, 'null'::jsonb) AS %s", tbl.Testcases, tbl.Testcases),
			fmt.Sprintf("COALESCE(%s, 'null'::jsonb) AS %s", tbl.ReferenceSolutions, tbl.ReferenceSolutions),
		).
		From(tbl.TableName()).
		Where(tbl.ID+" = ?", problemID).
		Build()
}
