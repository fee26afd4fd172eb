package submissionrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
	querybuilder "gitlab.com/codejudge.net/internal/utils"
)

var _ secondary.SubmissionRepository = (*SubmissionRepository)(nil)

// SubmissionRepository persists graded submissions, their test case results
// and the problem_solved markers.
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger, schema string) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// SaveGraded writes everything in one transaction so a submission is never
// visible without its results.
func (r *SubmissionRepository) SaveGraded(ctx context.Context, graded *domain.GradedSubmission) error {
	statements, err := saveGradedStatements(r.schema, graded)
	if err != nil {
		return fmt.Errorf("failed to build submission insert: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		r.logger.Error("Failed to begin transaction", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Will be ignored if the transaction is committed

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, stmt.query), stmt.args...); err != nil {
			r.logger.Error("Failed to save submission", "submissionId", graded.Submission.ID, "step", stmt.name, "error", err)
			return fmt.Errorf("failed to insert %s: %w", stmt.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit submission", "submissionId", graded.Submission.ID, "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Debug("Saved graded submission",
		"submissionId", graded.Submission.ID,
		"results", len(graded.Results),
		"solved", graded.Solved,
	)
	return nil
}

func (r *SubmissionRepository) GetWithTestCases(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error) {
	query, args, err := r.selectSubmissions().Where(domain.GetSubmissionTable().ID+" = ?", submissionID).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build submission query: %w", err)
	}

	var submission domain.Submission
	if err := r.db.GetContext(ctx, &submission, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get submission", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	results, err := r.testCaseResults(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	submission.TestCases = results
	return &submission, nil
}

func (r *SubmissionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	return r.list(ctx, r.selectSubmissions().
		Where(tbl.UserID+" = ?", userID).
		OrderBy(tbl.CreatedAt, false))
}

func (r *SubmissionRepository) ListByUserAndProblem(ctx context.Context, userID, problemID string) ([]*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	return r.list(ctx, r.selectSubmissions().
		Where(tbl.UserID+" = ?", userID).
		And(tbl.ProblemID+" = ?", problemID).
		OrderBy(tbl.CreatedAt, false))
}

func (r *SubmissionRepository) CountByProblem(ctx context.Context, problemID string) (int, error) {
	tbl := domain.GetSubmissionTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Select("COUNT(*)").
		From(tbl.TableName()).
		Where(tbl.ProblemID+" = ?", problemID).
		Build()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		r.logger.Error("Failed to count submissions", "problemId", problemID, "error", err)
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return count, nil
}

func (r *SubmissionRepository) list(ctx context.Context, qb querybuilder.QueryBuilder) ([]*domain.Submission, error) {
	query, args, err := qb.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build submission query: %w", err)
	}

	var submissions []*domain.Submission
	if err := r.db.SelectContext(ctx, &submissions, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		r.logger.Error("Failed to list submissions", "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

func (r *SubmissionRepository) testCaseResults(ctx context.Context, submissionID uuid.UUID) ([]domain.TestCaseResult, error) {
	tbl := domain.GetTestCaseResultTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Select(
			tbl.ID, tbl.SubmissionID, tbl.TestCase, tbl.Passed, tbl.Stdout, tbl.Expected,
			tbl.Stderr, tbl.CompileOutput, tbl.Status, tbl.Memory, tbl.Time, tbl.CreatedAt,
		).
		From(tbl.TableName()).
		Where(tbl.SubmissionID+" = ?", submissionID).
		OrderBy(tbl.TestCase, true).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build test case query: %w", err)
	}

	results := make([]domain.TestCaseResult, 0)
	if err := r.db.SelectContext(ctx, &results, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		r.logger.Error("Failed to get test case results", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to get test case results: %w", err)
	}
	return results, nil
}

func (r *SubmissionRepository) selectSubmissions() querybuilder.QueryBuilder {
	tbl := domain.GetSubmissionTable()
	return querybuilder.NewQueryBuilder(r.schema).
		Select(
			tbl.ID, tbl.UserID, tbl.ProblemID, tbl.SourceCode, tbl.Language, tbl.Stdin, tbl.Stdout,
			tbl.Stderr, tbl.CompileOutput, tbl.Status, tbl.Memory, tbl.Time, tbl.CreatedAt,
		).
		From(tbl.TableName())
}
