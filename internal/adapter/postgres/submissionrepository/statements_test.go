package submissionrepository

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codejudge.net/internal/domain"
)

func graded(solved bool, results int) *domain.GradedSubmission {
	sub := &domain.Submission{
		ID:        uuid.New(),
		UserID:    "u1",
		ProblemID: "p1",
		Status:    domain.SubmissionAccepted,
		CreatedAt: time.Now(),
	}
	g := &domain.GradedSubmission{Submission: sub, Solved: solved}
	for i := 0; i < results; i++ {
		g.Results = append(g.Results, domain.TestCaseResult{ID: uuid.New(), SubmissionID: sub.ID, TestCase: i + 1})
	}
	return g
}

func TestSaveGradedStatementsSolved(t *testing.T) {
	t.Parallel()
	stmts, err := saveGradedStatements("public", graded(true, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(stmts))
	}
	if stmts[0].name != "submission" || len(stmts[0].args) != 13 {
		t.Fatalf("unexpected submission insert: %s %d", stmts[0].name, len(stmts[0].args))
	}
	if !strings.HasSuffix(stmts[1].query, "ON CONFLICT (user_id, problem_id) DO NOTHING") {
		t.Fatalf("expected idempotent solved marker, got %s", stmts[1].query)
	}
	if strings.Count(stmts[2].query, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)") != 3 || len(stmts[2].args) != 36 {
		t.Fatalf("expected one multi-row insert of 3 rows, got %s", stmts[2].query)
	}
}

func TestSaveGradedStatementsUnsolved(t *testing.T) {
	t.Parallel()
	stmts, err := saveGradedStatements("public", graded(false, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	for _, s := range stmts {
		if s.name == "problem_solved" {
			t.Fatalf("unsolved submission must not write a solved marker")
		}
	}
}
