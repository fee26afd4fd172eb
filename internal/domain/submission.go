package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubmissionAccepted    = "Accepted"
	SubmissionWrongAnswer = "Wrong Answer"
)

// Submission is a graded submit-mode evaluation.
type Submission struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	UserID        string           `db:"user_id" json:"userId"`
	ProblemID     string           `db:"problem_id" json:"problemId"`
	SourceCode    string           `db:"source_code" json:"sourceCode"`
	Language      string           `db:"language" json:"language"`
	Stdin         *string          `db:"stdin" json:"stdin"`
	Stdout        *string          `db:"stdout" json:"stdout"`
	Stderr        *string          `db:"stderr" json:"stderr"`
	CompileOutput *string          `db:"compile_output" json:"compileOutput"`
	Status        string           `db:"status" json:"status"`
	Memory        *float64         `db:"memory" json:"memory"`
	Time          *string          `db:"time" json:"time"`
	CreatedAt     time.Time        `db:"created_at" json:"createdAt"`
	TestCases     []TestCaseResult `db:"-" json:"testCases,omitempty"`
}

// TestCaseResult is the persisted outcome of one case of a Submission.
type TestCaseResult struct {
	ID            uuid.UUID `db:"id" json:"id"`
	SubmissionID  uuid.UUID `db:"submission_id" json:"submissionId"`
	TestCase      int       `db:"test_case" json:"testCase"`
	Passed        bool      `db:"passed" json:"passed"`
	Stdout        *string   `db:"stdout" json:"stdout"`
	Expected      string    `db:"expected" json:"expected"`
	Stderr        *string   `db:"stderr" json:"stderr"`
	CompileOutput *string   `db:"compile_output" json:"compileOutput"`
	Status        string    `db:"status" json:"status"`
	Memory        *int64    `db:"memory" json:"memory"`
	Time          *string   `db:"time" json:"time"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// GradedSubmission is everything written in one transaction at the end of
// a submit-mode evaluation.
type GradedSubmission struct {
	Submission *Submission
	Results    []TestCaseResult
	Solved     bool
}

type SubmissionTable struct {
	ID            string
	UserID        string
	ProblemID     string
	SourceCode    string
	Language      string
	Stdin         string
	Stdout        string
	Stderr        string
	CompileOutput string
	Status        string
	Memory        string
	Time          string
	CreatedAt     string
}

func GetSubmissionTable() SubmissionTable {
	return SubmissionTable{
		ID:            "id",
		UserID:        "user_id",
		ProblemID:     "problem_id",
		SourceCode:    "source_code",
		Language:      "language",
		Stdin:         "stdin",
		Stdout:        "stdout",
		Stderr:        "stderr",
		CompileOutput: "compile_output",
		Status:        "status",
		Memory:        "memory",
		Time:          "time",
		CreatedAt:     "created_at",
	}
}

func (SubmissionTable) TableName() string {
	return "submissions"
}

type TestCaseResultTable struct {
	ID            string
	SubmissionID  string
	TestCase      string
	Passed        string
	Stdout        string
	Expected      string
	Stderr        string
	CompileOutput string
	Status        string
	Memory        string
	Time          string
	CreatedAt     string
}

func GetTestCaseResultTable() TestCaseResultTable {
	return TestCaseResultTable{
		ID:            "id",
		SubmissionID:  "submission_id",
		TestCase:      "test_case",
		Passed:        "passed",
		Stdout:        "stdout",
		Expected:      "expected",
		Stderr:        "stderr",
		CompileOutput: "compile_output",
		Status:        "status",
		Memory:        "memory",
		Time:          "time",
		CreatedAt:     "created_at",
	}
}

func (TestCaseResultTable) TableName() string {
	return "test_case_results"
}

type ProblemSolvedTable struct {
	UserID    string
	ProblemID string
	CreatedAt string
}

func GetProblemSolvedTable() ProblemSolvedTable {
	return ProblemSolvedTable{
		UserID:    "user_id",
		ProblemID: "problem_id",
		CreatedAt: "created_at",
	}
}

func (ProblemSolvedTable) TableName() string {
	return "problem_solved"
}
