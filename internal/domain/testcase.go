package domain

import "encoding/json"

// Problem is the read-only view of a problem used during evaluation.
// Testcases and ReferenceSolutions are stored as JSON and validated
// before use.
type Problem struct {
	ID                 string          `db:"id"`
	Title              string          `db:"title"`
	Testcases          json.RawMessage `db:"testcases"`
	ReferenceSolutions json.RawMessage `db:"reference_solutions"`
}

type ProblemTable struct {
	ID                 string
	Title              string
	Testcases          string
	ReferenceSolutions string
}

func GetProblemTable() ProblemTable {
	return ProblemTable{
		ID:                 "id",
		Title:              "title",
		Testcases:          "testcases",
		ReferenceSolutions: "reference_solutions",
	}
}

func (ProblemTable) TableName() string {
	return "problems"
}

// TestCase represents a stored test case. Position in the problem's list is
// its identity.
type TestCase struct {
	Input          string `json:"input" validate:"required"`
	ExpectedOutput string `json:"expectedOutput" validate:"required"`
}

// ReferenceSolution is the author's solution for one language.
type ReferenceSolution struct {
	Language string `json:"language" validate:"required"`
	Code     string `json:"code" validate:"required"`
}
