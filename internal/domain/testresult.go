package domain

// Judge status ids. Anything other than queued or processing is terminal.
const (
	StatusInQueue    = 1
	StatusProcessing = 2
	StatusAccepted   = 3
)

// ExecutionRequest is one item of a batch sent to the judge.
// ExpectedOutput is only set in submit mode.
type ExecutionRequest struct {
	SourceCode     string `json:"source_code"`
	LanguageID     int    `json:"language_id"`
	Stdin          string `json:"stdin,omitempty"`
	ExpectedOutput string `json:"expected_output,omitempty"`
}

// ExecutionToken is the judge's handle for one submitted ExecutionRequest.
type ExecutionToken string

type ExecutionStatus struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Pending reports whether the judge is still working on the item.
func (s ExecutionStatus) Pending() bool {
	return s.ID == StatusInQueue || s.ID == StatusProcessing
}

// ExecutionResult is the judge's report for one item. Nullable fields are
// pointers because the judge sends null rather than omitting them.
type ExecutionResult struct {
	Token         ExecutionToken  `json:"token"`
	Stdout        *string         `json:"stdout"`
	Stderr        *string         `json:"stderr"`
	CompileOutput *string         `json:"compile_output"`
	Message       *string         `json:"message"`
	Status        ExecutionStatus `json:"status"`
	Time          *string         `json:"time"`
	Memory        *int64          `json:"memory"`
}

// StdoutOrEmpty returns stdout, treating null as empty.
func (r ExecutionResult) StdoutOrEmpty() string {
	if r.Stdout == nil {
		return ""
	}
	return *r.Stdout
}

// CaseOutcome is the reconciled result of a single case.
type CaseOutcome struct {
	TestCase       int             `json:"testCase"`
	Passed         bool            `json:"passed"`
	Input          string          `json:"input"`
	Stdout         *string         `json:"stdout"`
	UserOutput     string          `json:"userOutput"`
	ExpectedOutput string          `json:"expectedOutput"`
	Stderr         *string         `json:"stderr"`
	CompileOutput  *string         `json:"compile_output"`
	Message        *string         `json:"message"`
	Status         ExecutionStatus `json:"status"`
	Time           *string         `json:"time"`
	Memory         *int64          `json:"memory"`
}

// Verdict summarises a whole evaluation.
type Verdict struct {
	AllPassed bool
	Cases     []CaseOutcome
	Metrics   *AggregateMetrics
}

// AggregateMetrics are the submit-mode aggregates stored on a Submission.
// Array valued fields are JSON encoded; nil means no case reported a value.
type AggregateMetrics struct {
	Stdout        string
	Stderr        *string
	CompileOutput *string
	Time          *string
	Memory        float64
}
