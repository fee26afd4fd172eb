package domain

// Mode names the two evaluation flows.
type Mode string

const (
	ModeRun    Mode = "run"
	ModeSubmit Mode = "submit"
)

// Evaluation is either a RunEvaluation or a SubmitEvaluation.
type Evaluation interface {
	Mode() Mode
	isEvaluation()
}

// RunEvaluation executes the caller's code and the problem's reference
// solution against caller supplied inputs. Nothing is persisted.
type RunEvaluation struct {
	SourceCode string
	LanguageID int
	Stdin      []string
}

func (RunEvaluation) Mode() Mode    { return ModeRun }
func (RunEvaluation) isEvaluation() {}

// SubmitEvaluation grades the caller's code against the problem's stored
// test cases and persists the result.
type SubmitEvaluation struct {
	SourceCode string
	LanguageID int
	Stdin      string
}

func (SubmitEvaluation) Mode() Mode    { return ModeSubmit }
func (SubmitEvaluation) isEvaluation() {}

// EvaluationOutcome is what the evaluation service hands back to the
// transport. Submission is only set in submit mode.
type EvaluationOutcome struct {
	Mode       Mode
	AllPassed  bool
	Status     string
	Cases      []CaseOutcome
	Submission *Submission
}
