package execute

import (
	"encoding/json"
	"fmt"
	"strings"

	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

// ExecuteRequest is the body of POST /api/execute/{problemId}/{mode}. Stdin
// is decoded per mode.
type ExecuteRequest struct {
	SourceCode string          `json:"source_code" validate:"required"`
	LanguageID int             `json:"language_id" validate:"required,gt=0"`
	Stdin      json.RawMessage `json:"stdin"`
}

// toEvaluation builds the variant for mode. Run needs a JSON array of
// strings; submit takes a string or an array joined by newlines. An empty or
// missing run stdin is left to the service, which reports it after the
// problem lookup.
func (r ExecuteRequest) toEvaluation(mode string) (domain.Evaluation, error) {
	switch domain.Mode(mode) {
	case domain.ModeRun:
		stdin, err := runStdin(r.Stdin)
		if err != nil {
			return nil, err
		}
		return domain.RunEvaluation{SourceCode: r.SourceCode, LanguageID: r.LanguageID, Stdin: stdin}, nil

	case domain.ModeSubmit:
		stdin, err := submitStdin(r.Stdin)
		if err != nil {
			return nil, err
		}
		return domain.SubmitEvaluation{SourceCode: r.SourceCode, LanguageID: r.LanguageID, Stdin: stdin}, nil

	default:
		return nil, fmt.Errorf("%w: unknown mode %q", errs.InvalidInput, mode)
	}
}

func runStdin(raw json.RawMessage) ([]string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	var lines []string
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("%w: stdin must be an array of strings", errs.InvalidInput)
	}
	return lines, nil
}

func submitStdin(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single, nil
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, "\n"), nil
	}
	return "", fmt.Errorf("%w: stdin must be a string or an array of strings", errs.InvalidInput)
}

type runData struct {
	Success bool                 `json:"success"`
	Results []domain.CaseOutcome `json:"results"`
}

type submitData struct {
	Success              bool                 `json:"success"`
	Status               string               `json:"status"`
	CodeExecutionResults []domain.CaseOutcome `json:"codeExecutionResults"`
	Submission           *domain.Submission   `json:"submission"`
}
