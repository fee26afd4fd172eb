package evaluation

import (
	"encoding/json"
	"fmt"
	"strings"

	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

// outputsMatch compares two program outputs ignoring leading and trailing
// whitespace. Inner whitespace is significant.
func outputsMatch(actual, expected string) bool {
	return strings.TrimSpace(actual) == strings.TrimSpace(expected)
}

// reconcileSubmit grades results against the stored test cases. results[i]
// belongs to testcases[i].
func reconcileSubmit(testcases []domain.TestCase, results []domain.ExecutionResult) (*domain.Verdict, error) {
	if len(results) != len(testcases) {
		return nil, fmt.Errorf("%w: %d test cases but %d results", errs.InvalidJudgeResponse, len(testcases), len(results))
	}

	verdict := &domain.Verdict{AllPassed: true, Cases: make([]domain.CaseOutcome, len(results))}
	for i, r := range results {
		actual := strings.TrimSpace(r.StdoutOrEmpty())
		expected := strings.TrimSpace(testcases[i].ExpectedOutput)
		passed := outputsMatch(actual, expected)
		if !passed {
			verdict.AllPassed = false
		}
		verdict.Cases[i] = caseFrom(i, testcases[i].Input, r, actual, expected, passed)
	}

	metrics, err := summarize(verdict.Cases)
	if err != nil {
		return nil, err
	}
	verdict.Metrics = metrics
	return verdict, nil
}

// reconcileRun grades the user's results against the reference solution's
// results on the same inputs. Case metrics come from the user's run.
func reconcileRun(stdin []string, user, reference []domain.ExecutionResult) (*domain.Verdict, error) {
	if len(user) != len(stdin) || len(reference) != len(stdin) {
		return nil, fmt.Errorf("%w: %d inputs but %d user and %d reference results",
			errs.InvalidJudgeResponse, len(stdin), len(user), len(reference))
	}

	verdict := &domain.Verdict{AllPassed: true, Cases: make([]domain.CaseOutcome, len(stdin))}
	for i := range stdin {
		actual := strings.TrimSpace(user[i].StdoutOrEmpty())
		expected := strings.TrimSpace(reference[i].StdoutOrEmpty())
		passed := outputsMatch(actual, expected)
		if !passed {
			verdict.AllPassed = false
		}
		verdict.Cases[i] = caseFrom(i, stdin[i], user[i], actual, expected, passed)
	}
	return verdict, nil
}

func caseFrom(i int, input string, r domain.ExecutionResult, actual, expected string, passed bool) domain.CaseOutcome {
	return domain.CaseOutcome{
		TestCase:       i + 1,
		Passed:         passed,
		Input:          input,
		Stdout:         r.Stdout,
		UserOutput:     actual,
		ExpectedOutput: expected,
		Stderr:         r.Stderr,
		CompileOutput:  r.CompileOutput,
		Message:        r.Message,
		Status:         r.Status,
		Time:           r.Time,
		Memory:         r.Memory,
	}
}

// summarize builds the aggregates stored on a Submission.
//
// Memory is the sum of reported memory divided by the number of cases; a case
// without a memory reading counts as zero.
func summarize(cases []domain.CaseOutcome) (*domain.AggregateMetrics, error) {
	n := len(cases)
	stdout := make([]*string, n)
	stderr := make([]*string, n)
	compile := make([]*string, n)
	times := make([]*string, n)

	var memory int64
	for i, c := range cases {
		stdout[i] = c.Stdout
		stderr[i] = c.Stderr
		compile[i] = c.CompileOutput
		times[i] = c.Time
		if c.Memory != nil {
			memory += *c.Memory
		}
	}

	m := &domain.AggregateMetrics{}
	encoded, err := json.Marshal(stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stdout: %w", err)
	}
	m.Stdout = string(encoded)

	if m.Stderr, err = jsonIfAny(stderr); err != nil {
		return nil, fmt.Errorf("failed to encode stderr: %w", err)
	}
	if m.CompileOutput, err = jsonIfAny(compile); err != nil {
		return nil, fmt.Errorf("failed to encode compile output: %w", err)
	}
	if m.Time, err = jsonIfAny(times); err != nil {
		return nil, fmt.Errorf("failed to encode time: %w", err)
	}

	if n > 0 {
		m.Memory = float64(memory) / float64(n)
	}
	return m, nil
}

// jsonIfAny encodes values as a JSON array, or returns nil when every value
// is null or empty.
func jsonIfAny(values []*string) (*string, error) {
	for _, v := range values {
		if v != nil && *v != "" {
			encoded, err := json.Marshal(values)
			if err != nil {
				return nil, err
			}
			s := string(encoded)
			return &s, nil
		}
	}
	return nil, nil
}

func submissionStatus(allPassed bool) string {
	if allPassed {
		return domain.SubmissionAccepted
	}
	return domain.SubmissionWrongAnswer
}
