package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"

	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/adapter/metrics"
	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/services/language"
	"gitlab.com/codejudge.net/internal/domain"
)

const (
	sumCode  = "print(sum(map(int, open(0).read().split())))"
	zeroCode = "print(0)"
)

type fakeProblems struct {
	problems map[string]*domain.Problem
	err      error
}

func (f *fakeProblems) GetProblem(_ context.Context, id string) (*domain.Problem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.problems[id], nil
}

// memorySubmissions mimics the postgres store, including the
// do-nothing-on-conflict solved marker.
type memorySubmissions struct {
	mu          sync.Mutex
	submissions map[uuid.UUID]*domain.Submission
	results     map[uuid.UUID][]domain.TestCaseResult
	solved      map[string]int
	saveErr     error
}

func newMemorySubmissions() *memorySubmissions {
	return &memorySubmissions{
		submissions: make(map[uuid.UUID]*domain.Submission),
		results:     make(map[uuid.UUID][]domain.TestCaseResult),
		solved:      make(map[string]int),
	}
}

func (m *memorySubmissions) SaveGraded(_ context.Context, g *domain.GradedSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	sub := *g.Submission
	m.submissions[sub.ID] = &sub
	m.results[sub.ID] = append([]domain.TestCaseResult(nil), g.Results...)
	if g.Solved {
		key := sub.UserID + "|" + sub.ProblemID
		if _, ok := m.solved[key]; !ok {
			m.solved[key] = 1
		}
	}
	return nil
}

func (m *memorySubmissions) GetWithTestCases(_ context.Context, id uuid.UUID) (*domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.submissions[id]
	if !ok {
		return nil, nil
	}
	out := *sub
	out.TestCases = m.results[id]
	return &out, nil
}

func (m *memorySubmissions) ListByUser(context.Context, string) ([]*domain.Submission, error) {
	return nil, errors.New("not implemented")
}

func (m *memorySubmissions) ListByUserAndProblem(context.Context, string, string) ([]*domain.Submission, error) {
	return nil, errors.New("not implemented")
}

func (m *memorySubmissions) CountByProblem(context.Context, string) (int, error) {
	return 0, errors.New("not implemented")
}

func (m *memorySubmissions) solvedMarkers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.solved)
}

// fakeJudge "runs" the two programs used in these tests.
type fakeJudge struct {
	mu      sync.Mutex
	batches [][]domain.ExecutionRequest
	err     error
}

func (f *fakeJudge) Execute(_ context.Context, requests []domain.ExecutionRequest) ([]domain.ExecutionResult, error) {
	f.mu.Lock()
	f.batches = append(f.batches, requests)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	results := make([]domain.ExecutionResult, len(requests))
	for i, req := range requests {
		out := "0\n"
		if req.SourceCode == sumCode {
			total := 0
			for _, field := range strings.Fields(req.Stdin) {
				n, _ := strconv.Atoi(field)
				total += n
			}
			out = strconv.Itoa(total) + "\n"
		}
		mem := int64(1000 * (i + 1))
		tm := "0.01"
		results[i] = domain.ExecutionResult{
			Token:  domain.ExecutionToken("tok-" + strconv.Itoa(i)),
			Stdout: &out,
			Status: domain.ExecutionStatus{ID: domain.StatusAccepted, Description: "Accepted"},
			Time:   &tm,
			Memory: &mem,
		}
	}
	return results, nil
}

func (f *fakeJudge) batchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

type fakeLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allowed, f.err
}

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	return b
}

func sumProblem(t *testing.T) *domain.Problem {
	return &domain.Problem{
		ID:    "p-sum",
		Title: "Add two numbers",
		Testcases: mustJSON(t, []domain.TestCase{
			{Input: "1\n2", ExpectedOutput: "3"},
			{Input: "4\n5", ExpectedOutput: "9"},
		}),
		ReferenceSolutions: mustJSON(t, []domain.ReferenceSolution{
			{Language: "PYTHON", Code: sumCode},
		}),
	}
}

type fixture struct {
	svc         *EvaluationService
	problems    *fakeProblems
	submissions *memorySubmissions
	judge       *fakeJudge
}

func newFixture(t *testing.T, problems ...*domain.Problem) *fixture {
	t.Helper()
	f := &fixture{
		problems:    &fakeProblems{problems: make(map[string]*domain.Problem)},
		submissions: newMemorySubmissions(),
		judge:       &fakeJudge{},
	}
	for _, p := range problems {
		f.problems.problems[p.ID] = p
	}
	f.svc = NewEvaluationService(
		f.problems,
		f.submissions,
		f.judge,
		language.NewRegistry(config.DefaultLanguages),
		nil,
		metrics.NopRecorder{},
		&config.EvaluationConfig{ParallelRun: true},
		logging.NewZapLoggerFrom(zaptest.NewLogger(t)),
	)
	return f
}
