package evaluation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/core/services/judge"
	"gitlab.com/codejudge.net/internal/core/services/language"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

var _ IEvaluationService = (*EvaluationService)(nil)

type EvaluationService struct {
	problems    secondary.ProblemRepository
	submissions secondary.SubmissionRepository
	executor    judge.IExecutionService
	languages   *language.Registry
	limiter     secondary.RateLimiter
	metrics     secondary.MetricsRecorder
	decoder     *problemDecoder
	timeout     time.Duration
	parallelRun bool
	logger      primary.Logger
	now         func() time.Time
}

func NewEvaluationService(
	problems secondary.ProblemRepository,
	submissions secondary.SubmissionRepository,
	executor judge.IExecutionService,
	languages *language.Registry,
	limiter secondary.RateLimiter,
	metrics secondary.MetricsRecorder,
	cfg *config.EvaluationConfig,
	logger primary.Logger,
) *EvaluationService {
	return &EvaluationService{
		problems:    problems,
		submissions: submissions,
		executor:    executor,
		languages:   languages,
		limiter:     limiter,
		metrics:     metrics,
		decoder:     newProblemDecoder(),
		timeout:     cfg.Timeout,
		parallelRun: cfg.ParallelRun,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *EvaluationService) Evaluate(ctx context.Context, userID, problemID string, ev domain.Evaluation) (*domain.EvaluationOutcome, error) {
	if ev == nil {
		return nil, fmt.Errorf("%w: missing evaluation", errs.InvalidInput)
	}

	start := time.Now()
	outcome, err := s.evaluate(ctx, userID, problemID, ev)
	s.metrics.ObserveEvaluation(string(ev.Mode()), outcomeLabel(outcome, err), time.Since(start))
	if err != nil {
		s.logger.Error("Evaluation failed", "mode", ev.Mode(), "problemId", problemID, "userId", userID, "error", err)
		return nil, err
	}

	s.logger.Info("Evaluation finished",
		"mode", ev.Mode(),
		"problemId", problemID,
		"userId", userID,
		"allPassed", outcome.AllPassed,
		"cases", len(outcome.Cases),
		"elapsed", time.Since(start),
	)
	return outcome, nil
}

func (s *EvaluationService) evaluate(ctx context.Context, userID, problemID string, ev domain.Evaluation) (*domain.EvaluationOutcome, error) {
	if err := s.checkRate(ctx, userID); err != nil {
		return nil, err
	}

	problem, err := s.problems.GetProblem(ctx, problemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load problem %s: %w", problemID, err)
	}
	if problem == nil {
		return nil, fmt.Errorf("%w: %s", errs.ProblemNotFound, problemID)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.Debug("Evaluation started", "mode", ev.Mode(), "problemId", problemID, "userId", userID)

	switch e := ev.(type) {
	case domain.SubmitEvaluation:
		return s.submit(ctx, userID, problem, e)
	case domain.RunEvaluation:
		return s.run(ctx, problem, e)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", errs.InvalidInput, ev.Mode())
	}
}

// checkRate fails open when the limiter errors.
func (s *EvaluationService) checkRate(ctx context.Context, userID string) error {
	if s.limiter == nil {
		return nil
	}
	allowed, err := s.limiter.Allow(ctx, "evaluate:"+userID)
	if err != nil {
		s.logger.Warn("Rate limiter unavailable, allowing request", "userId", userID, "error", err)
		return nil
	}
	if !allowed {
		return fmt.Errorf("%w: user %s", errs.TooManyRequests, userID)
	}
	return nil
}

func (s *EvaluationService) submit(ctx context.Context, userID string, problem *domain.Problem, ev domain.SubmitEvaluation) (*domain.EvaluationOutcome, error) {
	testcases, err := s.decoder.testcases(problem)
	if err != nil {
		return nil, err
	}
	languageName, err := s.languages.NameFor(ev.LanguageID)
	if err != nil {
		return nil, err
	}

	requests := make([]domain.ExecutionRequest, len(testcases))
	for i, tc := range testcases {
		requests[i] = domain.ExecutionRequest{
			SourceCode:     ev.SourceCode,
			LanguageID:     ev.LanguageID,
			Stdin:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
		}
	}

	results, err := s.executor.Execute(ctx, requests)
	if err != nil {
		return nil, err
	}

	verdict, err := reconcileSubmit(testcases, results)
	if err != nil {
		return nil, err
	}

	graded := s.grade(userID, problem.ID, languageName, ev, verdict)
	if err := s.submissions.SaveGraded(ctx, graded); err != nil {
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	saved, err := s.submissions.GetWithTestCases(ctx, graded.Submission.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload submission %s: %w", graded.Submission.ID, err)
	}
	if saved == nil {
		return nil, fmt.Errorf("submission %s missing after save", graded.Submission.ID)
	}

	return &domain.EvaluationOutcome{
		Mode:       domain.ModeSubmit,
		AllPassed:  verdict.AllPassed,
		Status:     graded.Submission.Status,
		Cases:      verdict.Cases,
		Submission: saved,
	}, nil
}

// grade turns a verdict into the rows written by SaveGraded.
func (s *EvaluationService) grade(userID, problemID, languageName string, ev domain.SubmitEvaluation, verdict *domain.Verdict) *domain.GradedSubmission {
	now := s.now().UTC()
	m := verdict.Metrics
	memory := m.Memory
	stdout := m.Stdout

	submission := &domain.Submission{
		ID:            uuid.New(),
		UserID:        userID,
		ProblemID:     problemID,
		SourceCode:    ev.SourceCode,
		Language:      languageName,
		Stdout:        &stdout,
		Stderr:        m.Stderr,
		CompileOutput: m.CompileOutput,
		Status:        submissionStatus(verdict.AllPassed),
		Memory:        &memory,
		Time:          m.Time,
		CreatedAt:     now,
	}
	if ev.Stdin != "" {
		stdin := ev.Stdin
		submission.Stdin = &stdin
	}

	results := make([]domain.TestCaseResult, len(verdict.Cases))
	for i, c := range verdict.Cases {
		results[i] = domain.TestCaseResult{
			ID:            uuid.New(),
			SubmissionID:  submission.ID,
			TestCase:      c.TestCase,
			Passed:        c.Passed,
			Stdout:        c.Stdout,
			Expected:      c.ExpectedOutput,
			Stderr:        c.Stderr,
			CompileOutput: c.CompileOutput,
			Status:        c.Status.Description,
			Memory:        c.Memory,
			Time:          c.Time,
			CreatedAt:     now,
		}
	}

	return &domain.GradedSubmission{
		Submission: submission,
		Results:    results,
		Solved:     verdict.AllPassed,
	}
}

func (s *EvaluationService) run(ctx context.Context, problem *domain.Problem, ev domain.RunEvaluation) (*domain.EvaluationOutcome, error) {
	if len(ev.Stdin) == 0 {
		return nil, fmt.Errorf("%w: stdin must be a non-empty array", errs.InvalidInput)
	}
	languageName, err := s.languages.NameFor(ev.LanguageID)
	if err != nil {
		return nil, err
	}
	solutions, err := s.decoder.referenceSolutions(problem)
	if err != nil {
		return nil, err
	}
	reference, ok := referenceFor(solutions, languageName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ReferenceSolutionMissing, languageName)
	}

	userRequests := s.runRequests(ev.SourceCode, ev.LanguageID, ev.Stdin)
	refRequests := s.runRequests(reference.Code, ev.LanguageID, ev.Stdin)

	var userResults, refResults []domain.ExecutionResult
	if s.parallelRun {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			userResults, err = s.executor.Execute(gctx, userRequests)
			return err
		})
		g.Go(func() error {
			var err error
			refResults, err = s.executor.Execute(gctx, refRequests)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		if userResults, err = s.executor.Execute(ctx, userRequests); err != nil {
			return nil, err
		}
		if refResults, err = s.executor.Execute(ctx, refRequests); err != nil {
			return nil, err
		}
	}

	verdict, err := reconcileRun(ev.Stdin, userResults, refResults)
	if err != nil {
		return nil, err
	}
	return &domain.EvaluationOutcome{
		Mode:      domain.ModeRun,
		AllPassed: verdict.AllPassed,
		Cases:     verdict.Cases,
	}, nil
}

func (s *EvaluationService) runRequests(code string, languageID int, stdin []string) []domain.ExecutionRequest {
	requests := make([]domain.ExecutionRequest, len(stdin))
	for i, in := range stdin {
		requests[i] = domain.ExecutionRequest{
			SourceCode: code,
			LanguageID: languageID,
			Stdin:      in,
		}
	}
	return requests
}

func outcomeLabel(outcome *domain.EvaluationOutcome, err error) string {
	switch {
	case errors.Is(err, errs.PollTimeout):
		return "timeout"
	case err != nil:
		return "error"
	case outcome.AllPassed:
		return "passed"
	default:
		return "failed"
	}
}
