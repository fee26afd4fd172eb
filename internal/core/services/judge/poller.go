package judge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

const defaultPollInterval = time.Second

// Poller waits for a batch of judge tokens to reach a terminal state.
// The loop runs until every item is terminal or ctx is done; the evaluation
// deadline is what bounds it.
type Poller struct {
	client   secondary.JudgeClient
	interval time.Duration
	metrics  secondary.MetricsRecorder
	logger   primary.Logger
}

func NewPoller(client secondary.JudgeClient, interval time.Duration, metrics secondary.MetricsRecorder, logger primary.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{
		client:   client,
		interval: interval,
		metrics:  metrics,
		logger:   logger,
	}
}

// Poll returns one terminal result per token, in token order. On failure no
// partial results are returned; a retry must start from the same tokens.
func (p *Poller) Poll(ctx context.Context, tokens []domain.ExecutionToken) ([]domain.ExecutionResult, error) {
	if len(tokens) == 0 {
		return []domain.ExecutionResult{}, nil
	}

	for iteration := 1; ; iteration++ {
		if err := ctx.Err(); err != nil {
			return nil, p.contextError(err, iteration)
		}

		start := time.Now()
		results, err := p.client.GetBatch(ctx, tokens)
		p.metrics.ObserveJudgeCall("poll", err, time.Since(start))
		if err != nil {
			if errors.Is(err, errs.InvalidJudgeResponse) {
				p.logger.Error("Judge returned malformed batch", "iteration", iteration, "error", err)
				return nil, err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, p.contextError(ctxErr, iteration)
			}
			p.logger.Error("Failed to poll judge", "iteration", iteration, "error", err)
			return nil, fmt.Errorf("%w: %w", errs.PollingFailed, err)
		}

		ordered, err := alignResults(tokens, results)
		if err != nil {
			p.logger.Error("Judge batch does not match tokens", "iteration", iteration, "error", err)
			return nil, err
		}

		if allTerminal(ordered) {
			p.metrics.ObservePoll(iteration)
			p.logger.Debug("Judge batch finished", "size", len(tokens), "iterations", iteration)
			return ordered, nil
		}

		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, p.contextError(ctx.Err(), iteration)
		case <-timer.C:
		}
	}
}

func (p *Poller) contextError(err error, iteration int) error {
	p.metrics.ObservePoll(iteration)
	if errors.Is(err, context.DeadlineExceeded) {
		p.logger.Warn("Gave up waiting for judge", "iterations", iteration)
		return fmt.Errorf("%w: %w", errs.PollTimeout, err)
	}
	return fmt.Errorf("%w: %w", errs.PollingFailed, err)
}

func allTerminal(results []domain.ExecutionResult) bool {
	for _, r := range results {
		if r.Status.Pending() {
			return false
		}
	}
	return true
}

// alignResults puts results in token order. When the judge echoes tokens they
// are used as correlation ids; otherwise the judge's order is trusted.
func alignResults(tokens []domain.ExecutionToken, results []domain.ExecutionResult) ([]domain.ExecutionResult, error) {
	if len(results) != len(tokens) {
		return nil, fmt.Errorf("%w: expected %d results, got %d", errs.InvalidJudgeResponse, len(tokens), len(results))
	}

	byToken := make(map[domain.ExecutionToken]domain.ExecutionResult, len(results))
	for _, r := range results {
		if r.Token == "" {
			return results, nil
		}
		byToken[r.Token] = r
	}

	ordered := make([]domain.ExecutionResult, len(tokens))
	for i, token := range tokens {
		r, ok := byToken[token]
		if !ok {
			return nil, fmt.Errorf("%w: no result for token %s", errs.InvalidJudgeResponse, token)
		}
		ordered[i] = r
	}
	return ordered, nil
}
