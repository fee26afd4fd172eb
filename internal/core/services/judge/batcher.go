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

// Batcher dispatches a whole evaluation to the judge in one call.
// It never retries; the caller may resubmit the same batch.
type Batcher struct {
	client  secondary.JudgeClient
	metrics secondary.MetricsRecorder
	logger  primary.Logger
}

func NewBatcher(client secondary.JudgeClient, metrics secondary.MetricsRecorder, logger primary.Logger) *Batcher {
	return &Batcher{
		client:  client,
		metrics: metrics,
		logger:  logger,
	}
}

// Submit returns one token per request, in request order.
func (b *Batcher) Submit(ctx context.Context, requests []domain.ExecutionRequest) ([]domain.ExecutionToken, error) {
	if len(requests) == 0 {
		return nil, fmt.Errorf("%w: empty execution batch", errs.InvalidInput)
	}

	b.logger.Debug("Dispatching batch to judge", "size", len(requests))
	start := time.Now()
	tokens, err := b.client.SubmitBatch(ctx, requests)
	b.metrics.ObserveJudgeCall("submit", err, time.Since(start))
	if err != nil {
		b.logger.Error("Failed to dispatch batch", "size", len(requests), "error", err)
		if errors.Is(err, errs.InvalidJudgeResponse) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", errs.JudgeUnavailable, err)
	}

	if len(tokens) != len(requests) {
		b.logger.Error("Judge returned wrong number of tokens", "want", len(requests), "got", len(tokens))
		return nil, fmt.Errorf("%w: expected %d tokens, got %d", errs.InvalidJudgeResponse, len(requests), len(tokens))
	}
	for i, token := range tokens {
		if token == "" {
			return nil, fmt.Errorf("%w: empty token at position %d", errs.InvalidJudgeResponse, i)
		}
	}

	return tokens, nil
}
