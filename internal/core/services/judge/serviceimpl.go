package judge

import (
	"context"
	"time"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
)

var _ IExecutionService = (*ExecutionService)(nil)

type ExecutionService struct {
	batcher *Batcher
	poller  *Poller
	logger  primary.Logger
}

func NewExecutionService(
	client secondary.JudgeClient,
	pollInterval time.Duration,
	metrics secondary.MetricsRecorder,
	logger primary.Logger,
) *ExecutionService {
	return &ExecutionService{
		batcher: NewBatcher(client, metrics, logger),
		poller:  NewPoller(client, pollInterval, metrics, logger),
		logger:  logger,
	}
}

func (s *ExecutionService) Execute(ctx context.Context, requests []domain.ExecutionRequest) ([]domain.ExecutionResult, error) {
	tokens, err := s.batcher.Submit(ctx, requests)
	if err != nil {
		return nil, err
	}
	return s.poller.Poll(ctx, tokens)
}
