package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/semaphore"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

var _ secondary.JudgeClient = (*Client)(nil)

const (
	batchPath    = "/submissions/batch"
	resultFields = "token,stdout,stderr,compile_output,message,status,time,memory"

	// maxErrorBody bounds how much of a failed response ends up in an error.
	maxErrorBody = 1 << 12
)

// Client is the Judge0 batch API adapter. In-flight calls are bounded by
// MaxConcurrency across all evaluations sharing the client.
type Client struct {
	baseURL   string
	authToken string
	http      *http.Client
	sem       *semaphore.Weighted
	logger    primary.Logger
}

func NewClient(cfg *config.JudgeConfig, logger primary.Logger) *Client {
	limit := int64(cfg.MaxConcurrency)
	if limit <= 0 {
		limit = 1
	}
	return &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		authToken: cfg.AuthToken,
		http:      &http.Client{Timeout: cfg.RequestTimeout},
		sem:       semaphore.NewWeighted(limit),
		logger:    logger,
	}
}

type submitBatchRequest struct {
	Submissions []domain.ExecutionRequest `json:"submissions"`
}

type tokenResponse struct {
	Token domain.ExecutionToken `json:"token"`
}

type getBatchResponse struct {
	Submissions []domain.ExecutionResult `json:"submissions"`
}

func (c *Client) SubmitBatch(ctx context.Context, requests []domain.ExecutionRequest) ([]domain.ExecutionToken, error) {
	body, err := json.Marshal(submitBatchRequest{Submissions: requests})
	if err != nil {
		return nil, fmt.Errorf("failed to encode batch: %w", err)
	}

	query := url.Values{}
	query.Set("base64_encoded", "false")

	var resp []tokenResponse
	if err := c.do(ctx, http.MethodPost, batchPath, query, body, &resp); err != nil {
		return nil, err
	}

	tokens := make([]domain.ExecutionToken, len(resp))
	for i, r := range resp {
		tokens[i] = r.Token
	}
	return tokens, nil
}

func (c *Client) GetBatch(ctx context.Context, tokens []domain.ExecutionToken) ([]domain.ExecutionResult, error) {
	ids := make([]string, len(tokens))
	for i, t := range tokens {
		ids[i] = string(t)
	}

	query := url.Values{}
	query.Set("tokens", strings.Join(ids, ","))
	query.Set("base64_encoded", "false")
	query.Set("fields", resultFields)

	var resp getBatchResponse
	if err := c.do(ctx, http.MethodGet, batchPath, query, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Submissions == nil {
		return nil, fmt.Errorf("%w: missing submissions array", errs.InvalidJudgeResponse)
	}
	return resp.Submissions, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, out interface{}) error {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("failed to acquire judge slot: %w", err)
	}
	defer c.sem.Release(1)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	endpoint := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build judge request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("X-Auth-Token", c.authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call judge %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("Judge returned error status", "method", method, "status", resp.StatusCode)
		return fmt.Errorf("judge %s %s returned %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", errs.InvalidJudgeResponse, err)
	}
	return nil
}
