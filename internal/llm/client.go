package llm

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fairhire/biasprobe/internal/util"
)

const (
	backoffBase = 500 * time.Millisecond
	backoffCap  = 15 * time.Second
	previewLen  = 120
)

// Client wraps a backend Submitter with the run-wide resilience policy:
// bounded retries with exponential backoff and jitter for transient errors,
// a maximum in-flight request count, and a minimum inter-request interval.
// The limiter and the in-flight semaphore are the only mutable shared state
// in the pipeline.
type Client struct {
	submitter  Submitter
	limiter    *rate.Limiter
	inflight   chan struct{}
	maxRetries int
	timeout    time.Duration
	logger     *zap.Logger
}

// NewClient builds a client around the given backend using cfg's resilience
// options. The backend itself is constructed elsewhere so the client stays
// replaceable by a deterministic stub in tests.
func NewClient(submitter Submitter, cfg Config, logger *zap.Logger) *Client {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		submitter:  submitter,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), 1),
		inflight:   make(chan struct{}, cfg.MaxInFlight),
		maxRetries: cfg.MaxRetries,
		timeout:    cfg.Timeout,
		logger:     logger,
	}
}

// Submit issues the request, retrying transient failures up to the configured
// bound. A fatal error or context cancellation aborts immediately. The error
// returned after exhausted retries wraps the last transient cause.
func (c *Client) Submit(ctx context.Context, req Request) (Response, error) {
	select {
	case c.inflight <- struct{}{}:
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
	defer func() { <-c.inflight }()

	attempts := c.maxRetries + 1
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return Response{}, err
		}

		resp, err := c.submit(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !IsTransient(err) {
			return Response{}, err
		}

		c.logger.Warn("transient backend error",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", attempts),
			zap.String("error", util.TruncateForLog(err.Error(), previewLen)),
		)

		if attempt < attempts-1 {
			if err := wait(ctx, backoffDelay(attempt)); err != nil {
				return Response{}, err
			}
		}
	}

	return Response{}, fmt.Errorf("retries exhausted after %d attempts: %w", attempts, lastErr)
}

func (c *Client) submit(ctx context.Context, req Request) (Response, error) {
	rctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.submitter.Submit(rctx, req)
}

// Backend reports the wrapped backend's name for record stamping.
func (c *Client) Backend() string { return c.submitter.Name() }

// Model reports the wrapped backend's model identifier.
func (c *Client) Model() string { return c.submitter.Model() }

// backoffDelay computes the exponential delay with full jitter for the given
// zero-based attempt.
func backoffDelay(attempt int) time.Duration {
	delay := backoffBase << uint(attempt)
	if delay > backoffCap {
		delay = backoffCap
	}
	return time.Duration(rand.Int63n(int64(delay)) + int64(delay)/2)
}

// wait is a variable so tests can skip real backoff delays.
var wait = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
