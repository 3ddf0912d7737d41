// internal/common/http/client.go
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodyBytes caps how much of a response body is buffered.
const maxBodyBytes = 16 << 20

// ErrStatus is returned for any non-200 response.
var ErrStatus = errors.New("unexpected status")

// RetryPolicy bounds attempts and the fixed pause between them.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Attempt describes one request made by GetWithRetry.
type Attempt struct {
	Number     int
	StatusCode int
	Duration   time.Duration
	Err        error
}

type Client struct {
	httpClient *http.Client
	policy     RetryPolicy
	observe    func(Attempt)
}

type Option func(*Client)

// WithRetryPolicy overrides the default of one attempt.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) {
		if p.MaxAttempts < 1 {
			p.MaxAttempts = 1
		}
		c.policy = p
	}
}

// WithAttemptObserver registers a callback run after every attempt.
func WithAttemptObserver(fn func(Attempt)) Option {
	return func(c *Client) { c.observe = fn }
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		policy: RetryPolicy{MaxAttempts: 1},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	return c.httpClient.Do(req)
}

// GetWithRetry issues GET url until accept succeeds on a 200 body or the attempts run out.
// Transport errors, non-200 statuses and accept errors all count as failed attempts.
// The delay is applied between attempts only and is cut short by ctx.
func (c *Client) GetWithRetry(ctx context.Context, url string, accept func(body []byte) error) (int, error) {
	var lastErr error
	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		if attempt > 1 && c.policy.Delay > 0 {
			select {
			case <-ctx.Done():
				return attempt - 1, fmt.Errorf("%w (last error: %v)", ctx.Err(), lastErr)
			case <-time.After(c.policy.Delay):
			}
		}

		start := time.Now()
		status, err := c.getOnce(ctx, url, accept)
		if c.observe != nil {
			c.observe(Attempt{Number: attempt, StatusCode: status, Duration: time.Since(start), Err: err})
		}
		if err == nil {
			return attempt, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return attempt, fmt.Errorf("%w (last error: %v)", ctx.Err(), lastErr)
		}
	}
	return c.policy.MaxAttempts, lastErr
}

func (c *Client) getOnce(ctx context.Context, url string, accept func([]byte) error) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}
	if accept != nil {
		if err := accept(body); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}
