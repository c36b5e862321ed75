package kioskclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/jmlagera/coop-kiosk/internal/pkg/apperr"
	"github.com/jmlagera/coop-kiosk/internal/pkg/retry"
)

const defaultMaxAttempts = 3

// APIError is a non-2xx response from the kiosk API. These are final; the
// client only retries transport failures and 5xx responses.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client is a retrying HTTP client for the mobile kiosk API. Session cookies
// set at login are kept in an in-memory jar so subsequent calls authenticate
// automatically.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tracker     *ConnectionTracker
	maxAttempts int
	backoff     retry.BackoffPolicy
}

// Option configures a Client
type Option func(*Client)

// WithMaxAttempts overrides the per-request attempt budget
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBackoff overrides the backoff policy between attempts
func WithBackoff(policy retry.BackoffPolicy) Option {
	return func(c *Client) { c.backoff = policy }
}

// WithHTTPClient overrides the underlying HTTP client. The cookie jar is still
// installed on it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the given API base URL
func New(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{},
		tracker:     NewConnectionTracker(),
		maxAttempts: defaultMaxAttempts,
		backoff:     retry.Exponential(500*time.Millisecond, 2, 5*time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient.Jar = jar

	return c, nil
}

// Tracker exposes the connection quality state for UI display
func (c *Client) Tracker() *ConnectionTracker {
	return c.tracker
}

// Get performs a GET request and decodes the JSON response into out
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST request with a JSON body and decodes the response into
// out
func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	// finalErr carries application-level failures (4xx, decode errors) out of
	// the retry loop without burning further attempts on them.
	var finalErr error

	err := retry.Attempt(ctx, c.maxAttempts, c.backoff, func(ctx context.Context) error {
		// Timeout is sized from the current connection quality
		attemptCtx, cancel := context.WithTimeout(ctx, c.tracker.RequestTimeout())
		defer cancel()

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(attemptCtx, method, c.baseURL+path, reader)
		if err != nil {
			return err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.tracker.RecordFailure()
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			c.tracker.RecordFailure()
			return fmt.Errorf("server error: status %d", resp.StatusCode)
		}

		// The server answered; any remaining failure is the caller's, not
		// the network's.
		c.tracker.RecordSuccess(time.Since(start))

		if resp.StatusCode >= 400 {
			finalErr = decodeAPIError(resp)
			return nil
		}
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			finalErr = fmt.Errorf("failed to decode response: %w", err)
			return nil
		}
		return nil
	})
	if err != nil {
		// Retries exhausted on transport failures or server errors
		return apperr.TransientNetwork("Unable to reach the server. Please check your connection and try again.", err)
	}
	return finalErr
}

func decodeAPIError(resp *http.Response) error {
	var envelope struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: envelope.Error}
}
