package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/docker/go-units"
	log "github.com/sirupsen/logrus"
)

// DefaultTimeout bounds the whole request, body included.
const DefaultTimeout = 30 * time.Second

const chunkSize = 32 * 1024

var ErrTooLarge = errors.New("artifact exceeds maximum size")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %s", e.URL, e.Status)
}

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient HTTPClient
	maxBytes   int64
}

type Option func(*Client)

// WithHTTPClient replaces the default timeout-bound client.
func WithHTTPClient(c HTTPClient) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithMaxBytes caps the artifact size. Zero or negative means unlimited.
func WithMaxBytes(n int64) Option {
	return func(cl *Client) {
		cl.maxBytes = n
	}
}

func NewClient(timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch issues a single GET for url and streams the body into w.
// There are no retries.
func (c *Client) Fetch(ctx context.Context, url string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	log.WithField("url", url).Debug("fetching artifact")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request artifact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if c.maxBytes > 0 && resp.ContentLength > c.maxBytes {
		return 0, fmt.Errorf("%w: %s > %s", ErrTooLarge,
			units.HumanSize(float64(resp.ContentLength)), units.HumanSize(float64(c.maxBytes)))
	}

	var body io.Reader = resp.Body
	if c.maxBytes > 0 {
		body = io.LimitReader(resp.Body, c.maxBytes+1)
	}

	n, err := io.CopyBuffer(w, body, make([]byte, chunkSize))
	if err != nil {
		return n, fmt.Errorf("read artifact body: %w", err)
	}
	if c.maxBytes > 0 && n > c.maxBytes {
		return n, fmt.Errorf("%w: limit %s", ErrTooLarge, units.HumanSize(float64(c.maxBytes)))
	}

	return n, nil
}
