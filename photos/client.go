package photos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultEndpoint lists 5000 placeholder photos at /photos/{1..5000}.
const DefaultEndpoint = "https://jsonplaceholder.typicode.com/photos"

const maxBodyBytes = 8 << 20

// Photo is one entry of the photo-listing service.
type Photo struct {
	AlbumID      int    `json:"albumId"`
	ID           int    `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Client talks to the photo-listing service and downloads thumbnails.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *log.Logger
	attempts int
	delay    time.Duration
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRetry retries transient failures up to attempts times, starting at delay.
func WithRetry(attempts int, delay time.Duration) ClientOption {
	return func(c *Client) {
		c.attempts = max(attempts, 1)
		c.delay = delay
	}
}

func WithLogger(l *log.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient returns a client for endpoint. A zero timeout means no timeout.
func NewClient(endpoint string, timeout time.Duration, opts ...ClientOption) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     &http.Client{Timeout: timeout},
		logger:   log.New(io.Discard),
		attempts: 1,
		delay:    500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Photo fetches the photo record at index.
func (c *Client) Photo(ctx context.Context, index int) (Photo, error) {
	url := c.endpoint + "/" + strconv.Itoa(index)

	var photo Photo
	err := retry(ctx, c.attempts, c.delay, func() error {
		body, err := c.get(ctx, url)
		if err != nil {
			return err
		}
		var p Photo
		if err := json.Unmarshal(body, &p); err != nil {
			return fmt.Errorf("%w: decode %s: %v", ErrMalformed, url, err)
		}
		if p.ThumbnailURL == "" {
			return fmt.Errorf("%w: %s has no thumbnailUrl", ErrMalformed, url)
		}
		photo = p
		return nil
	})
	if err != nil {
		return Photo{}, err
	}
	return photo, nil
}

// Bytes downloads the resource at url.
func (c *Client) Bytes(ctx context.Context, url string) ([]byte, error) {
	var out []byte
	err := retry(ctx, c.attempts, c.delay, func() error {
		body, err := c.get(ctx, url)
		if err != nil {
			return err
		}
		out = body
		return nil
	})
	return out, err
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("photos: build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)
	req.Header.Set("Accept", "application/json, image/*")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "url", url, "request_id", reqID, "err", err)
		return nil, &RetryableError{Err: fmt.Errorf("photos: GET %s: %w", url, err)}
	}
	defer resp.Body.Close()

	c.logger.Debug("request done", "url", url, "request_id", reqID, "status", resp.StatusCode, "elapsed", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &StatusError{URL: url, Code: resp.StatusCode}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, &RetryableError{Err: serr}
		}
		return nil, serr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("photos: read %s: %w", url, err)}
	}
	return body, nil
}
