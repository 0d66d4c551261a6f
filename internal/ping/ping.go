// Package ping delivers the liveness signal to the dead-man's-switch
// monitoring endpoint.
package ping

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

// TimeoutError is returned when every attempt in the timeout schedule
// timed out.
type TimeoutError struct {
	URL      string
	Attempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("ping to %s timed out after %d attempts", e.URL, e.Attempts)
}

// StatusError is returned when the endpoint answered with a non-2xx status.
// A rejection is not retried: the endpoint is reachable, it just said no.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ping rejected: %s", e.Status)
}

// Client posts liveness pings to a single endpoint URL with an escalating
// per-attempt timeout schedule. Attempts are sequential; only a timeout
// triggers a retry.
type Client struct {
	url      string
	timeouts []time.Duration
	logger   *slog.Logger
	http     *http.Client
}

func New(url string, timeouts []time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:      url,
		timeouts: timeouts,
		logger:   logger,
		http:     &http.Client{},
	}
}

// Ping POSTs body to the endpoint. It returns the number of attempts made
// and nil on a 2xx response. A non-2xx response or a transport error ends
// the loop immediately; a timeout moves on to the next, longer attempt.
func (c *Client) Ping(ctx context.Context, body string) (int, error) {
	c.logger.Info("sending ping", "url", c.url, "body", body)

	for i, timeout := range c.timeouts {
		attempt := i + 1
		err := c.post(ctx, timeout, body)
		if err == nil {
			c.logger.Info("ping delivered", "url", c.url, "attempt", attempt)
			return attempt, nil
		}

		if !isTimeout(err) {
			c.logger.Error("ping failed", "url", c.url, "attempt", attempt, "error", err)
			var se *StatusError
			if errors.As(err, &se) {
				return attempt, se
			}
			return attempt, fmt.Errorf("sending ping: %w", err)
		}

		if attempt < len(c.timeouts) {
			c.logger.Info("ping timed out, retrying", "url", c.url, "timeout", timeout, "attempt", attempt)
		} else {
			c.logger.Error("ping timed out, no attempts left", "url", c.url, "timeout", timeout, "attempt", attempt)
		}
	}

	return len(c.timeouts), &TimeoutError{URL: c.url, Attempts: len(c.timeouts)}
}

func (c *Client) post(ctx context.Context, timeout time.Duration, body string) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
