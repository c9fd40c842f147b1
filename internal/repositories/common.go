package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// StatusError reports a non-2xx provider response. The status code is
// preserved so callers can tell "this exact grid point is not addressable"
// (404) apart from provider failures that must not be retried.
type StatusError struct {
	Repo   string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP error (status %d): %s", e.Repo, e.Code, e.Status)
}

func (e *StatusError) NotFound() bool {
	return e.Code == http.StatusNotFound
}

type httpResult struct {
	status     int
	statusText string
	body       []byte
}

// newBreaker builds the per-repository circuit breaker guarding against
// sustained provider outages. Only transport failures and 5xx responses
// count as failures; a 404 is an ordinary answer and never trips it.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

// doRequest performs one GET through the repository's circuit breaker and
// returns the response body. Non-2xx statuses come back as *StatusError.
func doRequest(
	ctx context.Context,
	repo string,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	url string,
	headers map[string]string,
) ([]byte, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to do request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, &StatusError{Repo: repo, Code: resp.StatusCode, Status: resp.Status}
		}

		return httpResult{status: resp.StatusCode, statusText: resp.Status, body: body}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%s: provider unavailable: %w", repo, err)
		}
		return nil, err
	}

	res := result.(httpResult)
	if res.status != http.StatusOK {
		return nil, &StatusError{Repo: repo, Code: res.status, Status: res.statusText}
	}

	return res.body, nil
}
