package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteClient performs GET requests against one upstream JSON API.
// It never retries and never caches; callers decide how to react to failures.
type RemoteClient struct {
	api     string
	client  *http.Client
	metrics *Metrics
}

// NewRemoteClient creates a RemoteClient. api labels the upstream in metrics.
func NewRemoteClient(api string, timeout time.Duration, metrics *Metrics) *RemoteClient {
	return &RemoteClient{
		api: api,
		client: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
	}
}

// GetJSON fetches url and decodes the body into out.
// url must already be fully encoded.
func (c *RemoteClient) GetJSON(ctx context.Context, url string, out any) error {
	start := time.Now()
	err := c.getJSON(ctx, url, out)
	c.metrics.ObserveRemoteCall(c.api, remoteOutcome(err), time.Since(start))
	return err
}

func (c *RemoteClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w: %w", url, ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("GET %s: %w: %w", url, ErrRemoteUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteStatusError{URL: url, Code: resp.StatusCode}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("GET %s: %w: %w", url, ErrRemoteDecode, err)
	}

	return nil
}

func remoteOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrRemoteStatus):
		return "status"
	case errors.Is(err, ErrRemoteDecode):
		return "decode"
	default:
		return "unavailable"
	}
}
