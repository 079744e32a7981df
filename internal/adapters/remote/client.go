// Package remote syncs the pool snapshot with a shared key-value
// endpoint so every household device converges on the same state.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/birreros/porra/internal/domain/model"
)

const (
	statePath    = "/state"
	secretHeader = "x-porra-secret"

	defaultTimeout = 10 * time.Second
)

// Client talks to the remote snapshot endpoint. The endpoint stores one
// JSON document; GET returns it (404 while empty) and PUT replaces it.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fetch retrieves the shared snapshot. It returns ok=false without error
// when the endpoint holds no snapshot yet.
func (c *Client) Fetch(ctx context.Context) (model.State, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+statePath, nil)
	if err != nil {
		return model.State{}, false, fmt.Errorf("build fetch request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return model.State{}, false, fmt.Errorf("fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return model.State{}, false, nil
	default:
		io.Copy(io.Discard, resp.Body)
		return model.State{}, false, fmt.Errorf("%w: fetch returned %d", ErrBadStatus, resp.StatusCode)
	}

	var st model.State
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return model.State{}, false, fmt.Errorf("decode remote snapshot: %w", err)
	}
	return st, true, nil
}

// Push replaces the shared snapshot.
func (c *Client) Push(ctx context.Context, st model.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+statePath, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("push snapshot: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: push returned %d", ErrBadStatus, resp.StatusCode)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.secret != "" {
		req.Header.Set(secretHeader, c.secret)
	}
}
