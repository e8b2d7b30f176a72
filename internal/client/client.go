package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sozercan/platform-compare/apimodels"
)

// Backend answers a comparison query. *Client implements it over HTTP.
type Backend interface {
	Compare(ctx context.Context, query string) (*apimodels.CompareResponse, error)
}

// BackendFunc adapts an in-process compare function to Backend.
type BackendFunc func(ctx context.Context, query string) (*apimodels.CompareResponse, error)

func (f BackendFunc) Compare(ctx context.Context, query string) (*apimodels.CompareResponse, error) {
	return f(ctx, query)
}

// StatusError is a non-success response from the compare endpoint.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

type Client struct {
	endpoint   string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New returns a Client for the compare endpoint, e.g.
// http://localhost:8000/api/compare.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 3 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Compare(ctx context.Context, query string) (*apimodels.CompareResponse, error) {
	body, err := json.Marshal(apimodels.CompareRequest{Query: query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("compare request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e apimodels.ErrorResponse
		_ = json.Unmarshal(raw, &e)
		msg := e.Error
		if msg == "" {
			msg = fmt.Sprintf("API request failed with status %d", resp.StatusCode)
		}
		return nil, &StatusError{Code: resp.StatusCode, Message: msg}
	}

	var out apimodels.CompareResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}
