// Package backend talks to the InteliCop REST backend: auth on one base
// URL, everything under /api on another.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/intelicop/console/internal/config"
	"github.com/intelicop/console/internal/core/domain"
)

const maxErrorBody = 4 << 10

// StatusError is a non-2xx answer from the backend. It matches
// domain.ErrRejected, and domain.ErrServerFault for 5xx.
type StatusError struct {
	Endpoint string
	Code     int
	Message  string
	Body     []byte
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Endpoint, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Endpoint, e.Code)
}

func (e *StatusError) Unwrap() []error {
	if e.Code >= http.StatusInternalServerError {
		return []error{domain.ErrRejected, domain.ErrServerFault}
	}
	return []error{domain.ErrRejected}
}

// Client is safe for concurrent use. It sets no timeouts of its own and
// never retries.
type Client struct {
	authURL string
	apiURL  string
	http    *http.Client
	authCB  *gobreaker.CircuitBreaker
	apiCB   *gobreaker.CircuitBreaker
	metrics *Metrics
}

// NewClient builds a client. A nil httpClient means a default
// *http.Client; nil metrics disables instrumentation.
func NewClient(authURL, apiURL string, httpClient *http.Client, metrics *Metrics) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		authURL: strings.TrimRight(authURL, "/"),
		apiURL:  strings.TrimRight(apiURL, "/"),
		http:    httpClient,
		authCB:  config.NewCircuitBreaker(config.BreakerAuth),
		apiCB:   config.NewCircuitBreaker(config.BreakerAPI),
		metrics: metrics,
	}
}

type request struct {
	endpoint    string
	method      string
	url         string
	body        io.Reader
	contentType string
}

// do sends req through cb. The caller owns the returned body.
func (c *Client) do(ctx context.Context, cb *gobreaker.CircuitBreaker, r request) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, r.url, r.body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", r.endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	start := time.Now()
	out, err := cb.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			defer resp.Body.Close()
			return nil, readStatusError(r.endpoint, resp)
		}
		return resp, nil
	})
	c.metrics.observe(r.endpoint, err, time.Since(start))

	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, fmt.Errorf("%s: %w: %v", r.endpoint, domain.ErrUnavailable, err)
	}
	return out.(*http.Response), nil
}

func readStatusError(endpoint string, resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	se := &StatusError{Endpoint: endpoint, Code: resp.StatusCode, Body: body}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		se.Message = payload.Message
		if se.Message == "" {
			se.Message = payload.Error
		}
	} else if text := strings.TrimSpace(string(body)); text != "" && len(text) < 200 {
		se.Message = text
	}
	return se
}

func (c *Client) getJSON(ctx context.Context, endpoint, url string, out interface{}) error {
	resp, err := c.do(ctx, c.apiCB, request{endpoint: endpoint, method: http.MethodGet, url: url})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decode(endpoint, resp.Body, out)
}

func (c *Client) sendJSON(ctx context.Context, endpoint, method, url string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: encode body: %w", endpoint, err)
	}
	resp, err := c.do(ctx, c.apiCB, request{
		endpoint:    endpoint,
		method:      method,
		url:         url,
		body:        bytes.NewReader(body),
		contentType: "application/json",
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return nil
	}
	return decode(endpoint, resp.Body, out)
}

// send issues a request without a body and discards the response.
func (c *Client) send(ctx context.Context, endpoint, method, url string) error {
	resp, err := c.do(ctx, c.apiCB, request{endpoint: endpoint, method: method, url: url})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func decode(endpoint string, r io.Reader, out interface{}) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	return nil
}
