package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mnorrell/shopfront/core"
)

// Client is the resilient API client. It is constructed once at process start
// and injected into its consumers; the backend-availability flag is private
// internal state, mutated only by this component.
//
// Availability transitions:
//   - probe success (2xx or 401) -> available
//   - transport failure followed by a failed re-probe -> unavailable
//
// There is no automatic background recovery loop: once unavailable, only an
// explicit Initialize call flips the flag back.
type Client struct {
	config     *core.Config
	httpClient *http.Client
	creds      core.CredentialStore
	logger     core.Logger
	metrics    *clientMetrics
	mock       *mockStore

	// Backend availability; optimistic until the first probe says otherwise
	available atomic.Bool

	// Serializes re-probes so a burst of failing requests triggers one probe
	probeMu sync.Mutex
}

// NewClient creates a resilient API client. The credential store supplies the
// bearer token attached to authenticated calls; pass a fresh
// core.NewMemoryCredentialStore() when no persistence is needed.
func NewClient(config *core.Config, creds core.CredentialStore, logger core.Logger) *Client {
	if config == nil {
		config = core.DefaultConfig()
	}
	if creds == nil {
		creds = core.NewMemoryCredentialStore()
	}
	if logger == nil {
		logger = &core.NoOpLogger{}
	}

	var transport http.RoundTripper = http.DefaultTransport
	if config.Telemetry.Enabled {
		transport = otelhttp.NewTransport(transport)
	}

	c := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.RequestTimeout,
			Transport: transport,
		},
		creds:  creds,
		logger: logger,
		mock:   newMockStore(),
	}
	c.available.Store(true)

	if config.Telemetry.Enabled {
		c.metrics = newClientMetrics(c)
	}

	return c
}

// Available reports the current backend availability as last determined
func (c *Client) Available() bool {
	return c.available.Load()
}

// Initialize performs one lightweight unauthenticated probe and records the
// result. Call it once at startup; every other operation behaves correctly
// even if it never ran (the client starts optimistic).
func (c *Client) Initialize(ctx context.Context) {
	if c.checkBackendAvailability(ctx) {
		c.setAvailable(true)
		c.logger.Info("Backend connection established", map[string]interface{}{
			"operation": "api_initialize",
			"base_url":  c.config.BaseURL,
		})
	} else {
		c.setAvailable(false)
		c.logger.Warn("Backend not available, using mock data", map[string]interface{}{
			"operation": "api_initialize",
			"base_url":  c.config.BaseURL,
		})
	}
}

// checkBackendAvailability probes a known-cheap unauthenticated endpoint.
// A 2xx proves the service is up; so does a 401, since an auth rejection
// still comes from a running service process.
func (c *Client) checkBackendAvailability(ctx context.Context) bool {
	// The probe carries its own bounded timeout, detached from the caller's
	// cancellation: availability is process-wide state and must not be
	// poisoned by one caller giving up early.
	probeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.config.ProbeTimeout)
	defer cancel()

	c.metrics.recordProbe(probeCtx)

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.config.BaseURL+OpListCategories.Path(), nil)
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Backend connection failed", map[string]interface{}{
			"operation": "api_probe",
			"error":     err.Error(),
		})
		return false
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	return (resp.StatusCode >= 200 && resp.StatusCode < 300) || resp.StatusCode == http.StatusUnauthorized
}

// Request performs one logical backend operation and returns the raw response
// body. If the backend is known to be unavailable the canned mock response is
// produced instead, with no network attempt.
//
// Failure policy:
//   - non-2xx response: *core.HTTPError with the server body, surfaced to the
//     caller verbatim; availability is not re-checked.
//   - transport failure: a fresh probe runs. If it reports unavailable, the
//     mock response is substituted for this call and no error surfaces. If the
//     backend is still up, the failure was transient and the original error is
//     returned.
func (c *Client) Request(ctx context.Context, op Operation, body interface{}, args ...string) ([]byte, error) {
	if !c.available.Load() {
		return c.mockResponse(ctx, op, args, body)
	}

	start := time.Now()
	data, err := c.doLive(ctx, op, args, jsonBody{value: body})
	c.metrics.recordRequest(ctx, op, err, time.Since(start))
	if err == nil {
		return data, nil
	}

	if httpErr, ok := core.IsHTTPError(err); ok {
		c.logger.Debug("API request rejected", map[string]interface{}{
			"operation":   "api_request_rejected",
			"op":          op.String(),
			"status_code": httpErr.StatusCode,
		})
		return nil, err
	}

	if !core.IsTransportError(err) {
		return nil, err
	}

	c.logger.Error("API request failed", map[string]interface{}{
		"operation": "api_request_error",
		"op":        op.String(),
		"error":     err.Error(),
	})

	// Transport-level failure: check whether the backend is still reachable
	// before deciding between transient error and systemic fallback.
	if c.reprobe(ctx) {
		return nil, err
	}

	c.logger.Warn("Backend not available, falling back to mock data", map[string]interface{}{
		"operation": "api_mock_fallback",
		"op":        op.String(),
	})
	return c.mockResponse(ctx, op, args, body)
}

// RequestMultipart performs a form upload. The JSON content type is omitted
// (the multipart writer supplies its own boundary header) and the auth header
// is still attached. The failure policy is stricter than Request: any failure
// marks the backend unavailable and substitutes the mock response, with no
// re-probe step.
func (c *Client) RequestMultipart(ctx context.Context, op Operation, contentType string, form io.Reader, args ...string) ([]byte, error) {
	if !c.available.Load() {
		return c.mockResponse(ctx, op, args, nil)
	}

	start := time.Now()
	data, err := c.doLive(ctx, op, args, rawBody{contentType: contentType, reader: form})
	c.metrics.recordRequest(ctx, op, err, time.Since(start))
	if err == nil {
		return data, nil
	}

	c.logger.Error("API multipart request failed", map[string]interface{}{
		"operation": "api_multipart_error",
		"op":        op.String(),
		"error":     err.Error(),
	})

	c.setAvailable(false)
	return c.mockResponse(ctx, op, args, nil)
}

// jsonBody marshals a value as a JSON request body
type jsonBody struct {
	value interface{}
}

// rawBody passes a prepared body (multipart form) through unchanged
type rawBody struct {
	contentType string
	reader      io.Reader
}

// doLive issues the real HTTP call for an operation
func (c *Client) doLive(ctx context.Context, op Operation, args []string, body interface{}) ([]byte, error) {
	var reader io.Reader
	contentType := ""

	switch b := body.(type) {
	case jsonBody:
		contentType = "application/json"
		if b.value != nil {
			data, err := json.Marshal(b.value)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal request body: %w", err)
			}
			reader = bytes.NewReader(data)
		}
	case rawBody:
		contentType = b.contentType
		reader = b.reader
	}

	req, err := http.NewRequestWithContext(ctx, op.Method(), c.config.BaseURL+op.Path(args...), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	// Attach the bearer token only when the credential store holds one; its
	// absence is legal for public read endpoints.
	if token, err := c.creds.Token(ctx); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, core.NewHTTPError(resp.StatusCode, data)
	}

	return data, nil
}

// reprobe re-runs the availability probe, serialized so a burst of failing
// requests produces a single probe, and records the result.
func (c *Client) reprobe(ctx context.Context) bool {
	c.probeMu.Lock()
	defer c.probeMu.Unlock()

	// Another caller may have already re-probed and flipped the flag
	if !c.available.Load() {
		return false
	}

	ok := c.checkBackendAvailability(ctx)
	c.setAvailable(ok)
	return ok
}

// mockResponse produces the canned response for an operation, encoded the
// same way a live JSON response would be, after the uniform simulated
// latency. Callers cannot distinguish mock from real timing characteristics.
func (c *Client) mockResponse(ctx context.Context, op Operation, args []string, body interface{}) ([]byte, error) {
	c.metrics.recordFallback(ctx, op)

	if d := c.config.MockLatency; d > 0 {
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	value := c.mock.respond(op, args, body)
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mock response: %w", err)
	}
	return data, nil
}

func (c *Client) setAvailable(available bool) {
	if c.available.Swap(available) != available {
		c.logger.Info("Backend availability changed", map[string]interface{}{
			"operation": "api_availability_change",
			"available": available,
		})
	}
}
