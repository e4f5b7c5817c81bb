package connection

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/libros-go/internal/telemetry/logger"
	"github.com/yndnr/libros-go/internal/telemetry/metric"
)

// LoginPath is the only endpoint that never carries the bearer token.
const LoginPath = "/login"

// DefaultTimeout bounds a single request when no timeout option is given.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is kept in StatusError.
const maxErrorBody = 1 << 20

// Request headers set by the gateway.
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderUserAgent     = "User-Agent"
	HeaderRequestID     = "X-Request-ID"
)

// TokenSource is a read-only view of the session token.
type TokenSource interface {
	Token(ctx context.Context) (string, bool, error)
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Body       []byte
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// HTTPClient provides HTTP communication with the catalog server.
type HTTPClient struct {
	baseURL   string
	client    *http.Client
	tokens    TokenSource
	userAgent string
	limiter   *rate.Limiter
	metrics   *metric.Registry
	log       logger.Logger

	transport http.RoundTripper
	tlsConfig *tls.Config
	timeout   time.Duration
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout sets the per-request timeout; 0 disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.timeout = d
	}
}

// WithRateLimit caps outgoing requests to r per second. r <= 0 leaves the
// client unlimited.
func WithRateLimit(r float64, burst int) Option {
	return func(c *HTTPClient) {
		if r <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// WithMetrics instruments every request in reg.
func WithMetrics(reg *metric.Registry) Option {
	return func(c *HTTPClient) {
		c.metrics = reg
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logger.Logger) Option {
	return func(c *HTTPClient) {
		c.log = l
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) {
		c.userAgent = ua
	}
}

// WithTransport sets the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) {
		c.transport = rt
	}
}

// WithTLSConfig sets the TLS configuration for https servers, e.g. to
// trust a private CA. Ignored when WithTransport is given.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *HTTPClient) {
		c.tlsConfig = cfg
	}
}

// NewHTTPClient creates a new HTTP client for server. tokens may be nil,
// in which case no request carries a bearer token.
func NewHTTPClient(server string, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		tokens:    tokens,
		userAgent: "libros-cli/dev",
		log:       logger.Default(),
		timeout:   DefaultTimeout,
	}

	c.baseURL = server
	if path, ok := socketPath(server); ok {
		c.baseURL = socketBaseURL
		c.transport = newSocketTransport(path)
	} else if !strings.HasPrefix(c.baseURL, "http://") && !strings.HasPrefix(c.baseURL, "https://") {
		c.baseURL = "http://" + c.baseURL
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")

	for _, opt := range opts {
		opt(c)
	}

	transport := c.transport
	if transport == nil && c.tlsConfig != nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = c.tlsConfig
		transport = t
	}
	if c.metrics != nil {
		transport = c.metrics.InstrumentRoundTripper(transport)
	}

	c.client = &http.Client{
		Timeout:   c.timeout,
		Transport: transport,
	}
	return c
}

// Do performs a request. A non-nil body is sent as JSON. Transport errors
// are returned as produced by net/http; the response status is not checked.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if err := c.addHeaders(ctx, req, path); err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	requestID := req.Header.Get(HeaderRequestID)
	log := c.log.WithContext(logger.WithRequestID(ctx, requestID))

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug("catalog request failed", "method", method, "path", path, "error", err)
		return nil, err
	}

	log.Debug("catalog request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp, nil
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request with JSON body.
func (c *HTTPClient) Put(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Delete performs a DELETE request.
func (c *HTTPClient) Delete(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Send performs a request and decodes a 2xx JSON response into target.
// Non-2xx responses yield *StatusError.
func (c *HTTPClient) Send(ctx context.Context, method, path string, body, target any) error {
	resp, err := c.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	return ParseResponse(resp, target)
}

// addHeaders sets content type, identification and, except for login,
// the bearer token.
func (c *HTTPClient) addHeaders(ctx context.Context, req *http.Request, path string) error {
	req.Header.Set(HeaderContentType, "application/json")
	req.Header.Set(HeaderUserAgent, c.userAgent)
	req.Header.Set(HeaderRequestID, ulid.Make().String())

	if c.tokens == nil || path == LoginPath {
		return nil
	}

	token, ok, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("read session token: %w", err)
	}
	if ok {
		req.Header.Set(HeaderAuthorization, "Bearer "+token)
	}
	return nil
}

// BaseURL returns the base URL of the client.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// ParseResponse parses a JSON response body into the target struct.
// It always closes the body. An empty body or nil target decodes nothing.
func ParseResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if target == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
