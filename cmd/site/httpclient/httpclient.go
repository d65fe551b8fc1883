package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"strapi-blog/cmd/internal/logger"
	"strapi-blog/cmd/site/metrics"
	"strapi-blog/cmd/site/trace"
)

// Config holds the settings shared by outbound HTTP clients.
type Config struct {
	Timeout time.Duration
	// Transport defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

// loggingRoundTripper logs every outbound call with its resolved URL and
// propagates X-Request-Id / X-Span-Id.
type loggingRoundTripper struct {
	inner http.RoundTripper
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID, spanID := trace.NextSpanID(req.Context())
	if h := req.Header.Get("X-Request-Id"); h != "" && trace.RequestIDFromContext(req.Context()) == "" {
		requestID = h
	}
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("X-Span-Id", spanID)

	resp, err := l.inner.RoundTrip(req)
	duration := time.Since(start)
	if err != nil {
		metrics.ObserveUpstream(req.Method, 0, duration)
		logger.ErrorWithFields("httpclient request failed", logger.Fields{
			"method":     req.Method,
			"url":        req.URL.String(),
			"duration":   duration.String(),
			"request_id": requestID,
			"span_id":    spanID,
			"error":      err.Error(),
		})
		return nil, err
	}

	metrics.ObserveUpstream(req.Method, resp.StatusCode, duration)
	fields := logger.Fields{
		"method":     req.Method,
		"url":        req.URL.String(),
		"status":     resp.StatusCode,
		"duration":   duration.String(),
		"request_id": requestID,
		"span_id":    spanID,
	}
	if resp.StatusCode >= 400 {
		logger.WarnWithFields("httpclient request returned error status", fields)
	} else {
		logger.DebugWithFields("httpclient request success", fields)
	}
	return resp, nil
}

// BaseClient pairs an http.Client with the base URL that relative targets
// are resolved against.
type BaseClient struct {
	HTTPClient *http.Client
	BaseURL    string
	// Header is sent with every request unless the caller overrides a key.
	Header http.Header
}

// DefaultHeader is the header set every request starts from.
func DefaultHeader() http.Header {
	return http.Header{"Content-Type": []string{"application/json"}}
}

func NewBaseClient(baseURL string) *BaseClient {
	return NewBaseClientWithClient(nil, baseURL)
}

// NewBaseClientWithClient uses httpClient, or the default client when nil.
func NewBaseClientWithClient(httpClient *http.Client, baseURL string) *BaseClient {
	if httpClient == nil {
		httpClient = NewDefault()
	}
	return &BaseClient{
		HTTPClient: httpClient,
		BaseURL:    baseURL,
		Header:     DefaultHeader(),
	}
}

// HasScheme reports whether target is already a fully-qualified URL.
func HasScheme(target string) bool {
	u, err := url.Parse(target)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// ResolveURL joins target onto BaseURL and appends rawQuery.
// Fully-qualified targets are returned untouched, query included.
func (c *BaseClient) ResolveURL(target, rawQuery string) (string, error) {
	if HasScheme(target) {
		return target, nil
	}
	if strings.Contains(target, "?") {
		return "", fmt.Errorf("httpclient: relative target must not contain a query string (pass rawQuery instead): %s", target)
	}
	if target != "" && !strings.HasPrefix(target, "/") {
		target = "/" + target
	}
	resolved := c.BaseURL + target
	if rawQuery != "" {
		resolved += "?" + rawQuery
	}
	return resolved, nil
}

// NewRequest builds a request for target. An empty method means GET.
// header entries replace the client defaults key by key.
func (c *BaseClient) NewRequest(ctx context.Context, method, target, rawQuery string, body io.Reader, header http.Header) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if method == "" {
		method = http.MethodGet
	}
	resolved, err := c.ResolveURL(target, rawQuery)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, resolved, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range c.Header {
		req.Header[k] = append([]string(nil), vs...)
	}
	for k, vs := range header {
		req.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}
	return req, nil
}

func (c *BaseClient) Do(req *http.Request) (*http.Response, error) {
	return c.HTTPClient.Do(req)
}

// New builds an http.Client with logging. A zero Timeout means 10s.
func New(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &loggingRoundTripper{inner: transport},
	}
}

func NewDefault() *http.Client {
	return New(Config{})
}
