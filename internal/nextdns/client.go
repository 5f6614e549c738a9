// Package nextdns is the server-side client for the upstream DNS-filtering API.
//
// The Client is the only component that holds the upstream credential and the
// only one that talks to the upstream. Every call funnels through Client.do,
// which attaches the credential and normalizes failures into *UpstreamError.
//
// Failure policy:
//   - Profile reads and all writes propagate upstream failures.
//   - Allowlist, denylist, analytics and log reads never fail; they degrade to an
//     empty (or zeroed) value and report it through Result.Degraded.
package nextdns

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jroosing/nextdash/internal/pool"
)

const (
	// DefaultBaseURL is the public upstream API endpoint.
	DefaultBaseURL = "https://api.nextdns.io"

	// APIKeyHeader carries the upstream credential.
	APIKeyHeader = "X-Api-Key"

	maxErrorBody = 64 << 10

	// Response buffers larger than this are not returned to the pool.
	maxPooledBuffer = 1 << 20
)

var bodyBuffers = pool.NewBufferPool(maxPooledBuffer)

// Options configures a Client.
type Options struct {
	BaseURL string
	APIKey  string

	// Timeout bounds a whole upstream exchange. Zero keeps the transport default.
	Timeout time.Duration

	// HTTPClient overrides the HTTP client; Timeout is ignored when set.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client issues upstream calls on behalf of the route handlers.
// It is safe for concurrent use; configuration is read-only after New.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	stats      clientStats
}

// New creates a Client. An empty APIKey is accepted: requests are still sent and
// fail with whatever the upstream answers for a missing credential.
func New(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     opts.APIKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the upstream endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasCredential reports whether an API key was configured.
func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}

// do performs one upstream exchange. A 204 response yields a nil body and no error.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	defer func() { c.stats.recordLatency(time.Since(start)) }()
	c.stats.requests.Add(1)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.stats.failures.Add(1)
		c.logger.Error("upstream request failed", "method", method, "path", path, "err", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.stats.failures.Add(1)
		c.logger.Error("upstream request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return nil, newUpstreamError(resp.StatusCode, strings.TrimSpace(string(text)))
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	buf := bodyBuffers.Get()
	defer bodyBuffers.Put(buf)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		c.stats.failures.Add(1)
		return nil, fmt.Errorf("read response: %w", err)
	}
	data := bytes.Clone(buf.Bytes())

	c.logger.Debug("upstream request", "method", method, "path", path, "status", resp.StatusCode)
	return data, nil
}

func profilePath(profileID string, parts ...string) string {
	var b strings.Builder
	b.WriteString("/profiles/")
	b.WriteString(url.PathEscape(profileID))
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(p)
	}
	return b.String()
}

func withQuery(path string, params map[string]string) string {
	if len(params) == 0 {
		return path
	}
	q := make(url.Values, len(params))
	for k, v := range params {
		q.Set(k, v)
	}
	return path + "?" + q.Encode()
}
