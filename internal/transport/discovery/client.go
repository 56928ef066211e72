// Package discovery talks to a Vertex AI Search (Discovery Engine) serving config.
package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/searchview/internal/domain"
	"github.com/kailas-cloud/searchview/internal/domain/search/request"
	"github.com/kailas-cloud/searchview/internal/metrics"
)

// defaultMaxResponseBytes bounds how much of a backend answer is read into memory.
const defaultMaxResponseBytes = 32 << 20

// Config holds the backend client settings.
type Config struct {
	Endpoint      string
	RawEndpoint   bool
	Project       string
	Location      string
	Collection    string
	Engine        string
	ServingConfig string
	Timeout       time.Duration
	RateLimit     float64 // requests per second, 0 = unlimited
	UserAgent     string
	Logger        *zap.Logger
	HTTPClient    *http.Client

	// MaxResponseBytes rejects larger answers. 0 means 32 MiB.
	MaxResponseBytes int64
}

// Client is a search backend client. Safe for concurrent use.
type Client struct {
	url       string
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    *zap.Logger
	maxBytes  int64
}

// New creates a backend client.
func New(cfg *Config) (*Client, error) {
	target, err := buildURL(cfg)
	if err != nil {
		return nil, err
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	maxBytes := cfg.MaxResponseBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxResponseBytes
	}

	return &Client{
		url:       target,
		client:    hc,
		limiter:   limiter,
		userAgent: cfg.UserAgent,
		logger:    logger,
		maxBytes:  maxBytes,
	}, nil
}

func buildURL(cfg *Config) (string, error) {
	base, err := url.Parse(cfg.Endpoint)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("invalid backend endpoint %q", cfg.Endpoint)
	}
	if cfg.RawEndpoint {
		return cfg.Endpoint, nil
	}
	if cfg.Project == "" || cfg.Engine == "" {
		return "", fmt.Errorf("backend project and engine are required")
	}
	path := fmt.Sprintf("/v1/projects/%s/locations/%s/collections/%s/engines/%s/servingConfigs/%s:search",
		url.PathEscape(cfg.Project),
		url.PathEscape(orDefault(cfg.Location, "global")),
		url.PathEscape(orDefault(cfg.Collection, "default_collection")),
		url.PathEscape(cfg.Engine),
		url.PathEscape(orDefault(cfg.ServingConfig, "default_search")),
	)
	return strings.TrimRight(cfg.Endpoint, "/") + path, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// URL returns the resolved search URL.
func (c *Client) URL() string { return c.url }

// Search sends one search call and returns the raw response body.
// No retries: a failed call is reported to the caller as-is.
func (c *Client) Search(ctx context.Context, req *request.Request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			// A cancelled caller is not throttling.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("rate limiter: %w", ctxErr)
			}
			return nil, fmt.Errorf("rate limiter: %w: %w", domain.ErrRateLimited, err)
		}
	}

	body, err := json.Marshal(newSearchBody(req))
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		observe("error", start)
		return nil, fmt.Errorf("search request: %w: %w", domain.ErrBackendUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	status := strconv.Itoa(resp.StatusCode)
	payload, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	observe(status, start)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w: %w", domain.ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(payload)
		c.logger.Warn("search backend rejected request",
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return nil, fmt.Errorf("search: %w", domain.NewBackendError(resp.StatusCode, msg))
	}

	if int64(len(payload)) > c.maxBytes {
		c.logger.Warn("search response too large",
			zap.Int64("limit_bytes", c.maxBytes),
		)
		return nil, fmt.Errorf("read search response: %w: body exceeds %d bytes", domain.ErrBackendRejected, c.maxBytes)
	}

	metrics.BackendResponseBytes.Observe(float64(len(payload)))
	return payload, nil
}

// HealthCheck reports whether the backend host answers HTTP at all.
// Any response, including 4xx, counts as reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	u, err := url.Parse(c.url)
	if err != nil {
		return fmt.Errorf("parse backend url: %w", err)
	}
	probe := u.Scheme + "://" + u.Host + "/"

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, probe, http.NoBody)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend health: %w: %w", domain.ErrBackendUnavailable, err)
	}
	_ = resp.Body.Close()
	return nil
}

func observe(status string, start time.Time) {
	metrics.BackendRequestsTotal.WithLabelValues(status).Inc()
	metrics.BackendRequestDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}

// errorMessage extracts error.message from a Google API error body,
// falling back to a trimmed copy of the body.
func errorMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "error.message"); msg.Type == gjson.String && msg.Str != "" {
		return msg.Str
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 256 {
		s = s[:256]
	}
	return s
}
