// Package apiclient is the single path every backend request takes. It attaches the
// bearer token, refreshes it transparently when it has expired or is rejected, and
// reshapes failures into the normalized AppError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/charlesng35/assetdesk/internal/tokens"
	apperrors "github.com/charlesng35/assetdesk/pkg/errors"
	"github.com/charlesng35/assetdesk/pkg/logger"
	"github.com/charlesng35/assetdesk/pkg/metrics"
)

const (
	maxBodyBytes     = 8 << 20
	RequestIDHeader  = "X-Request-ID"
	defaultUserAgent = "assetdesk"
)

// Config binds a Client to one backend service.
type Config struct {
	Service    string
	BaseURL    string
	HTTPClient *http.Client
	Tokens     Tokens
	Refresher  *Refresher
	Limiter    *rate.Limiter
	UserAgent  string
	Now        func() time.Time
}

// Client sends requests to one backend service.
type Client struct {
	service   string
	baseURL   string
	http      *http.Client
	tokens    Tokens
	refresher *Refresher
	limiter   *rate.Limiter
	userAgent string
	now       func() time.Time
	log       *zap.Logger
}

// Request describes one call. Body is JSON encoded when non-nil.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// New constructs a Client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("apiclient: base url required for service %q", cfg.Service)
	}
	if u, err := url.Parse(base); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("apiclient: invalid base url %q", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	service := cfg.Service
	if service == "" {
		service = "default"
	}

	return &Client{
		service:   service,
		baseURL:   base,
		http:      httpClient,
		tokens:    cfg.Tokens,
		refresher: cfg.Refresher,
		limiter:   cfg.Limiter,
		userAgent: ua,
		now:       now,
		log:       logger.WithService("apiclient", service),
	}, nil
}

// Service names the backend this client talks to.
func (c *Client) Service() string {
	return c.service
}

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

// EnsureFresh refreshes the stored access token if it is expired or about to be.
// It is a no-op without a session.
func (c *Client) EnsureFresh(ctx context.Context) error {
	if c.tokens == nil || c.refresher == nil {
		return nil
	}
	token := c.tokens.AccessToken(ctx)
	if token == "" || !tokens.IsExpiredAt(token, c.now()) {
		return nil
	}
	_, err := c.refresher.Refresh(ctx, token)
	return err
}

// Do sends req and decodes a successful JSON response into out (which may be nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if req.Method == "" {
		req.Method = http.MethodGet
	}

	var body []byte
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("apiclient: encode body: %w", err)
		}
		body = encoded
	}

	token, err := c.tokenFor(ctx, req.Path)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	for attempt := 0; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("apiclient: rate limit: %w", err)
			}
		}

		status, raw, err := c.send(ctx, req, body, token, requestID)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			c.record(req.Method, "network")
			c.log.Warn("network failure", zap.String("method", req.Method), zap.String("path", req.Path), zap.Error(err))
			return networkError(err)
		}
		c.record(req.Method, strconv.Itoa(status))

		switch decide(req.Path, status, attempt) {
		case decisionDone:
			return decodeBody(raw, out)
		case decisionRefreshAndRetry:
			if c.refresher == nil || c.tokens == nil {
				return normalizeError(status, raw)
			}
			c.log.Debug("unauthorized, refreshing and retrying", zap.String("path", req.Path))
			fresh, err := c.refresher.Refresh(ctx, token)
			if err != nil {
				return err
			}
			token = fresh
		default:
			appErr := normalizeError(status, raw)
			if status == http.StatusForbidden {
				c.log.Warn("forbidden", zap.String("method", req.Method), zap.String("path", req.Path), zap.String("message", appErr.Message))
			}
			return appErr
		}
	}
}

// tokenFor returns the bearer token to attach, refreshing it first when it is expired.
func (c *Client) tokenFor(ctx context.Context, path string) (string, error) {
	if c.tokens == nil || isAuthPath(path) {
		return "", nil
	}
	token := c.tokens.AccessToken(ctx)
	if token == "" || c.refresher == nil || !tokens.IsExpiredAt(token, c.now()) {
		return token, nil
	}
	return c.refresher.Refresh(ctx, token)
}

func (c *Client) send(ctx context.Context, req Request, body []byte, token, requestID string) (int, []byte, error) {
	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, reader)
	if err != nil {
		return 0, nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := c.http.Do(httpReq)
	metrics.OutboundLatency.WithLabelValues(c.service, req.Method).Observe(time.Since(start).Seconds())
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, err
	}
	return res.StatusCode, raw, nil
}

func (c *Client) record(method, status string) {
	metrics.OutboundRequests.WithLabelValues(c.service, method, status).Inc()
}

func decodeBody(raw []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.Wrap(fmt.Errorf("apiclient: decode response: %w", err), "Unexpected response from server")
	}
	return nil
}

// IsSessionExpired reports whether err ended the session.
func IsSessionExpired(err error) bool {
	return errors.Is(err, apperrors.ErrSessionExpired)
}
