package apiclient

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

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/tokens"
	apperrors "github.com/charlesng35/assetdesk/pkg/errors"
	"github.com/charlesng35/assetdesk/pkg/logger"
	"github.com/charlesng35/assetdesk/pkg/metrics"
)

// RefreshPath is the authentication endpoint that rotates tokens.
const RefreshPath = "/api/v1/authentication/refresh"

// Tokens is the token persistence the client depends on. *session.TokenStore implements it.
type Tokens interface {
	AccessToken(ctx context.Context) string
	RefreshToken(ctx context.Context) string
	SetSession(ctx context.Context, sess models.Session) error
	ClearTokens(ctx context.Context) error
}

// Navigator is told when the session is gone and the user must sign in again.
type Navigator interface {
	RedirectToLogin(ctx context.Context, reason string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, reason string)

// RedirectToLogin calls f.
func (f NavigatorFunc) RedirectToLogin(ctx context.Context, reason string) {
	if f != nil {
		f(ctx, reason)
	}
}

// RefresherConfig configures a Refresher.
type RefresherConfig struct {
	AuthURL    string
	HTTPClient *http.Client
	Tokens     Tokens
	Navigator  Navigator
	Now        func() time.Time
}

// Refresher performs token refreshes for every Client in the process. At most one
// refresh request is in flight; concurrent callers wait for its result.
type Refresher struct {
	authURL string
	http    *http.Client
	tokens  Tokens
	nav     Navigator
	now     func() time.Time
	group   singleflight.Group
	log     *zap.Logger
}

// NewRefresher builds a Refresher.
func NewRefresher(cfg RefresherConfig) *Refresher {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Refresher{
		authURL: strings.TrimRight(cfg.AuthURL, "/"),
		http:    httpClient,
		tokens:  cfg.Tokens,
		nav:     cfg.Navigator,
		now:     now,
		log:     logger.WithModule("apiclient").With(zap.String("component", "refresher")),
	}
}

// Refresh returns a usable access token. stale is the token the caller found to
// be expired or rejected; if another caller has already replaced it the stored
// token is returned without contacting the server.
//
// On failure the session is torn down, the navigator is told to go to login and
// ErrSessionExpired is returned.
func (r *Refresher) Refresh(ctx context.Context, stale string) (string, error) {
	ch := r.group.DoChan("refresh", func() (interface{}, error) {
		// Detached so one caller giving up does not fail the refresh for everyone else.
		return r.refresh(context.WithoutCancel(ctx), stale)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (r *Refresher) refresh(ctx context.Context, stale string) (string, error) {
	if current := r.tokens.AccessToken(ctx); current != "" && current != stale && !tokens.IsExpiredAt(current, r.now()) {
		metrics.TokenRefreshes.WithLabelValues("reused").Inc()
		return current, nil
	}

	refreshToken := r.tokens.RefreshToken(ctx)
	if refreshToken == "" {
		return "", r.teardown(ctx, "no refresh token", nil)
	}

	r.log.Info("refreshing access token")
	resp, err := r.post(ctx, refreshToken)
	if err != nil {
		return "", r.teardown(ctx, "refresh rejected", err)
	}

	if err := r.tokens.SetSession(ctx, models.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    resp.ExpiresAt,
	}); err != nil {
		return "", r.teardown(ctx, "persist refreshed tokens", err)
	}

	metrics.TokenRefreshes.WithLabelValues("success").Inc()
	r.log.Info("access token refreshed", zap.Bool("rotated", resp.RefreshToken != ""))
	return resp.AccessToken, nil
}

func (r *Refresher) post(ctx context.Context, refreshToken string) (*models.RefreshResponse, error) {
	body, err := json.Marshal(models.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.authURL+RefreshPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := r.http.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, networkError(err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, normalizeError(res.StatusCode, raw)
	}

	var out models.RefreshResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("apiclient: decode refresh response: %w", err)
	}
	if out.AccessToken == "" {
		return nil, errors.New("apiclient: refresh response carried no access token")
	}
	return &out, nil
}

func (r *Refresher) teardown(ctx context.Context, reason string, cause error) error {
	metrics.TokenRefreshes.WithLabelValues("failure").Inc()
	r.log.Warn("token refresh failed, ending session", zap.String("reason", reason), zap.Error(cause))

	if err := r.tokens.ClearTokens(ctx); err != nil {
		r.log.Error("failed to clear tokens", zap.Error(err))
	}
	if r.nav != nil {
		r.nav.RedirectToLogin(ctx, reason)
	}

	if cause == nil {
		return apperrors.ErrSessionExpired
	}
	return apperrors.ErrSessionExpired.WithInternal(cause)
}
