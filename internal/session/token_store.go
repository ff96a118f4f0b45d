// Package session owns the persisted bearer tokens. Every token is written twice,
// to a cookie the edge middleware can inspect and to local storage, and read back
// cookie first.
package session

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/storage"
	"github.com/charlesng35/assetdesk/pkg/logger"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"

	AccessTokenKey  = "accessToken"
	RefreshTokenKey = "refreshToken"
	UserKey         = "user"
)

// TokenStore reads and writes the session tokens. Either backend may be nil;
// with both nil every read returns "".
type TokenStore struct {
	cookies CookieStore
	local   storage.Store
	opts    CookieOptions
	now     func() time.Time
	log     *zap.Logger
}

// NewTokenStore wires the two persistence backends.
func NewTokenStore(cookies CookieStore, local storage.Store, opts CookieOptions) *TokenStore {
	return &TokenStore{
		cookies: cookies,
		local:   local,
		opts:    opts,
		now:     time.Now,
		log:     logger.WithModule("session"),
	}
}

// Local exposes the local-storage backend so other state can share it.
func (s *TokenStore) Local() storage.Store {
	return s.local
}

// SetAccessToken persists the access token to cookie and local storage.
func (s *TokenStore) SetAccessToken(ctx context.Context, token string) error {
	return s.set(ctx, AccessTokenCookie, AccessTokenKey, token)
}

// SetRefreshToken persists the refresh token to cookie and local storage.
func (s *TokenStore) SetRefreshToken(ctx context.Context, token string) error {
	return s.set(ctx, RefreshTokenCookie, RefreshTokenKey, token)
}

// SetSession persists both tokens. An empty refresh token leaves the stored one in place.
func (s *TokenStore) SetSession(ctx context.Context, sess models.Session) error {
	err := s.SetAccessToken(ctx, sess.AccessToken)
	if sess.RefreshToken != "" {
		err = multierr.Append(err, s.SetRefreshToken(ctx, sess.RefreshToken))
	}
	return err
}

// AccessToken returns the current access token or "".
func (s *TokenStore) AccessToken(ctx context.Context) string {
	return s.get(ctx, AccessTokenCookie, AccessTokenKey)
}

// RefreshToken returns the current refresh token or "".
func (s *TokenStore) RefreshToken(ctx context.Context) string {
	return s.get(ctx, RefreshTokenCookie, RefreshTokenKey)
}

// IsAuthenticated reports whether an access token is present. It does not look at expiry.
func (s *TokenStore) IsAuthenticated(ctx context.Context) bool {
	return s.AccessToken(ctx) != ""
}

// ClearTokens removes both copies of both tokens and the cached user profile.
func (s *TokenStore) ClearTokens(ctx context.Context) error {
	if s == nil {
		return nil
	}
	if s.cookies != nil {
		s.cookies.SetCookie(s.opts.deletion(AccessTokenCookie))
		s.cookies.SetCookie(s.opts.deletion(RefreshTokenCookie))
	}
	if s.local == nil {
		return nil
	}

	var err error
	for _, key := range []string{AccessTokenKey, RefreshTokenKey, UserKey} {
		err = multierr.Append(err, s.local.Delete(ctx, key))
	}
	if err != nil {
		return fmt.Errorf("session: clear tokens: %w", err)
	}
	s.log.Debug("session cleared")
	return nil
}

func (s *TokenStore) set(ctx context.Context, cookie, key, token string) error {
	if s == nil {
		return nil
	}
	if token == "" {
		return fmt.Errorf("session: empty %s", key)
	}
	if s.cookies != nil {
		s.cookies.SetCookie(s.opts.build(cookie, token, s.now()))
	}
	if s.local != nil {
		if err := s.local.Set(ctx, key, token); err != nil {
			return fmt.Errorf("session: persist %s: %w", key, err)
		}
	}
	return nil
}

func (s *TokenStore) get(ctx context.Context, cookie, key string) string {
	if s == nil {
		return ""
	}
	if s.cookies != nil {
		if v, ok := s.cookies.Cookie(cookie); ok {
			return v
		}
	}
	if s.local == nil {
		return ""
	}
	v, ok, err := s.local.Get(ctx, key)
	if err != nil {
		s.log.Warn("failed to read token from local storage", zap.String("key", key), zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return v
}
