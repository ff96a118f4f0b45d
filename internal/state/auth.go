package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/session"
	"github.com/charlesng35/assetdesk/internal/storage"
	"github.com/charlesng35/assetdesk/pkg/logger"
)

// Tokens is the part of the token store the auth slice drives.
type Tokens interface {
	IsAuthenticated(ctx context.Context) bool
	ClearTokens(ctx context.Context) error
}

// AuthSnapshot is a point-in-time copy of the auth slice.
type AuthSnapshot struct {
	User            *models.AuthenticatedUser
	IsAuthenticated bool
	IsLoading       bool
	Hydrated        bool
}

// AuthSlice holds the signed-in user.
type AuthSlice struct {
	mu            sync.RWMutex
	local         storage.Store
	tokens        Tokens
	user          *models.AuthenticatedUser
	authenticated bool
	loading       bool
	hydrated      bool
	log           *zap.Logger
}

// NewAuthSlice constructs an empty, not yet hydrated slice.
func NewAuthSlice(local storage.Store, tokens Tokens) *AuthSlice {
	return &AuthSlice{
		local:   local,
		tokens:  tokens,
		loading: true,
		log:     logger.WithModule("state").With(zap.String("slice", "auth")),
	}
}

// InitializeAuth hydrates the user from local storage without any network call.
// A stored profile without an access token is discarded.
func (a *AuthSlice) InitializeAuth(ctx context.Context) error {
	user, err := a.loadUser(ctx)
	if err == nil && user != nil && a.tokens != nil && !a.tokens.IsAuthenticated(ctx) {
		user = nil
	}

	a.mu.Lock()
	a.user = user
	a.authenticated = user != nil
	a.loading = false
	a.hydrated = true
	a.mu.Unlock()

	if err != nil {
		a.log.Warn("discarding unreadable stored user", zap.Error(err))
		return err
	}
	return nil
}

// SetUser stores user in memory and local storage.
func (a *AuthSlice) SetUser(ctx context.Context, user *models.AuthenticatedUser) error {
	if user == nil {
		return a.ClearUser(ctx)
	}

	a.mu.Lock()
	a.user = user
	a.authenticated = true
	a.loading = false
	a.hydrated = true
	a.mu.Unlock()

	if a.local == nil {
		return nil
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("state: encode user: %w", err)
	}
	if err := a.local.Set(ctx, session.UserKey, string(raw)); err != nil {
		return fmt.Errorf("state: persist user: %w", err)
	}
	return nil
}

// ClearUser wipes the user from memory and storage and clears the session tokens.
func (a *AuthSlice) ClearUser(ctx context.Context) error {
	a.mu.Lock()
	a.user = nil
	a.authenticated = false
	a.loading = false
	a.mu.Unlock()

	var err error
	if a.local != nil {
		err = multierr.Append(err, a.local.Delete(ctx, session.UserKey))
	}
	if a.tokens != nil {
		err = multierr.Append(err, a.tokens.ClearTokens(ctx))
	}
	return err
}

// SetLoading flips the loading flag, for example while the profile is fetched.
func (a *AuthSlice) SetLoading(loading bool) {
	a.mu.Lock()
	a.loading = loading
	a.mu.Unlock()
}

// User returns the signed-in user or nil.
func (a *AuthSlice) User() *models.AuthenticatedUser {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

// IsAuthenticated reports whether a user is signed in.
func (a *AuthSlice) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.authenticated
}

// IsLoading reports whether the slice is waiting for hydration or a profile fetch.
func (a *AuthSlice) IsLoading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

// Hydrated reports whether InitializeAuth has run.
func (a *AuthSlice) Hydrated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.hydrated
}

// Snapshot copies the slice.
func (a *AuthSlice) Snapshot() AuthSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return AuthSnapshot{User: a.user, IsAuthenticated: a.authenticated, IsLoading: a.loading, Hydrated: a.hydrated}
}

func (a *AuthSlice) loadUser(ctx context.Context) (*models.AuthenticatedUser, error) {
	if a.local == nil {
		return nil, nil
	}
	raw, ok, err := a.local.Get(ctx, session.UserKey)
	if err != nil {
		return nil, fmt.Errorf("state: read user: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var user models.AuthenticatedUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("state: decode user: %w", err)
	}
	return &user, nil
}
