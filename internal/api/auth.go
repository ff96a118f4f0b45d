package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/charlesng35/assetdesk/internal/apiclient"
	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/querycache"
	"github.com/charlesng35/assetdesk/pkg/logger"
	"github.com/charlesng35/assetdesk/pkg/validator"
)

const (
	loginPath          = "/api/v1/authentication/login"
	logoutPath         = "/api/v1/authentication/logout"
	registerPath       = "/api/v1/authentication/register"
	profilePath        = "/api/v1/user-profile/me"
	changePasswordPath = "/api/v1/user-profile/change-password"
)

// Tokens is the token store the auth module writes to.
type Tokens = apiclient.Tokens

// UserSink receives the signed-in profile. *state.AuthSlice implements it.
type UserSink interface {
	SetUser(ctx context.Context, user *models.AuthenticatedUser) error
	ClearUser(ctx context.Context) error
}

// LoginDefaults fills the client metadata a login request carries.
type LoginDefaults struct {
	IPAddress string
	UserAgent string
}

func (d LoginDefaults) withFallbacks() LoginDefaults {
	if strings.TrimSpace(d.IPAddress) == "" {
		d.IPAddress = "127.0.0.1"
	}
	if strings.TrimSpace(d.UserAgent) == "" {
		d.UserAgent = "assetdesk"
	}
	return d
}

// AuthAPI covers authentication and the current user's profile.
type AuthAPI struct {
	http      *apiclient.Client
	refresher *apiclient.Refresher
	tokens    Tokens
	user      UserSink
	cache     *querycache.Cache
	defaults  LoginDefaults
}

// Login exchanges credentials for a session and persists it. Cached data belonging
// to a previous session is dropped.
func (a *AuthAPI) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if req.IPAddress == "" {
		req.IPAddress = a.defaults.IPAddress
	}
	if req.UserAgent == "" {
		req.UserAgent = a.defaults.UserAgent
	}
	if err := validator.ValidatePayload(req); err != nil {
		return nil, err
	}

	var resp models.LoginResponse
	if err := a.http.Post(ctx, loginPath, req, &resp); err != nil {
		return nil, err
	}
	if err := a.tokens.SetSession(ctx, resp.Session()); err != nil {
		return nil, err
	}
	a.cache.Reset()
	return &resp, nil
}

// SignIn logs in, loads the profile and publishes it to the user sink.
func (a *AuthAPI) SignIn(ctx context.Context, req models.LoginRequest) (*models.AuthenticatedUser, error) {
	if _, err := a.Login(ctx, req); err != nil {
		return nil, err
	}
	user, err := a.Me(ctx)
	if err != nil {
		return nil, err
	}
	if a.user != nil {
		if err := a.user.SetUser(ctx, user); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// Register creates a self-service account. It does not sign in.
func (a *AuthAPI) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := validator.ValidatePayload(req); err != nil {
		return err
	}
	return a.http.Post(ctx, registerPath, req, nil)
}

// Refresh forces a token refresh and returns the new access token.
func (a *AuthAPI) Refresh(ctx context.Context) (string, error) {
	if a.refresher == nil {
		return "", errors.New("auth: refresher is not configured")
	}
	return a.refresher.Refresh(ctx, a.tokens.AccessToken(ctx))
}

// Logout tells the backend to revoke the refresh token and always clears the local
// session, cache and user, whatever the backend answered.
func (a *AuthAPI) Logout(ctx context.Context) error {
	log := logger.WithModule("auth")

	if refresh := a.tokens.RefreshToken(ctx); refresh != "" {
		body := models.RefreshRequest{RefreshToken: refresh}
		if err := a.http.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: logoutPath, Body: body}, nil); err != nil {
			log.Warn("logout request failed", zap.Error(err))
		}
	}

	a.cache.Reset()
	err := a.tokens.ClearTokens(ctx)
	if a.user != nil {
		err = multierr.Append(err, a.user.ClearUser(ctx))
	}
	return err
}

// Me loads the signed-in user's profile.
func (a *AuthAPI) Me(ctx context.Context) (*models.AuthenticatedUser, error) {
	provides := []querycache.Tag{querycache.ListTag(TagProfile)}
	return querycache.Fetch(ctx, a.cache, querycache.Key("auth.me"), provides, func(ctx context.Context) (*models.AuthenticatedUser, error) {
		var user models.AuthenticatedUser
		if err := a.http.Get(ctx, profilePath, nil, &user); err != nil {
			return nil, err
		}
		return &user, nil
	})
}

// RevalidateProfile drops the cached profile, loads it again and republishes it.
func (a *AuthAPI) RevalidateProfile(ctx context.Context) (*models.AuthenticatedUser, error) {
	a.cache.Invalidate(querycache.TypeTag(TagProfile))
	user, err := a.Me(ctx)
	if err != nil {
		return nil, err
	}
	if a.user != nil {
		if err := a.user.SetUser(ctx, user); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// ChangePassword updates the current user's password.
func (a *AuthAPI) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	if err := validator.ValidatePayload(req); err != nil {
		return err
	}
	return a.http.Put(ctx, changePasswordPath, req, nil)
}
