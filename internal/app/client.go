package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/charlesng35/assetdesk/internal/api"
	"github.com/charlesng35/assetdesk/internal/apiclient"
	"github.com/charlesng35/assetdesk/internal/querycache"
	"github.com/charlesng35/assetdesk/internal/session"
	"github.com/charlesng35/assetdesk/internal/state"
	"github.com/charlesng35/assetdesk/internal/storage"
	"github.com/charlesng35/assetdesk/pkg/logger"
)

// Client bundles the long-lived pieces a dashboard consumer needs: persisted
// storage, the token store, application state and the resource modules.
type Client struct {
	Local     storage.Store
	Cookies   *storage.CookieJar
	Tokens    *session.TokenStore
	State     *state.AppState
	Refresher *apiclient.Refresher
	Auth      *apiclient.Client
	Equipment *apiclient.Client
	API       *api.Client

	closer io.Closer
}

// NewClient opens storage, hydrates state and wires the HTTP clients. nav is told
// when the session can no longer be refreshed; it may be nil.
func NewClient(ctx context.Context, cfg *Config, nav apiclient.Navigator) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.WithModule("bootstrap")

	local, closer, err := storage.Open(ctx, cfg.Storage.StoreConfig())
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}
	c := &Client{Local: local, closer: closer}
	success := false
	defer func() {
		if !success {
			_ = c.Close()
		}
	}()

	origin := strings.TrimSpace(cfg.Server.DashboardOrigin)
	if origin != "" {
		if c.Cookies, err = storage.NewCookieJar(origin); err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
	}

	var cookies session.CookieStore
	if c.Cookies != nil {
		cookies = c.Cookies
	}
	c.Tokens = session.NewTokenStore(cookies, local, cfg.Cookies.CookieOptions())

	c.State = state.New(local, c.Tokens)
	if err := c.State.Init(ctx); err != nil {
		log.Warn("state hydration incomplete", zap.Error(err))
	}

	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}
	if nav == nil {
		nav = apiclient.NavigatorFunc(func(ctx context.Context, reason string) {
			if err := c.State.Auth.ClearUser(ctx); err != nil {
				log.Warn("clear user after session end", zap.Error(err))
			}
		})
	}
	c.Refresher = apiclient.NewRefresher(apiclient.RefresherConfig{
		AuthURL:    cfg.Services.AuthURL,
		HTTPClient: httpClient,
		Tokens:     c.Tokens,
		Navigator:  nav,
	})

	var limiter *rate.Limiter
	if cfg.HTTP.RateLimit > 0 {
		burst := cfg.HTTP.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.HTTP.RateLimit), burst)
	}

	build := func(service, base string) (*apiclient.Client, error) {
		return apiclient.New(apiclient.Config{
			Service:    service,
			BaseURL:    base,
			HTTPClient: httpClient,
			Tokens:     c.Tokens,
			Refresher:  c.Refresher,
			Limiter:    limiter,
			UserAgent:  cfg.HTTP.UserAgent,
		})
	}
	if c.Auth, err = build("auth", cfg.Services.AuthURL); err != nil {
		return nil, err
	}
	if c.Equipment, err = build("equipment", cfg.Services.EquipmentURL); err != nil {
		return nil, err
	}

	c.API, err = api.New(api.Config{
		AuthService:      c.Auth,
		EquipmentService: c.Equipment,
		Refresher:        c.Refresher,
		Tokens:           c.Tokens,
		User:             c.State.Auth,
		Cache:            querycache.New(cfg.Cache.QueryCacheOptions()),
		LoginDefaults:    api.LoginDefaults{UserAgent: cfg.HTTP.UserAgent},
	})
	if err != nil {
		return nil, err
	}

	success = true
	return c, nil
}

// Close releases storage connections.
func (c *Client) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	return err
}
