package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/session"
)

func testConfig(url string) *Config {
	return &Config{
		Services: ServicesConfig{AuthURL: url, EquipmentURL: url},
		HTTP:     HTTPConfig{Timeout: 5 * time.Second, RateLimit: 100, Burst: 10},
		Storage:  StorageConfig{Driver: "memory"},
		Server:   ServerConfig{DashboardOrigin: "http://localhost:3000"},
	}
}

func TestNewClientSignsInThroughCookieJar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/authentication/login":
			_ = json.NewEncoder(w).Encode(models.LoginResponse{AccessToken: "opaque-access", RefreshToken: "r1"})
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "not found"})
		}
	}))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	c, err := NewClient(ctx, testConfig(srv.URL), nil)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, c.Close()) })

	require.True(t, c.State.Auth.Hydrated())
	require.False(t, c.State.Auth.IsAuthenticated())

	_, err = c.API.Auth.Login(ctx, models.LoginRequest{Email: "ops@example.com", Password: "pw"})
	require.NoError(t, err)

	v, ok := c.Cookies.Cookie(session.AccessTokenCookie)
	require.True(t, ok)
	require.Equal(t, "opaque-access", v)
	require.Equal(t, "r1", c.Tokens.RefreshToken(ctx))
}

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{}, nil)
	require.Error(t, err)

	cfg := testConfig("http://localhost:1")
	cfg.Storage.Driver = "etcd"
	_, err = NewClient(context.Background(), cfg, nil)
	require.ErrorContains(t, err, "open local storage")
}
