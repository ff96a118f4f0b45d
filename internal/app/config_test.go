package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata"))
	require.NoError(t, err)

	require.Equal(t, "https://auth.example.com", cfg.Services.AuthURL)
	require.Equal(t, "https://equipment.example.com", cfg.Services.EquipmentURL)
	require.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	require.Equal(t, 5.0, cfg.HTTP.RateLimit)
	require.Equal(t, 3, cfg.HTTP.Burst)

	require.Equal(t, "strict", cfg.Cookies.SameSite)
	require.True(t, cfg.Cookies.Secure)
	require.Equal(t, 24*time.Hour, cfg.Cookies.MaxAge)
	require.Equal(t, "/", cfg.Cookies.Path)

	require.Equal(t, "postgres", cfg.Storage.Driver)
	require.Equal(t, "db.example.com", cfg.Storage.Postgres.Host)
	require.Equal(t, 5432, cfg.Storage.Postgres.Port)

	require.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	require.Equal(t, 5*time.Minute, cfg.Cache.CleanupInterval)
	require.Equal(t, 30*time.Second, cfg.Session.Keepalive)
	require.Zero(t, cfg.Session.ProfileRefresh)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, []string{"/status", "/docs/"}, cfg.Server.PublicRoutes)
	require.Equal(t, "/login", cfg.Server.LoginPath)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromResolvesFlagValue(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join("testdata", "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, "https://auth.example.com", cfg.Services.AuthURL)

	cfg, err = LoadConfigFrom("testdata")
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)

	_, err = LoadConfigFrom(filepath.Join("testdata", "missing.yaml"))
	require.ErrorContains(t, err, "does not exist")
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "file", cfg.Storage.Driver)
	require.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	require.Equal(t, time.Minute, cfg.Session.Keepalive)
	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, "/dashboard", cfg.Server.HomePath)
	require.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("ASSETDESK_SERVICES_AUTH_URL", "https://auth.internal")
	t.Setenv("ASSETDESK_SESSION_KEEPALIVE", "45s")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "https://auth.internal", cfg.Services.AuthURL)
	require.Equal(t, 45*time.Second, cfg.Session.Keepalive)
}

func TestValidateRequiresServices(t *testing.T) {
	var nilCfg *Config
	require.Error(t, nilCfg.Validate())
	require.ErrorContains(t, (&Config{}).Validate(), "services.auth_url")
	require.ErrorContains(t, (&Config{Services: ServicesConfig{AuthURL: "http://a"}}).Validate(), "services.equipment_url")
}

func TestStoreConfigMapsHostDatabases(t *testing.T) {
	cfg := StorageConfig{
		Driver:    " MySQL ",
		Namespace: "ops",
		MySQL:     DBAuthConfig{Host: "db", Port: 3307, Database: "assetdesk", Username: "u", Password: "p"},
		Postgres:  DBAuthConfig{Host: "ignored"},
	}
	out := cfg.StoreConfig()
	require.Equal(t, "mysql", out.Driver)
	require.Equal(t, "mysql", out.Database.Driver)
	require.Equal(t, "db", out.Database.Host)
	require.Equal(t, 3307, out.Database.Port)
	require.Equal(t, "assetdesk", out.Database.Name)
	require.Equal(t, "ops", out.Namespace)

	file := StorageConfig{Driver: "file", Path: "/tmp/s.json"}.StoreConfig()
	require.Empty(t, file.Database.Host)
	require.Equal(t, "/tmp/s.json", file.Path)
}

func TestCookieOptionsFallBackToDefaults(t *testing.T) {
	opts := CookieConfig{}.CookieOptions()
	require.Equal(t, "/", opts.Path)
	require.Equal(t, "lax", opts.SameSite)
	require.Equal(t, 7*24*time.Hour, opts.MaxAge)

	opts = CookieConfig{SameSite: "none", Secure: true, MaxAge: time.Hour}.CookieOptions()
	require.Equal(t, "none", opts.SameSite)
	require.True(t, opts.Secure)
	require.Equal(t, time.Hour, opts.MaxAge)
}

func TestApplyRuntimeDefaults(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{Driver: "file"}, Server: ServerConfig{Port: 3000}}
	derived, err := ApplyRuntimeDefaults(cfg)
	require.NoError(t, err)

	require.NotEmpty(t, cfg.Storage.Namespace)
	require.Equal(t, storageFileName, filepath.Base(cfg.Storage.Path))
	require.Equal(t, "http://localhost:3000", cfg.Server.DashboardOrigin)
	require.Contains(t, cfg.HTTP.UserAgent, "assetdesk/")
	require.True(t, derived["storage.path"])
	require.True(t, derived["server.dashboard_origin"])

	kept := &Config{
		Storage: StorageConfig{Driver: "redis", Namespace: "ops"},
		Server:  ServerConfig{DashboardOrigin: "https://dash"},
		HTTP:    HTTPConfig{UserAgent: "custom"},
	}
	derived, err = ApplyRuntimeDefaults(kept)
	require.NoError(t, err)
	require.Empty(t, derived)
	require.Empty(t, kept.Storage.Path)
	require.Equal(t, "custom", kept.HTTP.UserAgent)

	_, err = ApplyRuntimeDefaults(nil)
	require.Error(t, err)
}
