package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config represents the runtime configuration shared by the CLI and the edge server.
type Config struct {
	Services ServicesConfig `mapstructure:"services"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Cookies  CookieConfig   `mapstructure:"cookies"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Session  SessionConfig  `mapstructure:"session"`
	Server   ServerConfig   `mapstructure:"server"`
}

// ServicesConfig locates the two backends.
type ServicesConfig struct {
	AuthURL      string `mapstructure:"auth_url"`
	EquipmentURL string `mapstructure:"equipment_url"`
}

// HTTPConfig tunes outbound requests.
type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"`
	Burst     int           `mapstructure:"burst"`
	UserAgent string        `mapstructure:"user_agent"`
}

// CookieConfig controls the token cookies.
type CookieConfig struct {
	Domain   string        `mapstructure:"domain"`
	Path     string        `mapstructure:"path"`
	SameSite string        `mapstructure:"same_site"`
	Secure   bool          `mapstructure:"secure"`
	MaxAge   time.Duration `mapstructure:"max_age"`
}

// StorageConfig selects where tokens, the user profile and UI preferences persist.
type StorageConfig struct {
	Driver    string           `mapstructure:"driver"`
	Path      string           `mapstructure:"path"`
	DSN       string           `mapstructure:"dsn"`
	Namespace string           `mapstructure:"namespace"`
	Postgres  DBAuthConfig     `mapstructure:"postgres"`
	MySQL     DBAuthConfig     `mapstructure:"mysql"`
	Redis     RedisStoreConfig `mapstructure:"redis"`
}

// DBAuthConfig represents host based database parameters.
type DBAuthConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// RedisStoreConfig holds Redis connection options.
type RedisStoreConfig struct {
	Address  string        `mapstructure:"address"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TLS      bool          `mapstructure:"tls"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// CacheConfig tunes the query cache.
type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// SessionConfig controls background session upkeep.
type SessionConfig struct {
	// Keepalive is how often the access token is checked and refreshed ahead of expiry.
	// Zero disables the job.
	Keepalive time.Duration `mapstructure:"keepalive"`
	// ProfileRefresh is how often the signed-in profile is reloaded. Zero disables it.
	ProfileRefresh time.Duration `mapstructure:"profile_refresh"`
}

// ServerConfig configures the edge server.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	LogLevel        string        `mapstructure:"log_level"`
	DashboardOrigin string        `mapstructure:"dashboard_origin"`
	LoginPath       string        `mapstructure:"login_path"`
	HomePath        string        `mapstructure:"home_path"`
	PublicRoutes    []string      `mapstructure:"public_routes"`
	RateLimit       float64       `mapstructure:"rate_limit"`
	Burst           int           `mapstructure:"burst"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoadConfig searches ./config and paths for config.yaml. A missing file is not an
// error; defaults and ASSETDESK_* variables still apply.
func LoadConfig(paths ...string) (*Config, error) {
	return load(func(v *viper.Viper) {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		for _, path := range paths {
			v.AddConfigPath(path)
		}
	})
}

// LoadConfigFrom resolves a --config flag value: empty searches the defaults, a
// directory is searched for config.yaml, anything else is read as the config file.
func LoadConfigFrom(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return LoadConfig()
	}
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("config: %q does not exist", path)
	case err != nil:
		return nil, fmt.Errorf("config: stat %q: %w", path, err)
	case info.IsDir():
		return LoadConfig(path)
	}
	return load(func(v *viper.Viper) { v.SetConfigFile(path) })
}

func load(locate func(*viper.Viper)) (*Config, error) {
	v := viper.New()
	locate(v)
	setDefaults(v)

	v.SetEnvPrefix("ASSETDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

// Validate reports configuration that cannot work at all.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if strings.TrimSpace(c.Services.AuthURL) == "" {
		return errors.New("services.auth_url must be configured")
	}
	if strings.TrimSpace(c.Services.EquipmentURL) == "" {
		return errors.New("services.equipment_url must be configured")
	}
	if c.HTTP.RateLimit < 0 || c.Server.RateLimit < 0 {
		return errors.New("rate limits must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("services.auth_url", "http://localhost:5001")
	v.SetDefault("services.equipment_url", "http://localhost:5002")

	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.rate_limit", 0)
	v.SetDefault("http.burst", 10)
	v.SetDefault("http.user_agent", "")

	v.SetDefault("cookies.domain", "")
	v.SetDefault("cookies.path", "/")
	v.SetDefault("cookies.same_site", "lax")
	v.SetDefault("cookies.secure", false)
	v.SetDefault("cookies.max_age", "168h") // 7 days

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.namespace", "")
	v.SetDefault("storage.postgres.port", 5432)
	v.SetDefault("storage.mysql.port", 3306)
	v.SetDefault("storage.redis.address", "127.0.0.1:6379")
	v.SetDefault("storage.redis.username", "")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.tls", false)
	v.SetDefault("storage.redis.timeout", "5s")

	v.SetDefault("cache.ttl", "60s")
	v.SetDefault("cache.cleanup_interval", "5m")

	v.SetDefault("session.keepalive", "1m")
	v.SetDefault("session.profile_refresh", "10m")

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.dashboard_origin", "")
	v.SetDefault("server.login_path", "/login")
	v.SetDefault("server.home_path", "/dashboard")
	v.SetDefault("server.public_routes", []string{})
	v.SetDefault("server.rate_limit", 20)
	v.SetDefault("server.burst", 40)
	v.SetDefault("server.shutdown_timeout", "15s")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}
