package app

import (
	"strings"

	"github.com/charlesng35/assetdesk/internal/database"
	"github.com/charlesng35/assetdesk/internal/querycache"
	"github.com/charlesng35/assetdesk/internal/session"
	"github.com/charlesng35/assetdesk/internal/storage"
)

// QueryCacheOptions converts the cache section into querycache options.
func (c CacheConfig) QueryCacheOptions() querycache.Options {
	return querycache.Options{TTL: c.TTL, CleanupInterval: c.CleanupInterval}
}

// CookieOptions converts the cookie section into token cookie attributes.
func (c CookieConfig) CookieOptions() session.CookieOptions {
	opts := session.DefaultCookieOptions()
	opts.Domain = strings.TrimSpace(c.Domain)
	opts.Secure = c.Secure
	if p := strings.TrimSpace(c.Path); p != "" {
		opts.Path = p
	}
	if s := strings.TrimSpace(c.SameSite); s != "" {
		opts.SameSite = s
	}
	if c.MaxAge > 0 {
		opts.MaxAge = c.MaxAge
	}
	return opts
}

// StoreConfig converts the storage section into the storage package representation.
func (c StorageConfig) StoreConfig() storage.Config {
	driver := strings.ToLower(strings.TrimSpace(c.Driver))
	cfg := storage.Config{
		Driver:    driver,
		Path:      strings.TrimSpace(c.Path),
		Namespace: strings.TrimSpace(c.Namespace),
		Database: database.Config{
			Driver: driver,
			Path:   strings.TrimSpace(c.Path),
			DSN:    strings.TrimSpace(c.DSN),
		},
		Redis: storage.RedisConfig{
			Address:  strings.TrimSpace(c.Redis.Address),
			Username: strings.TrimSpace(c.Redis.Username),
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			TLS:      c.Redis.TLS,
			Timeout:  c.Redis.Timeout,
		},
	}

	var host DBAuthConfig
	switch driver {
	case "postgres", "postgresql":
		host = c.Postgres
	case "mysql":
		host = c.MySQL
	default:
		return cfg
	}
	cfg.Database.Host = strings.TrimSpace(host.Host)
	cfg.Database.Port = host.Port
	cfg.Database.Name = strings.TrimSpace(host.Database)
	cfg.Database.User = strings.TrimSpace(host.Username)
	cfg.Database.Password = host.Password
	return cfg
}
