package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charlesng35/assetdesk/internal/database"
)

// Config selects and configures a local-storage backend.
type Config struct {
	// Driver is one of memory, file, sqlite, postgres, mysql or redis.
	Driver    string
	Path      string
	Namespace string
	Database  database.Config
	Redis     RedisConfig
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Open builds the configured Store. The returned Closer releases backend connections
// and is never nil.
func Open(ctx context.Context, cfg Config) (Store, io.Closer, error) {
	noop := closerFunc(func() error { return nil })

	switch driver := strings.ToLower(strings.TrimSpace(cfg.Driver)); driver {
	case "", "memory":
		return NewMemoryStore(), noop, nil
	case "file":
		store, err := NewFileStore(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	case "sqlite", "postgres", "postgresql", "mysql":
		dbCfg := cfg.Database
		dbCfg.Driver = driver
		if dbCfg.Path == "" {
			dbCfg.Path = cfg.Path
		}
		db, err := database.Open(dbCfg)
		if err != nil {
			return nil, noop, fmt.Errorf("storage: open database: %w", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			_ = database.Close(db)
			return nil, noop, fmt.Errorf("storage: %w", err)
		}
		return NewDatabaseStore(db, cfg.Namespace), closerFunc(func() error { return database.Close(db) }), nil
	case "redis":
		redisCfg := cfg.Redis
		if redisCfg.Namespace == "" {
			redisCfg.Namespace = cfg.Namespace
		}
		store, err := NewRedisStore(ctx, redisCfg)
		if err != nil {
			return nil, noop, err
		}
		return store, store, nil
	default:
		return nil, noop, fmt.Errorf("storage: unsupported driver %q", cfg.Driver)
	}
}
