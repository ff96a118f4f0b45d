package storage

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisTimeout = 5 * time.Second
	redisKeyPrefix      = "assetdesk:"
)

// RedisConfig captures the connection parameters for the Redis backend.
type RedisConfig struct {
	Address   string
	Username  string
	Password  string
	DB        int
	TLS       bool
	Timeout   time.Duration
	Namespace string
}

// RedisStore implements Store on Redis so several hosts can share one operator session.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection with PING so that
// misconfiguration surfaces at start-up.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	cfg.Address = strings.TrimSpace(cfg.Address)
	if cfg.Address == "" {
		return nil, errors.New("storage: redis address is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRedisTimeout
	}

	opts := &redis.Options{
		Addr:         cfg.Address,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ensureContext(ctx), cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("storage: redis ping: %w", err)
	}

	return newRedisStore(client, cfg.Namespace), nil
}

func newRedisStore(client *redis.Client, namespace string) *RedisStore {
	prefix := redisKeyPrefix
	if ns := strings.TrimSpace(namespace); ns != "" {
		prefix += ns + ":"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil {
		return "", false, ErrNotInitialised
	}
	v, err := s.client.Get(ensureContext(ctx), s.prefixed(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if s == nil {
		return ErrNotInitialised
	}
	return s.client.Set(ensureContext(ctx), s.prefixed(key), value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if s == nil {
		return ErrNotInitialised
	}
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, s.prefixed(key))
	}
	return s.client.Del(ensureContext(ctx), prefixed...).Err()
}

func (s *RedisStore) prefixed(key string) string {
	key = strings.TrimSpace(key)
	if strings.HasPrefix(key, s.prefix) {
		return key
	}
	return s.prefix + key
}
