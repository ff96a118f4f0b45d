// Package storage provides the persisted key/value surfaces the client keeps between runs:
// a local-storage style Store with several backends, and a cookie jar scoped to the
// dashboard origin.
package storage

import (
	"context"
	"errors"
)

// Store is the local-storage abstraction. Values are plain strings; callers encode JSON themselves.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// ErrNotInitialised is returned by a nil store implementation.
var ErrNotInitialised = errors.New("storage: store not initialised")

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}
