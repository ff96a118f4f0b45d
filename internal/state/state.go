// Package state is the application state container: who is signed in and how the
// dashboard is laid out. It is built once at startup, hydrated explicitly with Init,
// and passed to whatever needs it.
package state

import (
	"context"

	"go.uber.org/multierr"

	"github.com/charlesng35/assetdesk/internal/storage"
)

// AppState groups the two independently persisted slices.
type AppState struct {
	Auth *AuthSlice
	UI   *UISlice
}

// New builds the container. Nothing is read from storage until Init.
func New(local storage.Store, tokens Tokens) *AppState {
	return &AppState{
		Auth: NewAuthSlice(local, tokens),
		UI:   NewUISlice(local),
	}
}

// Init hydrates both slices from local storage.
func (s *AppState) Init(ctx context.Context) error {
	return multierr.Combine(
		s.Auth.InitializeAuth(ctx),
		s.UI.Hydrate(ctx),
	)
}
