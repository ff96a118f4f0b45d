package state

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// ThemeMode is the colour scheme preference.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

const (
	ThemeModeKey   = "themeMode"
	SidebarOpenKey = "sidebarOpen"
)

// UISnapshot is a point-in-time copy of the UI slice.
type UISnapshot struct {
	ThemeMode        ThemeMode
	SidebarOpen      bool
	SidebarCollapsed bool
	PageTitle        string
}

// UISlice holds display preferences. Theme and sidebar-open are persisted on every
// change; collapsed state and page title live only in memory.
type UISlice struct {
	mu        sync.RWMutex
	local     LocalStore
	theme     ThemeMode
	open      bool
	collapsed bool
	title     string
}

// LocalStore is the storage the UI slice persists to.
type LocalStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// NewUISlice constructs the slice with defaults: light theme, sidebar open.
func NewUISlice(local LocalStore) *UISlice {
	return &UISlice{local: local, theme: ThemeLight, open: true}
}

// Hydrate restores persisted preferences. Unreadable values keep their defaults.
func (u *UISlice) Hydrate(ctx context.Context) error {
	if u.local == nil {
		return nil
	}

	theme, themeOK, err := u.local.Get(ctx, ThemeModeKey)
	if err != nil {
		return fmt.Errorf("state: read theme: %w", err)
	}
	open, openOK, err := u.local.Get(ctx, SidebarOpenKey)
	if err != nil {
		return fmt.Errorf("state: read sidebar: %w", err)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if themeOK {
		if mode := ThemeMode(theme); mode == ThemeLight || mode == ThemeDark {
			u.theme = mode
		}
	}
	if openOK {
		if b, err := strconv.ParseBool(open); err == nil {
			u.open = b
		}
	}
	return nil
}

// ThemeMode returns the current theme.
func (u *UISlice) ThemeMode() ThemeMode {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.theme
}

// SetThemeMode changes and persists the theme.
func (u *UISlice) SetThemeMode(ctx context.Context, mode ThemeMode) error {
	if mode != ThemeLight && mode != ThemeDark {
		return fmt.Errorf("state: unknown theme mode %q", mode)
	}
	u.mu.Lock()
	u.theme = mode
	u.mu.Unlock()
	return u.persist(ctx, ThemeModeKey, string(mode))
}

// ToggleTheme flips between light and dark.
func (u *UISlice) ToggleTheme(ctx context.Context) error {
	next := ThemeDark
	if u.ThemeMode() == ThemeDark {
		next = ThemeLight
	}
	return u.SetThemeMode(ctx, next)
}

// SidebarOpen reports whether the sidebar is open.
func (u *UISlice) SidebarOpen() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.open
}

// SetSidebarOpen changes and persists the sidebar state.
func (u *UISlice) SetSidebarOpen(ctx context.Context, open bool) error {
	u.mu.Lock()
	u.open = open
	u.mu.Unlock()
	return u.persist(ctx, SidebarOpenKey, strconv.FormatBool(open))
}

// ToggleSidebar flips the sidebar open state.
func (u *UISlice) ToggleSidebar(ctx context.Context) error {
	return u.SetSidebarOpen(ctx, !u.SidebarOpen())
}

// SidebarCollapsed reports whether the sidebar is collapsed to icons.
func (u *UISlice) SidebarCollapsed() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.collapsed
}

// SetSidebarCollapsed changes the collapsed state.
func (u *UISlice) SetSidebarCollapsed(collapsed bool) {
	u.mu.Lock()
	u.collapsed = collapsed
	u.mu.Unlock()
}

// PageTitle returns the title of the current page.
func (u *UISlice) PageTitle() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.title
}

// SetPageTitle sets the title of the current page.
func (u *UISlice) SetPageTitle(title string) {
	u.mu.Lock()
	u.title = title
	u.mu.Unlock()
}

// Snapshot copies the slice.
func (u *UISlice) Snapshot() UISnapshot {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return UISnapshot{ThemeMode: u.theme, SidebarOpen: u.open, SidebarCollapsed: u.collapsed, PageTitle: u.title}
}

func (u *UISlice) persist(ctx context.Context, key, value string) error {
	if u.local == nil {
		return nil
	}
	if err := u.local.Set(ctx, key, value); err != nil {
		return fmt.Errorf("state: persist %s: %w", key, err)
	}
	return nil
}
