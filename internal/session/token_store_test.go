package session

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/storage"
)

func newTestStore(t *testing.T) (*TokenStore, *storage.CookieJar, *storage.MemoryStore) {
	t.Helper()
	jar, err := storage.NewCookieJar("http://localhost:3000")
	require.NoError(t, err)
	local := storage.NewMemoryStore()
	return NewTokenStore(jar, local, DefaultCookieOptions()), jar, local
}

func TestTokensAreDualPersisted(t *testing.T) {
	ctx := context.Background()
	store, jar, local := newTestStore(t)

	require.NoError(t, store.SetSession(ctx, models.Session{AccessToken: "a1", RefreshToken: "r1"}))

	v, ok := jar.Cookie(AccessTokenCookie)
	require.True(t, ok)
	require.Equal(t, "a1", v)
	v, ok, err := local.Get(ctx, RefreshTokenKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "r1", v)

	require.Equal(t, "a1", store.AccessToken(ctx))
	require.Equal(t, "r1", store.RefreshToken(ctx))
	require.True(t, store.IsAuthenticated(ctx))
}

func TestReadFallsBackToLocalStorage(t *testing.T) {
	ctx := context.Background()
	store, jar, local := newTestStore(t)

	require.NoError(t, local.Set(ctx, AccessTokenKey, "from-local"))
	require.Equal(t, "from-local", store.AccessToken(ctx))

	jar.SetCookie(&http.Cookie{Name: AccessTokenCookie, Value: "from-cookie", Path: "/"})
	require.Equal(t, "from-cookie", store.AccessToken(ctx))
}

func TestClearTokensRemovesEverything(t *testing.T) {
	ctx := context.Background()
	store, jar, local := newTestStore(t)

	require.NoError(t, store.SetSession(ctx, models.Session{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, local.Set(ctx, UserKey, `{"id":"u1"}`))

	require.NoError(t, store.ClearTokens(ctx))

	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		_, ok := jar.Cookie(name)
		require.False(t, ok, name)
	}
	for _, key := range []string{AccessTokenKey, RefreshTokenKey, UserKey} {
		_, ok, err := local.Get(ctx, key)
		require.NoError(t, err)
		require.False(t, ok, key)
	}
	require.False(t, store.IsAuthenticated(ctx))
	require.Empty(t, store.RefreshToken(ctx))
}

func TestSetSessionKeepsRefreshTokenWhenNotRotated(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	require.NoError(t, store.SetSession(ctx, models.Session{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, store.SetSession(ctx, models.Session{AccessToken: "a2"}))

	require.Equal(t, "a2", store.AccessToken(ctx))
	require.Equal(t, "r1", store.RefreshToken(ctx))
}

func TestStoreWithoutBackends(t *testing.T) {
	ctx := context.Background()
	store := NewTokenStore(nil, nil, CookieOptions{})

	require.NoError(t, store.SetAccessToken(ctx, "a1"))
	require.Empty(t, store.AccessToken(ctx))
	require.False(t, store.IsAuthenticated(ctx))
	require.NoError(t, store.ClearTokens(ctx))
}

func TestSetRejectsEmptyToken(t *testing.T) {
	store, _, _ := newTestStore(t)
	require.Error(t, store.SetAccessToken(context.Background(), ""))
}

func TestCookieAttributes(t *testing.T) {
	opts := CookieOptions{Domain: "example.com", SameSite: "strict", Secure: true, MaxAge: time.Hour}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	ck := opts.build(AccessTokenCookie, "v", now)
	require.Equal(t, "/", ck.Path)
	require.Equal(t, "example.com", ck.Domain)
	require.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	require.True(t, ck.Secure)
	require.Equal(t, 3600, ck.MaxAge)
	require.Equal(t, now.Add(time.Hour), ck.Expires)

	del := opts.deletion(AccessTokenCookie)
	require.Equal(t, -1, del.MaxAge)
	require.Empty(t, del.Value)

	require.Equal(t, http.SameSiteLaxMode, ParseSameSite("bogus"))
	require.Equal(t, http.SameSiteNoneMode, ParseSameSite(" None "))
}
