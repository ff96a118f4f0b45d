package storage

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/assetdesk/internal/database/testutil"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "accessToken")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "accessToken", "a1"))
	require.NoError(t, store.Set(ctx, "refreshToken", "r1"))
	require.NoError(t, store.Set(ctx, "accessToken", "a2"))

	v, ok, err := store.Get(ctx, "accessToken")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a2", v)

	require.NoError(t, store.Delete(ctx, "accessToken", "refreshToken", "missing"))
	_, ok, err = store.Get(ctx, "refreshToken")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Delete(ctx))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	exerciseStore(t, store)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	ctx := context.Background()

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "themeMode", "dark"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := second.Get(ctx, "themeMode")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "dark", v)

	keys, err := second.Keys()
	require.NoError(t, err)
	require.Equal(t, []string{"themeMode"}, keys)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)
	_, _, err = store.Get(context.Background(), "any")
	require.ErrorContains(t, err, "decode")
}

func TestDatabaseStore(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	exerciseStore(t, NewDatabaseStore(db, "ops"))
}

func TestDatabaseStoreNamespacesAreIsolated(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	ctx := context.Background()

	alice := NewDatabaseStore(db, "alice")
	bob := NewDatabaseStore(db, "bob")

	require.NoError(t, alice.Set(ctx, "accessToken", "alice-token"))
	_, ok, err := bob.Get(ctx, "accessToken")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNilStoresReportNotInitialised(t *testing.T) {
	var mem *MemoryStore
	_, _, err := mem.Get(context.Background(), "k")
	require.ErrorIs(t, err, ErrNotInitialised)

	var db *DatabaseStore
	require.ErrorIs(t, db.Set(context.Background(), "k", "v"), ErrNotInitialised)
}

func TestRedisStorePrefixesKeys(t *testing.T) {
	store := newRedisStore(nil, "ops")
	require.Equal(t, "assetdesk:ops:accessToken", store.prefixed("accessToken"))
	require.Equal(t, "assetdesk:ops:accessToken", store.prefixed("assetdesk:ops:accessToken"))

	bare := newRedisStore(nil, "")
	require.Equal(t, "assetdesk:user", bare.prefixed(" user "))
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()

	store, closer, err := Open(ctx, Config{Driver: "memory"})
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, store)
	require.NoError(t, closer.Close())

	store, closer, err = Open(ctx, Config{Driver: "file", Path: filepath.Join(t.TempDir(), "s.json")})
	require.NoError(t, err)
	require.IsType(t, &FileStore{}, store)
	require.NoError(t, closer.Close())

	store, closer, err = Open(ctx, Config{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "s.db")})
	require.NoError(t, err)
	require.IsType(t, &DatabaseStore{}, store)
	exerciseStore(t, store)
	require.NoError(t, closer.Close())

	_, _, err = Open(ctx, Config{Driver: "etcd"})
	require.ErrorContains(t, err, "unsupported driver")
}

func TestCookieJarRoundTrip(t *testing.T) {
	jar, err := NewCookieJar("http://localhost:3000")
	require.NoError(t, err)

	jar.SetCookie(&http.Cookie{Name: "access_token", Value: "abc", Path: "/", MaxAge: 3600})
	v, ok := jar.Cookie("access_token")
	require.True(t, ok)
	require.Equal(t, "abc", v)

	jar.SetCookie(&http.Cookie{Name: "access_token", Value: "", Path: "/", MaxAge: -1})
	_, ok = jar.Cookie("access_token")
	require.False(t, ok)
}

func TestCookieJarDropsSecureCookiesOnPlainHTTP(t *testing.T) {
	jar, err := NewCookieJar("http://localhost:3000")
	require.NoError(t, err)

	jar.SetCookie(&http.Cookie{Name: "refresh_token", Value: "r", Path: "/", Secure: true})
	_, ok := jar.Cookie("refresh_token")
	require.False(t, ok)
}

func TestNewCookieJarValidatesOrigin(t *testing.T) {
	_, err := NewCookieJar("")
	require.Error(t, err)
	_, err = NewCookieJar("localhost")
	require.Error(t, err)
}
