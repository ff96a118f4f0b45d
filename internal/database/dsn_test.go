package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	dsn, err := postgresDSN(Config{User: "assetdesk", Name: "assetdesk"})
	require.NoError(t, err)
	require.Equal(t, "application_name=assetdesk dbname=assetdesk host=localhost port=5432 sslmode=disable user=assetdesk", dsn)

	dsn, err = postgresDSN(Config{
		User:     "ops",
		Name:     "desk",
		Host:     "db.example.com",
		Port:     6543,
		Password: "it's secret",
		Options:  map[string]string{"sslmode": "require", "host": "ignored"},
	})
	require.NoError(t, err)
	require.Contains(t, dsn, "host=db.example.com ")
	require.Contains(t, dsn, "port=6543")
	require.Contains(t, dsn, "sslmode=require")
	require.Contains(t, dsn, `password='it\'s secret'`)

	_, err = postgresDSN(Config{})
	require.Error(t, err)
}

func TestMySQLDSN(t *testing.T) {
	dsn, err := mysqlDSN(Config{
		User:     "ops",
		Password: "secret",
		Name:     "desk",
		Host:     "db.example.com",
		Port:     3307,
		Options:  map[string]string{"sql_mode": "ANSI"},
	})
	require.NoError(t, err)
	require.Contains(t, dsn, "ops:secret@tcp(db.example.com:3307)/desk?")
	require.Contains(t, dsn, "parseTime=true")
	require.Contains(t, dsn, "charset=utf8mb4")
	require.Contains(t, dsn, "sql_mode=ANSI")

	dsn, err = mysqlDSN(Config{User: "ops", Name: "desk"})
	require.NoError(t, err)
	require.Contains(t, dsn, "@tcp(127.0.0.1:3306)/desk?")

	_, err = mysqlDSN(Config{Host: "localhost"})
	require.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	dsn, err := sqliteDSN(Config{})
	require.NoError(t, err)
	require.Equal(t, "file::memory:?cache=shared", dsn)

	path := filepath.Join(t.TempDir(), "nested", "storage.sqlite")
	dsn, err = sqliteDSN(Config{Path: path})
	require.NoError(t, err)
	require.Equal(t, "file:"+filepath.ToSlash(path)+"?_journal_mode=WAL", dsn)
	require.DirExists(t, filepath.Dir(path))

	dsn, err = sqliteDSN(Config{DSN: "file:custom.db", Path: path})
	require.NoError(t, err)
	require.Equal(t, "file:custom.db", dsn)
}
