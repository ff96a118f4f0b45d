package database

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	defaultPostgresPort = 5432
	defaultMySQLPort    = 3306
	dialTimeout         = 5 * time.Second
	applicationName     = "assetdesk"
)

func dialector(driver string, cfg Config) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		dsn, err := sqliteDSN(cfg)
		if err != nil {
			return nil, err
		}
		return sqlite.Open(dsn), nil
	case "postgres":
		dsn, err := postgresDSN(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil
	case "mysql":
		dsn, err := mysqlDSN(cfg)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// sqliteDSN uses a shared in-memory database unless a file path is configured.
func sqliteDSN(cfg Config) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	path := strings.TrimSpace(cfg.Path)
	if path == "" || strings.EqualFold(path, ":memory:") {
		return "file::memory:?cache=shared", nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", fmt.Errorf("create sqlite directory: %w", err)
		}
	}
	return "file:" + filepath.ToSlash(path) + "?_journal_mode=WAL", nil
}

// postgresDSN renders a libpq keyword/value string. Configured options may
// override sslmode and application_name but not the connection target.
func postgresDSN(cfg Config) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	if cfg.User == "" || cfg.Name == "" {
		return "", fmt.Errorf("postgres configuration requires user and database name")
	}

	params := map[string]string{
		"sslmode":          "disable",
		"application_name": applicationName,
	}
	for k, v := range cfg.Options {
		params[k] = v
	}
	params["host"] = firstNonEmpty(cfg.Host, "localhost")
	params["port"] = strconv.Itoa(portOr(cfg.Port, defaultPostgresPort))
	params["user"] = cfg.User
	params["dbname"] = cfg.Name
	if cfg.Password != "" {
		params["password"] = cfg.Password
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+libpqQuote(params[k]))
	}
	return strings.Join(parts, " "), nil
}

func libpqQuote(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v)
	return "'" + v + "'"
}

func mysqlDSN(cfg Config) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	if cfg.User == "" || cfg.Name == "" {
		return "", fmt.Errorf("mysql configuration requires user and database name")
	}

	mc := gomysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(firstNonEmpty(cfg.Host, "127.0.0.1"), strconv.Itoa(portOr(cfg.Port, defaultMySQLPort)))
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Timeout = dialTimeout
	mc.Params = map[string]string{"charset": "utf8mb4"}
	for k, v := range cfg.Options {
		mc.Params[k] = v
	}
	return mc.FormatDSN(), nil
}

func firstNonEmpty(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func portOr(port, fallback int) int {
	if port <= 0 {
		return fallback
	}
	return port
}
