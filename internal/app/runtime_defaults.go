package app

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

const storageFileName = "storage.json"

// ApplyRuntimeDefaults fills settings that depend on the machine the process runs on.
// It returns the keys it derived so callers can log them.
func ApplyRuntimeDefaults(cfg *Config) (map[string]bool, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	derived := make(map[string]bool)

	if strings.TrimSpace(cfg.Storage.Namespace) == "" {
		cfg.Storage.Namespace = defaultNamespace()
		derived["storage.namespace"] = true
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	if (driver == "file" || driver == "sqlite") && strings.TrimSpace(cfg.Storage.Path) == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve storage directory: %w", err)
		}
		name := storageFileName
		if driver == "sqlite" {
			name = "storage.sqlite"
		}
		cfg.Storage.Path = filepath.Join(dir, "assetdesk", name)
		derived["storage.path"] = true
	}

	if strings.TrimSpace(cfg.Server.DashboardOrigin) == "" && cfg.Server.Port > 0 {
		cfg.Server.DashboardOrigin = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
		derived["server.dashboard_origin"] = true
	}

	if strings.TrimSpace(cfg.HTTP.UserAgent) == "" {
		cfg.HTTP.UserAgent = "assetdesk/" + hostname()
		derived["http.user_agent"] = true
	}

	return derived, nil
}

func defaultNamespace() string {
	if u, err := user.Current(); err == nil && strings.TrimSpace(u.Username) != "" {
		return u.Username
	}
	return "default"
}

func hostname() string {
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	return "unknown"
}
