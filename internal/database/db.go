// Package database opens the SQL database behind the SQL local-storage backend.
package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/charlesng35/assetdesk/internal/models"
)

// Config holds connection options. DSN, when set, wins over the discrete fields.
type Config struct {
	Driver   string
	Path     string // sqlite file; empty means in-memory
	DSN      string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	Options  map[string]string
}

// Open connects to the configured database. An empty driver means sqlite.
func Open(cfg Config) (*gorm.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case "":
		driver = "sqlite"
	case "postgresql":
		driver = "postgres"
	}

	dial, err := dialector(driver, cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// One writer; the CLI and the edge server may share the file.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("configure sqlite: %w", err)
		}
	}
	return db, nil
}

// AutoMigrate creates or updates the storage table.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("nil database handle")
	}
	if err := db.AutoMigrate(&models.StorageEntry{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
