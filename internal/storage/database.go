package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/charlesng35/assetdesk/internal/models"
)

const defaultNamespace = "default"

// DatabaseStore implements Store on top of the SQL database, one row per key.
// Namespace separates profiles that share a database (for example several operators).
type DatabaseStore struct {
	db        *gorm.DB
	namespace string
}

// NewDatabaseStore constructs a database-backed Store.
func NewDatabaseStore(db *gorm.DB, namespace string) *DatabaseStore {
	if db == nil {
		return nil
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &DatabaseStore{db: db, namespace: namespace}
}

// Get retrieves a value by key.
func (s *DatabaseStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil {
		return "", false, ErrNotInitialised
	}
	ctx = ensureContext(ctx)

	var entry models.StorageEntry
	err := s.db.WithContext(ctx).Take(&entry, "namespace = ? AND storage_key = ?", s.namespace, key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set upserts the value for a given key.
func (s *DatabaseStore) Set(ctx context.Context, key, value string) error {
	if s == nil {
		return ErrNotInitialised
	}
	ctx = ensureContext(ctx)

	entry := models.StorageEntry{
		Namespace: s.namespace,
		Key:       key,
		Value:     value,
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}, {Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&entry).Error
}

// Delete removes keys from the store.
func (s *DatabaseStore) Delete(ctx context.Context, keys ...string) error {
	if s == nil {
		return ErrNotInitialised
	}
	if len(keys) == 0 {
		return nil
	}
	ctx = ensureContext(ctx)

	return s.db.WithContext(ctx).
		Where("namespace = ? AND storage_key IN ?", s.namespace, keys).
		Delete(&models.StorageEntry{}).Error
}
