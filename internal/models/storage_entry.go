package models

import (
	"time"
)

// StorageEntry is one persisted client-state key when local storage is backed by SQL.
type StorageEntry struct {
	Namespace string `gorm:"primaryKey;size:64"`
	Key       string `gorm:"column:storage_key;primaryKey;size:256"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName pins the table name so namespaces from different binaries share it.
func (StorageEntry) TableName() string {
	return "client_storage"
}
