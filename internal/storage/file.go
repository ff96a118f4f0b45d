package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileStore persists values as a single JSON object on disk. Every write replaces the
// file atomically so a crash never leaves a half-written session behind.
type FileStore struct {
	path string

	mu     sync.Mutex
	values map[string]string
	loaded bool
}

// NewFileStore returns a Store rooted at path. The file is created on first write.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("storage: file path is required")
	}
	return &FileStore{path: filepath.Clean(path)}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	if s == nil {
		return "", false, ErrNotInitialised
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return "", false, err
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	if s == nil {
		return ErrNotInitialised
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return err
	}
	s.values[key] = value
	return s.flushLocked()
}

func (s *FileStore) Delete(_ context.Context, keys ...string) error {
	if s == nil {
		return ErrNotInitialised
	}
	if len(keys) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return err
	}
	changed := false
	for _, key := range keys {
		if _, ok := s.values[key]; ok {
			delete(s.values, key)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.flushLocked()
}

// Keys lists stored keys in sorted order.
func (s *FileStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FileStore) loadLocked() error {
	if s.loaded {
		return nil
	}
	s.values = make(map[string]string)

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.loaded = true
		return nil
	case err != nil:
		return fmt.Errorf("storage: read %s: %w", s.path, err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.values); err != nil {
			return fmt.Errorf("storage: decode %s: %w", s.path, err)
		}
	}
	s.loaded = true
	return nil
}

func (s *FileStore) flushLocked() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode: %w", err)
	}
	return atomicWriteFile(s.path, data, 0o600)
}

func atomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("storage: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".assetdesk-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	_ = os.Chmod(tmpPath, perm)

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("storage: rename: %v (after remove: %v)", err, err2)
		}
	}
	return nil
}
