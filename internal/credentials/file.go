package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore persists entries to a JSON file, one CLI profile per file.
// The file is re-read on every call so separate invocations share state.
type FileStore struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

type fileEntry struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewFileStore creates a store backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Path returns the backing file
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) load() (map[string]fileEntry, error) {
	entries := make(map[string]fileEntry)
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode credentials %s: %w", f.path, err)
	}
	return entries, nil
}

func (f *FileStore) save(entries map[string]fileEntry) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return os.Rename(tmp, f.path)
}

// Get implements Store
func (f *FileStore) Get(_ context.Context, name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return "", false
	}
	e, ok := entries[name]
	if !ok || !f.now().Before(e.ExpiresAt) {
		return "", false
	}
	return e.Value, true
}

// Set implements Store
func (f *FileStore) Set(_ context.Context, name, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return err
	}
	now := f.now()
	for k, e := range entries {
		if !now.Before(e.ExpiresAt) {
			delete(entries, k)
		}
	}
	entries[name] = fileEntry{Value: value, ExpiresAt: now.Add(ttl).UTC()}
	return f.save(entries)
}

// Remove implements Store
func (f *FileStore) Remove(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := entries[name]; !ok {
		return nil
	}
	delete(entries, name)
	return f.save(entries)
}
