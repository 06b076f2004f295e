package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// SettingsFileName is the file created inside the config directory.
const SettingsFileName = "settings.yaml"

// YAMLStore keeps every key in memory and rewrites the whole YAML file on
// each Set.
type YAMLStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// OpenYAML reads the store at path. A missing file yields an empty store.
// A file that cannot be read or parsed also yields an empty, usable store
// together with the error, so callers may log and continue.
func OpenYAML(path string) (*YAMLStore, error) {
	store := &YAMLStore{path: path, values: make(map[string]string)}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store, nil
		}
		return store, fmt.Errorf("read settings file: %w", err)
	}

	var fileData map[string]string
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return store, fmt.Errorf("parse settings yaml: %w", err)
	}
	for key, value := range fileData {
		store.values[key] = value
	}
	return store, nil
}

// Path returns the backing file path.
func (store *YAMLStore) Path() string {
	return store.path
}

func (store *YAMLStore) Get(key string) (string, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	value, ok := store.values[key]
	return value, ok
}

// Set updates key and writes the file. On a write error the in-memory value
// is kept.
func (store *YAMLStore) Set(key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.values[key] = value
	return store.flushLocked()
}

func (store *YAMLStore) flushLocked() error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(store.values)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	temporary := store.path + ".tmp"
	if err := os.WriteFile(temporary, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(temporary, store.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}
