// Package storage persists user preferences as string key-value pairs.
package storage

import "sync"

// Store is a string key-value store. A missing key reports ok == false.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Memory is an in-process Store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (memory *Memory) Get(key string) (string, bool) {
	memory.mu.RLock()
	defer memory.mu.RUnlock()
	value, ok := memory.values[key]
	return value, ok
}

func (memory *Memory) Set(key, value string) error {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	memory.values[key] = value
	return nil
}
