// Package limiter enforces the per-user conversation turn budget. The
// counter survives process restarts through a small injected key-value
// store and is reset only by the explicit delete-records action.
package limiter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// CounterStore abstracts the durable storage for named integer counters.
// Get returns 0 for a key that has never been set.
type CounterStore interface {
	Get(key string) (int, error)
	Set(key string, value int) error
}

// FileCounterStore persists counters as a JSON document in the state
// directory. Single-process atomicity is all that is required; the file is
// rewritten in full on every Set.
type FileCounterStore struct {
	path string
	mu   sync.Mutex
}

// NewFileCounterStore creates a store backed by counters.json inside dir.
// The directory is created on first write, not here.
func NewFileCounterStore(dir string) *FileCounterStore {
	return &FileCounterStore{path: filepath.Join(dir, "counters.json")}
}

// Get reads the named counter. A missing file or key yields 0.
func (s *FileCounterStore) Get(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counters, err := s.read()
	if err != nil {
		return 0, err
	}
	return counters[key], nil
}

// Set writes the named counter, creating the state directory if needed.
func (s *FileCounterStore) Set(key string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	counters, err := s.read()
	if err != nil {
		return err
	}
	counters[key] = value

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(counters, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal counters: %w", err)
	}

	if err := os.WriteFile(s.path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write counters file: %w", err)
	}
	return nil
}

func (s *FileCounterStore) read() (map[string]int, error) {
	counters := make(map[string]int)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return counters, nil
		}
		return nil, fmt.Errorf("failed to read counters file: %w", err)
	}

	if err := json.Unmarshal(data, &counters); err != nil {
		return nil, fmt.Errorf("failed to parse counters file: %w", err)
	}
	return counters, nil
}

// MemoryCounterStore is an in-memory CounterStore for tests.
type MemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]int
}

// NewMemoryCounterStore creates an empty in-memory store.
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{counters: make(map[string]int)}
}

// Get reads the named counter; unset keys yield 0.
func (s *MemoryCounterStore) Get(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[key], nil
}

// Set writes the named counter.
func (s *MemoryCounterStore) Set(key string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key] = value
	return nil
}
