package store

import "sync"

// MemoryStore is a process-local Store. It backs tests and single-process
// deployments where options do not need to survive a restart.
type MemoryStore struct {
	entries map[string]memoryEntry
	mutex   sync.RWMutex
}

type memoryEntry struct {
	value    []byte
	autoload bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the stored value for key.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entry, exists := s.entries[key]
	if !exists {
		return nil, false
	}
	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, true
}

// Set stores value under key.
func (s *MemoryStore) Set(key string, value []byte, autoload bool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.entries[key] = memoryEntry{value: stored, autoload: autoload}
	return nil
}

// Delete removes key.
func (s *MemoryStore) Delete(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.entries, key)
	return nil
}

// Autoload reports the autoload flag recorded for key. Exposed so tests can
// assert the scanner's autoload policy.
func (s *MemoryStore) Autoload(key string) (bool, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	entry, exists := s.entries[key]
	if !exists {
		return false, false
	}
	return entry.autoload, true
}
