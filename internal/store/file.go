package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore persists options as one JSON file per key under a state
// directory. Writes go through a temp file and rename so readers never see a
// half-written option; beyond that the semantics are last-writer-wins, same
// as MemoryStore.
type FileStore struct {
	dir   string
	mutex sync.RWMutex
}

type fileEnvelope struct {
	Autoload bool            `json:"autoload"`
	Value    json.RawMessage `json:"value"`
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating option store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get returns the stored value for key.
func (s *FileStore) Get(key string) ([]byte, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}

	var env fileEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		// A corrupt option file is treated as a miss; the caller
		// recomputes and overwrites it.
		return nil, false
	}
	return []byte(env.Value), true
}

// Set stores value under key.
func (s *FileStore) Set(key string, value []byte, autoload bool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := json.Marshal(fileEnvelope{Autoload: autoload, Value: json.RawMessage(value)})
	if err != nil {
		return fmt.Errorf("encoding option %s: %w", key, err)
	}

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing option %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("writing option %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *FileStore) Delete(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting option %s: %w", key, err)
	}
	return nil
}

// path maps an option key to a file name. Path separators in keys are
// flattened so a key can never escape the state directory.
func (s *FileStore) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.dir, safe+".json")
}
