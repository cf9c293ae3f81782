package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/smartcampus/allocator/internal/store"
)

// FileStateStore saves and loads the engine's entity set as indented JSON in
// a single flat file.
type FileStateStore struct {
	path string
}

func NewFileStateStore(path string) *FileStateStore {
	return &FileStateStore{path: path}
}

func (f *FileStateStore) Save(snap store.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

func (f *FileStateStore) Load() (store.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("read state file: %w", err)
	}
	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return store.Snapshot{}, fmt.Errorf("decode state file: %w", err)
	}
	return snap, nil
}
