package event

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shamsitray/shamsitray/internal/model"
)

// snapshot is the on-disk form of the event collection: the full ordered
// active set plus the next ID to assign. It is rewritten whole on every
// mutation so a crash can never leave a partially applied edit.
type snapshot struct {
	NextID int64             `json:"next_id"`
	Events []model.UserEvent `json:"events"`
}

// FileStore persists event snapshots to a single JSON file, written
// atomically via a temp file and rename.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot. A missing file yields an empty snapshot and no
// error; a corrupt file yields an error the caller may treat as non-fatal.
func (fs *FileStore) Load() (snapshot, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return snapshot{NextID: 1}, nil
		}
		return snapshot{NextID: 1}, fmt.Errorf("read events file: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return snapshot{NextID: 1}, fmt.Errorf("parse events file: %w", err)
	}
	if snap.NextID < 1 {
		snap.NextID = 1
	}
	// Never hand out an ID already in use, even after manual file edits.
	for _, e := range snap.Events {
		if e.ID >= snap.NextID {
			snap.NextID = e.ID + 1
		}
	}
	return snap, nil
}

// Save writes the snapshot atomically.
func (fs *FileStore) Save(snap snapshot) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode events: %w", err)
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create events dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".events-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp events file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp events file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp events file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp events file: %w", err)
	}
	if err := os.Rename(tmpName, fs.path); err != nil {
		return fmt.Errorf("rename events file: %w", err)
	}
	return nil
}
