package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/birreros/porra/internal/domain/model"
	"github.com/birreros/porra/pkg/metrics"
)

// FileStore keeps the pool snapshot as one JSON document on disk.
// Writes go through a temp file and rename so readers never observe a
// torn snapshot.
type FileStore struct {
	mu     sync.Mutex
	path   string
	indent bool
}

// NewFileStore creates a store writing to path.
func NewFileStore(path string, opts ...Option) (*FileStore, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	s := &FileStore{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Load reads and decodes the snapshot.
func (s *FileStore) Load(ctx context.Context) (model.State, error) {
	if err := ctx.Err(); err != nil {
		return model.State{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.State{}, ErrNotFound
		}
		return model.State{}, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}
	var st model.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return model.State{}, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	metrics.RecordStateLoad()
	return st, nil
}

// Save encodes and atomically replaces the snapshot.
func (s *FileStore) Save(ctx context.Context, st model.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var raw []byte
	var err error
	if s.indent {
		raw, err = json.MarshalIndent(st, "", "  ")
	} else {
		raw, err = json.Marshal(st)
	}
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot %s: %w", s.path, err)
	}
	metrics.RecordStateSave()
	metrics.UpdateSnapshotBytes(len(raw))
	return nil
}
