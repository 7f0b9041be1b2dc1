package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/hyprtile/pkg/errors"
)

// FileStore keeps snapshots as JSON files, one directory per workspace.
// File names start with the zero-padded creation time so a directory
// listing is already in chronological order.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file store. An empty baseDir means
// $XDG_STATE_HOME/hyprtile/snapshots (default ~/.local/state).
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// DefaultDir returns the default snapshot directory.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "hyprtile", "snapshots"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", "hyprtile", "snapshots"), nil
}

func (s *FileStore) workspaceDir(workspace string) (string, error) {
	if err := errors.ValidateName(workspace); err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, workspace), nil
}

func (s *FileStore) Save(ctx context.Context, snap *Snapshot) error {
	dir, err := s.workspaceDir(snap.Workspace)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create workspace dir: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	name := fmt.Sprintf("%020d-%s.json", snap.CreatedAt.UnixNano(), snap.ID)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Latest(ctx context.Context, workspace string) (*Snapshot, error) {
	snaps, err := s.List(ctx, workspace, 1)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, ErrNotFound
	}
	return snaps[0], nil
}

func (s *FileStore) List(ctx context.Context, workspace string, limit int) ([]*Snapshot, error) {
	dir, err := s.workspaceDir(workspace)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	slices.Reverse(names)
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	out := make([]*Snapshot, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read snapshot: %w", err)
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parse snapshot %s: %w", name, err)
		}
		out = append(out, &snap)
	}
	return out, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory.
func (s *FileStore) Path() string { return s.baseDir }
