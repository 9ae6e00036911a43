// Package store saves and loads checklist files.
// Writes go to a temporary file that replaces the target by rename, under an
// exclusive advisory lock; loads take the same lock shared.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-todo/codec"
	"github.com/lixenwraith/vi-todo/todo"
)

// Store handles save/load for checklist files
type Store struct {
	log zerolog.Logger
}

// New creates a store logging through log
func New(log zerolog.Logger) *Store {
	return &Store{log: log}
}

// LockPath returns the advisory lock file guarding path
func LockPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, "."+base+".lock")
}

// Exists checks if a checklist file exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Save encodes root and atomically replaces path
func (s *Store) Save(path string, root *todo.Item) error {
	data, err := codec.Marshal(root)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	lock := flock.New(LockPath(path))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("save %s: lock: %w", path, err)
	}
	defer lock.Unlock()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", path, err)
	}

	done, total := root.Progress()
	s.log.Debug().
		Str("path", path).
		Int("bytes", len(data)).
		Int("done", done).
		Int("total", total).
		Msg("checklist saved")
	return nil
}

// Load reads and decodes path.
// Decode errors keep their codec classification (codec.ErrEncoding, codec.ErrCorrupt).
func (s *Store) Load(path string) (*todo.Item, error) {
	lock := flock.New(LockPath(path))
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("load %s: lock: %w", path, err)
	}
	defer lock.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	root, err := codec.Unmarshal(data)
	if err != nil {
		ev := s.log.Warn()
		if codec.IsFatal(err) {
			ev = s.log.Error()
		}
		ev.Err(err).Str("path", path).Msg("checklist decode failed")
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	s.log.Debug().Str("path", path).Int("bytes", len(data)).Msg("checklist loaded")
	return root, nil
}

// IsNotExist reports whether a Load error means the file is missing
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
