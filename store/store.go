// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/growtogether/leetcode-daily/models"
)

// Store persists the whole guild map as one JSON document. Every mutating
// core operation overwrites the full snapshot; the file always reflects the
// latest in-memory state.
type Store struct {
	path string
}

// New returns a store writing to path. The file is created on first Save.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the snapshot. A missing file is treated as an empty database; a
// present but unparsable file is an error, fatal at startup.
func (s *Store) Load() (models.Database, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(models.Database), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read database: %w", err)
	}

	db := make(models.Database)
	if err := json.Unmarshal(raw, &db); err != nil {
		return nil, fmt.Errorf("failed to parse database %s: %w", s.path, err)
	}
	return db, nil
}

// Save overwrites the snapshot. The document is written to a temporary file
// in the same directory and renamed over the target so a crash mid-write
// never leaves a truncated database behind.
func (s *Store) Save(db models.Database) error {
	raw, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize database: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write database: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace database: %w", err)
	}
	return nil
}
