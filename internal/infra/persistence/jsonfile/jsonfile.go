// Package jsonfile implements the persistence gateway over a single flat
// JSON file. The whole database is rewritten on every save; there is no
// incremental persistence.
package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"

	"nuovo/config"
	"nuovo/internal/domain/entity"
	"nuovo/internal/domain/repository"

	"github.com/pkg/errors"
)

type gateway struct {
	path string
}

// New creates a file-backed gateway for the configured database path.
func New(cfg *config.Config) repository.Gateway {
	return &gateway{path: cfg.Store.Path}
}

// NewWithPath creates a file-backed gateway for an explicit path.
func NewWithPath(path string) repository.Gateway {
	return &gateway{path: path}
}

// Load reads the snapshot from disk. A missing file initializes an empty
// database and persists it, so a fresh deployment starts clean.
func (g *gateway) Load() (*repository.Snapshot, error) {
	raw, err := os.ReadFile(g.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "read database file %s", g.path)
		}

		snapshot := repository.NewSnapshot()
		if err := g.Save(snapshot); err != nil {
			return nil, err
		}

		return snapshot, nil
	}

	snapshot := repository.NewSnapshot()
	if err := json.Unmarshal(raw, snapshot); err != nil {
		return nil, errors.Wrapf(err, "decode database file %s", g.path)
	}

	// Maps omitted from the file stay usable.
	if snapshot.Users == nil {
		snapshot.Users = make(map[string]*entity.User)
	}
	if snapshot.Brands == nil {
		snapshot.Brands = make(map[string]*entity.Brand)
	}
	if snapshot.Products == nil {
		snapshot.Products = make(map[string]*entity.Product)
	}

	return snapshot, nil
}

// Save writes the full snapshot through a temp file and rename so a crash
// mid-write never truncates the database.
func (g *gateway) Save(snapshot *repository.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode database snapshot")
	}

	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create database directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".database-*.json")
	if err != nil {
		return errors.Wrap(err, "create temp database file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return errors.Wrap(err, "write temp database file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return errors.Wrap(err, "close temp database file")
	}

	if err := os.Rename(tmpName, g.path); err != nil {
		os.Remove(tmpName)

		return errors.Wrapf(err, "replace database file %s", g.path)
	}

	return nil
}
