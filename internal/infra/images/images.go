// Package images implements the product image store over the local
// filesystem, one directory per product under a configured root.
package images

import (
	"os"
	"path/filepath"

	"nuovo/config"
	"nuovo/internal/domain/service"

	"github.com/pkg/errors"
)

type fsImageStore struct {
	root string
}

// New creates a filesystem-backed image store rooted at the configured path.
func New(cfg *config.Config) service.ImageStore {
	return &fsImageStore{root: cfg.Store.ImageRoot}
}

// NewWithRoot creates a filesystem-backed image store at an explicit root.
func NewWithRoot(root string) service.ImageStore {
	return &fsImageStore{root: root}
}

// RemoveAll deletes the product's image directory. A missing directory is
// treated as already clean.
func (s *fsImageStore) RemoveAll(productID string) error {
	dir := filepath.Join(s.root, productID)
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, "remove image directory %s", dir)
	}

	return nil
}
