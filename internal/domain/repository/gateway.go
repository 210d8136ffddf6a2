// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import "nuovo/internal/domain/entity"

// Snapshot is the full database state: three mappings keyed by each entity's
// own ID field (users by email). The store owns the live copy; the gateway
// serializes it wholesale.
type Snapshot struct {
	Users    map[string]*entity.User    `json:"users"`
	Brands   map[string]*entity.Brand   `json:"brands"`
	Products map[string]*entity.Product `json:"products"`
}

// NewSnapshot returns an empty snapshot with all maps allocated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Users:    make(map[string]*entity.User),
		Brands:   make(map[string]*entity.Brand),
		Products: make(map[string]*entity.Product),
	}
}

// Gateway loads the entity store at startup and durably flushes the full
// snapshot after each mutation. There is no partial write: Save always
// rewrites everything.
type Gateway interface {
	// Load reads the persisted snapshot, initializing empty storage if none exists.
	Load() (*Snapshot, error)

	// Save durably writes the full snapshot.
	Save(snapshot *Snapshot) error
}
