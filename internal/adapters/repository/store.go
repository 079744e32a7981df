// Package repository defines the snapshot store interface and errors.
package repository

import (
	"context"

	"github.com/birreros/porra/internal/domain/model"
)

// Store provides read/write access to the pool snapshot.
type Store interface {
	// Load returns the stored snapshot.
	// Returns ErrNotFound when no snapshot has been saved yet.
	Load(ctx context.Context) (model.State, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, s model.State) error
}
