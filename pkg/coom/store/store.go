// Package store persists built co-occurrence matrices so downstream
// consumers can reload them without repeating the corpus scan.
package store

import (
	"context"
	"time"

	"github.com/cogstats/coom/pkg/coom"
)

// Store is the interface for persisting and loading co-occurrence
// matrices.
type Store interface {
	Close() error

	// SaveMatrix persists a matrix under a human-readable name and
	// returns its assigned ULID.
	SaveMatrix(ctx context.Context, name string, m *coom.CooMatrix, opts coom.Options) (string, error)

	// LoadMatrix reconstructs a matrix by ID. Missing IDs yield
	// internalerr.ErrNotFound.
	LoadMatrix(ctx context.Context, id string) (*coom.CooMatrix, error)

	// ListMatrices returns metadata for all stored matrices, newest
	// first.
	ListMatrices(ctx context.Context) ([]MatrixInfo, error)

	// DeleteMatrix removes a matrix and its cells. Missing IDs yield
	// internalerr.ErrNotFound.
	DeleteMatrix(ctx context.Context, id string) error
}

// MatrixInfo is stored-matrix metadata.
type MatrixInfo struct {
	ID         string
	Name       string
	Dim        int
	NNZ        int
	WindowSize int
	Normalize  bool
	CreatedAt  time.Time
}
