// Package memstore is an in-memory implementation of store.Store for
// tests and embedding.
package memstore

import (
	"context"
	"crypto/rand"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cogstats/coom/pkg/coom"
	"github.com/cogstats/coom/pkg/coom/internalerr"
	"github.com/cogstats/coom/pkg/coom/sparse"
	"github.com/cogstats/coom/pkg/coom/store"
	"github.com/cogstats/coom/pkg/coom/vocab"
)

type record struct {
	info  store.MatrixInfo
	terms []string
	cells []sparse.Cell
}

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu       sync.RWMutex
	entropy  *ulid.MonotonicEntropy
	matrices map[string]record
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		entropy:  ulid.Monotonic(rand.Reader, 0),
		matrices: make(map[string]record),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveMatrix snapshots the matrix under a fresh ULID.
func (s *Store) SaveMatrix(ctx context.Context, name string, m *coom.CooMatrix, opts coom.Options) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := ulid.MustNew(ulid.Now(), s.entropy).String()
	s.matrices[id] = record{
		info: store.MatrixInfo{
			ID:         id,
			Name:       name,
			Dim:        m.Dim(),
			NNZ:        m.Matrix().NNZ(),
			WindowSize: opts.WindowSize,
			Normalize:  opts.Normalize,
			CreatedAt:  time.Now().UTC(),
		},
		terms: m.Terms(),
		cells: m.Matrix().Cells(),
	}
	return id, nil
}

// LoadMatrix reconstructs a matrix by ID.
func (s *Store) LoadMatrix(ctx context.Context, id string) (*coom.CooMatrix, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.matrices[id]
	if !ok {
		return nil, fmt.Errorf("matrix %s: %w", id, internalerr.ErrNotFound)
	}

	m := sparse.NewMatrix(rec.info.Dim)
	for _, c := range rec.cells {
		m.Add(c.I, c.J, c.Weight)
	}
	return coom.NewCooMatrix(m, vocab.New(rec.terms))
}

// ListMatrices returns stored-matrix metadata, newest first.
func (s *Store) ListMatrices(ctx context.Context) ([]store.MatrixInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]store.MatrixInfo, 0, len(s.matrices))
	for _, rec := range s.matrices {
		infos = append(infos, rec.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		if !infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].CreatedAt.After(infos[j].CreatedAt)
		}
		return infos[i].ID > infos[j].ID
	})
	return infos, nil
}

// DeleteMatrix removes a matrix.
func (s *Store) DeleteMatrix(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matrices[id]; !ok {
		return fmt.Errorf("matrix %s: %w", id, internalerr.ErrNotFound)
	}
	delete(s.matrices, id)
	return nil
}
