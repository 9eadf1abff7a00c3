package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/cogstats/coom/pkg/coom"
	"github.com/cogstats/coom/pkg/coom/internalerr"
	"github.com/cogstats/coom/pkg/coom/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coom.db")
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func buildMatrix(t *testing.T) (*coom.CooMatrix, coom.Options) {
	t.Helper()
	opts := coom.Options{WindowSize: 3, Normalize: true}
	m, err := coom.BuildDocumentAuto([]string{"term", "co", "occurrence", "term"}, opts)
	if err != nil {
		t.Fatalf("build matrix: %v", err)
	}
	return m, opts
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m, opts := buildMatrix(t)
	id, err := s.SaveMatrix(ctx, "roundtrip", m, opts)
	if err != nil {
		t.Fatalf("SaveMatrix failed: %v", err)
	}

	loaded, err := s.LoadMatrix(ctx, id)
	if err != nil {
		t.Fatalf("LoadMatrix failed: %v", err)
	}

	if loaded.Dim() != m.Dim() {
		t.Fatalf("Loaded dimension %d differs from saved %d", loaded.Dim(), m.Dim())
	}
	for i := 0; i < m.Dim(); i++ {
		for j := 0; j < m.Dim(); j++ {
			if loaded.At(i, j) != m.At(i, j) {
				t.Errorf("Loaded entry (%d,%d)=%v differs from saved %v", i, j, loaded.At(i, j), m.At(i, j))
			}
		}
	}
	for i, term := range m.Terms() {
		if loaded.Terms()[i] != term {
			t.Errorf("Loaded term %d should be %q, got %q", i, term, loaded.Terms()[i])
		}
	}
}

func TestLoadMissingMatrix(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LoadMatrix(context.Background(), "does-not-exist")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListMatricesMetadata(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m, opts := buildMatrix(t)
	id, err := s.SaveMatrix(ctx, "listed", m, opts)
	if err != nil {
		t.Fatalf("SaveMatrix failed: %v", err)
	}

	infos, err := s.ListMatrices(ctx)
	if err != nil {
		t.Fatalf("ListMatrices failed: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("Expected 1 matrix, got %d", len(infos))
	}

	info := infos[0]
	if info.ID != id {
		t.Errorf("Expected ID %s, got %s", id, info.ID)
	}
	if info.Name != "listed" {
		t.Errorf("Expected name 'listed', got %q", info.Name)
	}
	if info.Dim != m.Dim() {
		t.Errorf("Expected dim %d, got %d", m.Dim(), info.Dim)
	}
	if info.NNZ != m.Matrix().NNZ() {
		t.Errorf("Expected NNZ %d, got %d", m.Matrix().NNZ(), info.NNZ)
	}
	if info.WindowSize != opts.WindowSize {
		t.Errorf("Expected window size %d, got %d", opts.WindowSize, info.WindowSize)
	}
	if !info.Normalize {
		t.Error("Normalize flag should round-trip")
	}
	if info.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestDeleteMatrixCascades(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m, opts := buildMatrix(t)
	id, _ := s.SaveMatrix(ctx, "victim", m, opts)

	if err := s.DeleteMatrix(ctx, id); err != nil {
		t.Fatalf("DeleteMatrix failed: %v", err)
	}
	if _, err := s.LoadMatrix(ctx, id); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Deleted matrix should be gone, got %v", err)
	}
	if err := s.DeleteMatrix(ctx, id); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Double delete should yield ErrNotFound, got %v", err)
	}
}

func TestZeroDimensionMatrixRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	opts := coom.DefaultOptions()
	m, err := coom.BuildDocumentAuto(nil, opts)
	if err != nil {
		t.Fatalf("build empty matrix: %v", err)
	}

	id, err := s.SaveMatrix(ctx, "empty", m, opts)
	if err != nil {
		t.Fatalf("SaveMatrix failed: %v", err)
	}

	loaded, err := s.LoadMatrix(ctx, id)
	if err != nil {
		t.Fatalf("LoadMatrix failed: %v", err)
	}
	if loaded.Dim() != 0 {
		t.Errorf("Expected 0x0 matrix, got dimension %d", loaded.Dim())
	}
}
