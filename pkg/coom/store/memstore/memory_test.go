package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/cogstats/coom/pkg/coom"
	"github.com/cogstats/coom/pkg/coom/internalerr"
)

func buildMatrix(t *testing.T) (*coom.CooMatrix, coom.Options) {
	t.Helper()
	opts := coom.Options{WindowSize: 2, Normalize: true}
	m, err := coom.BuildDocumentAuto([]string{"a", "b", "c", "a"}, opts)
	if err != nil {
		t.Fatalf("build matrix: %v", err)
	}
	return m, opts
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	m, opts := buildMatrix(t)
	id, err := s.SaveMatrix(ctx, "test", m, opts)
	if err != nil {
		t.Fatalf("SaveMatrix failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveMatrix should return a non-empty ID")
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
	s := New()
	defer s.Close()

	_, err := s.LoadMatrix(context.Background(), "missing")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListMatrices(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	m, opts := buildMatrix(t)
	first, _ := s.SaveMatrix(ctx, "first", m, opts)
	second, _ := s.SaveMatrix(ctx, "second", m, opts)

	infos, err := s.ListMatrices(ctx)
	if err != nil {
		t.Fatalf("ListMatrices failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("Expected 2 matrices, got %d", len(infos))
	}

	// Newest first: ULIDs are monotonic within the same millisecond.
	if infos[0].ID != second || infos[1].ID != first {
		t.Errorf("Expected newest-first order [%s %s], got [%s %s]", second, first, infos[0].ID, infos[1].ID)
	}
	if infos[0].Dim != m.Dim() {
		t.Errorf("Info dim should be %d, got %d", m.Dim(), infos[0].Dim)
	}
}

func TestDeleteMatrix(t *testing.T) {
	s := New()
	defer s.Close()
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
