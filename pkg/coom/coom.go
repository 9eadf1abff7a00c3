// Package coom computes term co-occurrence matrices from tokenized
// text: for a vocabulary of n terms it produces a sparse symmetric n×n
// matrix whose (i,j) entry accumulates how often term i appears near
// term j within a sliding window, across one document or a whole
// corpus. The matrix is the statistical backbone for downstream
// similarity and embedding work.
package coom

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cogstats/coom/pkg/coom/corpus"
	"github.com/cogstats/coom/pkg/coom/internalerr"
	"github.com/cogstats/coom/pkg/coom/sparse"
	"github.com/cogstats/coom/pkg/coom/vocab"
)

// Options configures a co-occurrence build.
type Options struct {
	// WindowSize is the half-width of the scanning window: token
	// positions within WindowSize of the focus position co-occur with
	// it. Must be >= 1.
	WindowSize int

	// Normalize weights each co-occurrence event by the inverse of the
	// token-position distance instead of counting unit weight.
	Normalize bool

	// Workers bounds the number of documents processed concurrently
	// during a corpus build. Values below 2 select the serial path.
	Workers int
}

// DefaultOptions returns the standard configuration: window 5,
// distance-normalized weights, serial processing.
func DefaultOptions() Options {
	return Options{
		WindowSize: 5,
		Normalize:  true,
		Workers:    1,
	}
}

func (o Options) validate() error {
	if o.WindowSize <= 0 {
		return fmt.Errorf("window size %d: %w", o.WindowSize, internalerr.ErrInvalidConfig)
	}
	return nil
}

// CooMatrix is an immutable build result: the sparse symmetric matrix
// together with the vocabulary that fixes its row/column layout.
type CooMatrix struct {
	matrix *sparse.Matrix
	vocab  *vocab.Index
}

// NewCooMatrix wraps an already built matrix and its vocabulary,
// checking that their dimensions agree. Used when reconstructing a
// result, e.g. from a store.
func NewCooMatrix(m *sparse.Matrix, idx *vocab.Index) (*CooMatrix, error) {
	if m.Dim() != idx.Len() {
		return nil, fmt.Errorf("matrix dimension %d vs vocabulary size %d: %w", m.Dim(), idx.Len(), internalerr.ErrDimensionMismatch)
	}
	return &CooMatrix{matrix: m, vocab: idx}, nil
}

// Matrix returns the underlying sparse matrix.
func (c *CooMatrix) Matrix() *sparse.Matrix {
	return c.matrix
}

// Vocab returns the vocabulary index.
func (c *CooMatrix) Vocab() *vocab.Index {
	return c.vocab
}

// Terms returns the term list in matrix position order.
func (c *CooMatrix) Terms() []string {
	return c.vocab.Terms()
}

// Dim returns the matrix dimension (the vocabulary size).
func (c *CooMatrix) Dim() int {
	return c.matrix.Dim()
}

// At returns the weight at matrix positions (i,j).
func (c *CooMatrix) At(i, j int) float64 {
	return c.matrix.At(i, j)
}

// AtTerms returns the weight between two terms, or 0 if either term is
// not in the vocabulary.
func (c *CooMatrix) AtTerms(t1, t2 string) float64 {
	i, ok := c.vocab.Position(t1)
	if !ok {
		return 0
	}
	j, ok := c.vocab.Position(t2)
	if !ok {
		return 0
	}
	if i == j {
		return 0
	}
	return c.matrix.At(i, j)
}

// WindowCounts scans one document and returns its partial co-occurrence
// matrix over the given vocabulary. Every pair of token positions at
// most windowSize apart (clamped to document bounds) contributes weight
// 1, or 1/distance when normalize is set, provided both tokens are in
// the vocabulary. The scan visits each unordered position pair once,
// looking forward from every position; symmetric storage makes the
// mirrored entry agree. Tokens outside the vocabulary are skipped
// silently. The distance is at least 1, so normalization never divides
// by zero.
func WindowCounts(tokens []string, idx *vocab.Index, windowSize int, normalize bool) (*sparse.Matrix, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("window size %d: %w", windowSize, internalerr.ErrInvalidConfig)
	}

	m := sparse.NewMatrix(idx.Len())

	for i, tok := range tokens {
		pi, ok := idx.Position(tok)
		if !ok {
			continue
		}

		hi := i + windowSize
		if hi > len(tokens)-1 {
			hi = len(tokens) - 1
		}

		for j := i + 1; j <= hi; j++ {
			pj, ok := idx.Position(tokens[j])
			if !ok {
				continue
			}
			if pj == pi {
				// Same vocabulary entry at two positions; the
				// diagonal stays zero.
				continue
			}

			w := 1.0
			if normalize {
				w = 1.0 / float64(j-i)
			}
			m.Add(pi, pj, w)
		}
	}

	return m, nil
}

// Build aggregates a whole corpus into one CooMatrix. Every document is
// counted against the shared vocabulary and the partial matrices are
// summed in corpus order. If idx is nil the corpus lexicon (distinct
// terms in first-seen corpus order) is used; a nil corpus cannot resolve
// a vocabulary and is a configuration error. An empty corpus yields the
// zero matrix over the vocabulary.
func Build(ctx context.Context, c *corpus.Corpus, idx *vocab.Index, opts Options) (*CooMatrix, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if idx == nil {
		if c == nil {
			return nil, fmt.Errorf("no vocabulary supplied and none derivable: %w", internalerr.ErrInvalidConfig)
		}
		idx = c.Lexicon()
	}
	if c == nil {
		return nil, fmt.Errorf("nil corpus: %w", internalerr.ErrInvalidConfig)
	}

	var total *sparse.Matrix
	var err error
	if opts.Workers > 1 && c.Len() > 1 {
		total, err = buildParallel(ctx, c.Docs(), idx, opts)
	} else {
		total, err = buildSerial(ctx, c.Docs(), idx, opts)
	}
	if err != nil {
		return nil, err
	}

	return &CooMatrix{matrix: total, vocab: idx}, nil
}

// BuildDocument builds a CooMatrix from a single document against an
// explicit vocabulary.
func BuildDocument(tokens []string, idx *vocab.Index, opts Options) (*CooMatrix, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if idx == nil {
		return nil, fmt.Errorf("nil vocabulary: %w", internalerr.ErrInvalidConfig)
	}
	m, err := WindowCounts(tokens, idx, opts.WindowSize, opts.Normalize)
	if err != nil {
		return nil, err
	}
	return &CooMatrix{matrix: m, vocab: idx}, nil
}

// BuildDocumentAuto builds a CooMatrix from a single document using a
// vocabulary derived from the document's own distinct terms in
// first-occurrence order.
func BuildDocumentAuto(tokens []string, opts Options) (*CooMatrix, error) {
	return BuildDocument(tokens, vocab.FromTokens(tokens), opts)
}

func buildSerial(ctx context.Context, docs []corpus.Document, idx *vocab.Index, opts Options) (*sparse.Matrix, error) {
	total := sparse.NewMatrix(idx.Len())
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		partial, err := WindowCounts(d.Tokens, idx, opts.WindowSize, opts.Normalize)
		if err != nil {
			return nil, err
		}
		if err := total.AddMatrix(partial); err != nil {
			return nil, err
		}
	}
	return total, nil
}

// buildParallel fans documents out to opts.Workers goroutines. Each
// worker accumulates a private partial matrix and merges it into the
// total exactly once, under the merge lock; the sum is commutative and
// associative so merge order does not affect the result beyond
// floating-point rounding.
func buildParallel(ctx context.Context, docs []corpus.Document, idx *vocab.Index, opts Options) (*sparse.Matrix, error) {
	total := sparse.NewMatrix(idx.Len())

	g, ctx := errgroup.WithContext(ctx)
	work := make(chan corpus.Document)

	var mu sync.Mutex
	for w := 0; w < opts.Workers; w++ {
		g.Go(func() error {
			local := sparse.NewMatrix(idx.Len())
			for d := range work {
				partial, err := WindowCounts(d.Tokens, idx, opts.WindowSize, opts.Normalize)
				if err != nil {
					return err
				}
				if err := local.AddMatrix(partial); err != nil {
					return err
				}
			}
			mu.Lock()
			defer mu.Unlock()
			return total.AddMatrix(local)
		})
	}

	g.Go(func() error {
		defer close(work)
		for _, d := range docs {
			select {
			case work <- d:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return total, nil
}
