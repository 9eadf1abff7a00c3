// Package display renders human-readable summaries of co-occurrence
// matrices.
package display

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cogstats/coom/pkg/coom"
)

// Pair is one term association with its accumulated weight.
type Pair struct {
	T1, T2 string
	Weight float64
}

// TopPairs returns the k strongest associations in descending weight
// order. Ties break on canonical matrix position so the order is
// deterministic.
func TopPairs(m *coom.CooMatrix, k int) []Pair {
	cells := m.Matrix().Cells()
	sort.SliceStable(cells, func(a, b int) bool {
		return cells[a].Weight > cells[b].Weight
	})
	if k > len(cells) {
		k = len(cells)
	}
	if k < 0 {
		k = 0
	}

	pairs := make([]Pair, 0, k)
	for _, c := range cells[:k] {
		pairs = append(pairs, Pair{
			T1:     m.Vocab().Term(c.I),
			T2:     m.Vocab().Term(c.J),
			Weight: c.Weight,
		})
	}
	return pairs
}

// Summary returns a one-screen description: dimension, stored pairs,
// density, and the strongest associations.
func Summary(m *coom.CooMatrix) string {
	var b strings.Builder

	n := m.Dim()
	nnz := m.Matrix().NNZ()
	fmt.Fprintf(&b, "co-occurrence matrix %dx%d, %d non-zero pairs", n, n, nnz)
	if n > 1 {
		possible := n * (n - 1) / 2
		fmt.Fprintf(&b, " (density %.2f%%)", 100*float64(nnz)/float64(possible))
	}
	b.WriteByte('\n')

	for _, p := range TopPairs(m, 10) {
		fmt.Fprintf(&b, "  %s ~ %s: %.4f\n", p.T1, p.T2, p.Weight)
	}

	return b.String()
}

// Table renders an aligned dense preview of the first maxTerms rows and
// columns. Intended for small matrices; larger ones are truncated with
// a trailing marker.
func Table(m *coom.CooMatrix, maxTerms int) string {
	n := m.Dim()
	truncated := false
	if maxTerms > 0 && n > maxTerms {
		n = maxTerms
		truncated = true
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	fmt.Fprint(w, "\t")
	for j := 0; j < n; j++ {
		fmt.Fprintf(w, "%s\t", m.Vocab().Term(j))
	}
	fmt.Fprintln(w)

	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "%s\t", m.Vocab().Term(i))
		for j := 0; j < n; j++ {
			fmt.Fprintf(w, "%.3f\t", m.At(i, j))
		}
		fmt.Fprintln(w)
	}
	w.Flush()

	if truncated {
		fmt.Fprintf(&b, "... %d more terms\n", m.Dim()-n)
	}
	return b.String()
}
