// Package vocab provides the ordered term-to-position mapping that fixes
// the row/column layout of a co-occurrence matrix.
package vocab

// Index maps terms to contiguous zero-based matrix positions.
// Positions follow first-seen order of the input terms. An Index is
// read-only after construction and safe for concurrent lookups.
type Index struct {
	terms     []string
	positions map[string]int
}

// New builds an index from an ordered term list. Duplicate terms are
// collapsed to their first occurrence, so the position of a term is the
// rank of its first appearance.
func New(terms []string) *Index {
	idx := &Index{
		terms:     make([]string, 0, len(terms)),
		positions: make(map[string]int, len(terms)),
	}
	for _, t := range terms {
		if _, ok := idx.positions[t]; ok {
			continue
		}
		idx.positions[t] = len(idx.terms)
		idx.terms = append(idx.terms, t)
	}
	return idx
}

// FromTokens derives an index from a document's token stream, assigning
// positions in first-occurrence order. Semantically identical to New;
// the separate name marks call sites where the vocabulary is a
// by-product of a single document rather than a curated lexicon.
func FromTokens(tokens []string) *Index {
	return New(tokens)
}

// Position returns the matrix position of a term.
func (x *Index) Position(term string) (int, bool) {
	pos, ok := x.positions[term]
	return pos, ok
}

// Term returns the term at position i. Panics if i is out of range.
func (x *Index) Term(i int) string {
	return x.terms[i]
}

// Terms returns a copy of the term list in position order.
func (x *Index) Terms() []string {
	out := make([]string, len(x.terms))
	copy(out, x.terms)
	return out
}

// Len returns the vocabulary size.
func (x *Index) Len() int {
	return len(x.terms)
}
