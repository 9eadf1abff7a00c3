// Package corpus provides the document and corpus containers consumed
// by the co-occurrence builder.
package corpus

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"

	"github.com/cogstats/coom/pkg/coom/vocab"
)

var entropy = ulid.Monotonic(rand.Reader, 0)

// Document is one tokenized document. Token order is meaningful: window
// distances during counting are token-position distances.
type Document struct {
	ID     string
	Title  string
	Tokens []string
}

// NewDocument creates a document with a fresh monotonic ULID.
func NewDocument(title string, tokens []string) Document {
	return Document{
		ID:     ulid.MustNew(ulid.Now(), entropy).String(),
		Title:  title,
		Tokens: tokens,
	}
}

// Corpus is an ordered collection of documents sharing one vocabulary.
type Corpus struct {
	docs    []Document
	lexicon *vocab.Index
}

// New creates a corpus from the given documents, preserving order.
func New(docs ...Document) *Corpus {
	c := &Corpus{}
	for _, d := range docs {
		c.Add(d)
	}
	return c
}

// Add appends a document and invalidates any cached lexicon.
func (c *Corpus) Add(d Document) {
	c.docs = append(c.docs, d)
	c.lexicon = nil
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.docs)
}

// Docs returns the documents in corpus order. The slice is shared;
// callers must not mutate it.
func (c *Corpus) Docs() []Document {
	return c.docs
}

// Lexicon returns the corpus vocabulary: every distinct term across all
// documents, positioned in first-seen corpus order. Built lazily and
// cached until the next Add.
func (c *Corpus) Lexicon() *vocab.Index {
	if c.lexicon == nil {
		var all []string
		for _, d := range c.docs {
			all = append(all, d.Tokens...)
		}
		c.lexicon = vocab.FromTokens(all)
	}
	return c.lexicon
}
