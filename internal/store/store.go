// Package store holds the editor's working copy of the content document
// and applies structural edits to it.
//
// Every mutation produces a new top-level document value: the previous
// value is shallow-copied and the affected section's slice is copied
// before the edit, so callers holding an earlier snapshot never observe
// the change, and change detection can compare revisions.
package store

import (
	"errors"
	"sync"

	"github.com/nijanthan/portfolio-cms/internal/content"
)

// Mutation errors. Out-of-range indices and unknown field names are
// programming errors on the caller's side; they are reported rather
// than panicking because the HTTP boundary forwards indices from
// clients.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownField    = errors.New("unknown field")
)

// Store is the working copy holder. Safe for concurrent use; the
// editing model is still a single active user, the mutex only guards
// against overlapping HTTP handlers.
type Store struct {
	mu       sync.Mutex
	doc      *content.Document
	revision uint64
}

// New creates a store seeded with a deep copy of doc.
func New(doc *content.Document) *Store {
	return &Store{doc: doc.Clone()}
}

// Document returns a deep copy of the current working copy.
func (s *Store) Document() *content.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Revision returns a counter that increases with every applied
// mutation. Equal revisions imply an identical document.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Replace swaps the working copy wholesale (used after pulling the
// remote document).
func (s *Store) Replace(doc *content.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone()
	s.revision++
}

// mutate applies fn to a fresh shallow copy of the document and commits
// it only if fn succeeds. fn must copy any slice it edits.
func (s *Store) mutate(fn func(doc *content.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.doc
	if err := fn(&next); err != nil {
		return err
	}
	s.doc = &next
	s.revision++
	return nil
}
