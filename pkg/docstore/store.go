// Package docstore keeps the texts of an annotation batch and the results
// produced for them. All methods are safe for concurrent use, so batch
// workers can record results while callers read them.
package docstore

import (
	"cmp"
	"slices"
	"sync"

	"github.com/kittclouds/palladian/pkg/annotation"
)

// Document is a text queued for annotation.
type Document struct {
	ID      string
	Text    string
	Version int64
}

// Result is the outcome of annotating one document. Err is set instead of
// Annotations when the document failed.
type Result struct {
	ID          string                            `json:"id" yaml:"id"`
	Version     int64                             `json:"version" yaml:"version"`
	Annotations []annotation.ClassifiedAnnotation `json:"annotations" yaml:"annotations"`
	Err         error                             `json:"-" yaml:"-"`
}

// Store holds documents and their results in memory.
type Store struct {
	mu      sync.RWMutex
	docs    map[string]*Document
	results map[string]Result
}

// New creates an empty store.
func New() *Store {
	return &Store{
		docs:    make(map[string]*Document),
		results: make(map[string]Result),
	}
}

// Hydrate bulk-loads documents and returns how many were loaded.
func (s *Store) Hydrate(docs []Document) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range docs {
		s.put(doc)
	}
	return len(docs)
}

// Upsert adds or replaces a document. A result recorded for an older
// version is discarded.
func (s *Store) Upsert(id, text string, version int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.put(Document{ID: id, Text: text, Version: version})
}

func (s *Store) put(doc Document) {
	d := doc
	s.docs[doc.ID] = &d
	if r, ok := s.results[doc.ID]; ok && r.Version != doc.Version {
		delete(s.results, doc.ID)
	}
}

// Remove deletes a document and its result.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, id)
	delete(s.results, id)
}

// Get returns a copy of the document, or false when it is unknown.
func (s *Store) Get(id string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return Document{}, false
	}
	return *doc, true
}

// Count returns the number of documents.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.docs)
}

// AllIDs returns all document IDs in sorted order.
func (s *Store) AllIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SetResult records the result of a document. Results for documents that
// were removed or changed in the meantime are dropped.
func (s *Store) SetResult(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[r.ID]
	if !ok || doc.Version != r.Version {
		return
	}
	s.results[r.ID] = r
}

// Result returns the recorded result of a document.
func (s *Store) Result(id string) (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.results[id]
	return r, ok
}

// Results returns all recorded results ordered by document ID.
func (s *Store) Results() []Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Result, 0, len(s.results))
	for _, r := range s.results {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b Result) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Clear removes all documents and results.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = make(map[string]*Document)
	s.results = make(map[string]Result)
}
