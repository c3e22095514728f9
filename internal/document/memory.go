package document

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore keeps documents in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mu:   sync.RWMutex{},
		docs: make(map[string]Document),
	}
}

// Save stores a copy of doc, replacing any document with the same id.
func (s *MemoryStore) Save(_ context.Context, doc *Document) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("%w: document id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[doc.ID] = *doc
	return nil
}

// Get returns a copy of the stored document.
func (s *MemoryStore) Get(_ context.Context, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &doc, nil
}

// List returns all documents, newest first.
func (s *MemoryStore) List(_ context.Context) ([]*Document, error) {
	s.mu.RLock()
	docs := make([]*Document, 0, len(s.docs))
	for _, doc := range s.docs {
		d := doc
		docs = append(docs, &d)
	}
	s.mu.RUnlock()

	SortNewestFirst(docs)
	return docs, nil
}

// Delete removes a document.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.docs, id)
	return nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// SortNewestFirst orders documents by creation time, newest first, then by id.
func SortNewestFirst(docs []*Document) {
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		}
		return docs[i].ID < docs[j].ID
	})
}
