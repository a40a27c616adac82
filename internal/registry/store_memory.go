package registry

import (
	"context"
	"sync"

	id "docledger/pkg/domain"
	"docledger/pkg/platform/sentinel"
)

// InMemoryStore keeps documents in process memory. A single RWMutex gives
// the serialized single-writer order the ledger semantics require; reads run
// concurrently and always observe the latest committed write.
type InMemoryStore struct {
	mu         sync.RWMutex
	documents  map[id.DocumentID]Document
	ownerIndex map[id.Address][]id.DocumentID
	hashes     map[id.Hash]struct{}
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		documents:  make(map[id.DocumentID]Document),
		ownerIndex: make(map[id.Address][]id.DocumentID),
		hashes:     make(map[id.Hash]struct{}),
	}
}

func (s *InMemoryStore) Create(_ context.Context, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[doc.ID]; ok {
		return sentinel.ErrConflict
	}
	s.documents[doc.ID] = doc
	s.ownerIndex[doc.Owner] = append(s.ownerIndex[doc.Owner], doc.ID)
	s.hashes[doc.ContentHash] = struct{}{}
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, docID id.DocumentID) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if doc, ok := s.documents[docID]; ok {
		return doc, nil
	}
	return Document{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListByOwner(_ context.Context, owner id.Address) ([]id.DocumentID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]id.DocumentID{}, s.ownerIndex[owner]...), nil
}

func (s *InMemoryStore) HashRegistered(_ context.Context, contentHash id.Hash) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.hashes[contentHash]
	return ok, nil
}
