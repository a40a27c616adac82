package coordinator

import (
	"context"
	"sync"

	id "docledger/pkg/domain"
	"docledger/pkg/platform/sentinel"
)

// InMemoryStore keeps requests in process memory. The mutex serializes all
// mutations, matching the single-writer order of the ledger; the id counter
// is only ever touched under the write lock.
type InMemoryStore struct {
	mu          sync.RWMutex
	nextID      id.RequestID
	requests    map[id.RequestID]DocumentRequest
	correlation map[id.OracleRequestID]id.RequestID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		nextID:      1,
		requests:    make(map[id.RequestID]DocumentRequest),
		correlation: make(map[id.OracleRequestID]id.RequestID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, req DocumentRequest) (id.RequestID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.correlation[req.OracleRequestID]; ok {
		return 0, sentinel.ErrConflict
	}
	req.ID = s.nextID
	s.nextID++
	s.requests[req.ID] = req
	s.correlation[req.OracleRequestID] = req.ID
	return req.ID, nil
}

func (s *InMemoryStore) Find(_ context.Context, reqID id.RequestID) (DocumentRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if req, ok := s.requests[reqID]; ok {
		return req, nil
	}
	return DocumentRequest{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByOracleID(_ context.Context, oracleID id.OracleRequestID) (DocumentRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reqID, ok := s.correlation[oracleID]
	if !ok {
		return DocumentRequest{}, sentinel.ErrNotFound
	}
	return s.requests[reqID], nil
}

func (s *InMemoryStore) MarkFulfilled(_ context.Context, reqID id.RequestID, docID id.DocumentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[reqID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if req.Fulfilled {
		return sentinel.ErrInvalidState
	}
	req.Fulfilled = true
	req.DocumentID = docID
	s.requests[reqID] = req
	return nil
}
