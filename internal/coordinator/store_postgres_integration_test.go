//go:build integration

package coordinator_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"docledger/internal/coordinator"
	id "docledger/pkg/domain"
	"docledger/pkg/platform/sentinel"
	"docledger/pkg/testutil/containers"
)

type PostgresRequestStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *coordinator.PostgresStore
}

func TestPostgresRequestStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresRequestStoreSuite))
}

func (s *PostgresRequestStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T(), coordinator.Schema)
	s.store = coordinator.NewPostgresStore(s.postgres.DB)
}

func (s *PostgresRequestStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "document_requests"))
}

func newRequest() coordinator.DocumentRequest {
	var requester id.Address
	requester[19] = 1
	return coordinator.DocumentRequest{
		Requester:       requester,
		DocumentType:    "NDA",
		Requirements:    "two-way, California law",
		CreatedAt:       time.Now().UTC().Truncate(time.Second),
		OracleRequestID: id.NewOracleRequestID(),
	}
}

// TestCreateAllocatesMonotonicIDs verifies BIGSERIAL allocation starts at 1
// after a truncate and increases.
func (s *PostgresRequestStoreSuite) TestCreateAllocatesMonotonicIDs() {
	ctx := context.Background()

	first, err := s.store.Create(ctx, newRequest())
	s.Require().NoError(err)
	second, err := s.store.Create(ctx, newRequest())
	s.Require().NoError(err)

	s.Equal(id.RequestID(1), first)
	s.Equal(id.RequestID(2), second)
}

// TestCorrelationUniqueness verifies a reused oracle id is rejected.
func (s *PostgresRequestStoreSuite) TestCorrelationUniqueness() {
	ctx := context.Background()
	req := newRequest()

	_, err := s.store.Create(ctx, req)
	s.Require().NoError(err)

	_, err = s.store.Create(ctx, req)
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

// TestLookups verifies both lookup paths and the round trip of every field.
func (s *PostgresRequestStoreSuite) TestLookups() {
	ctx := context.Background()
	req := newRequest()
	reqID, err := s.store.Create(ctx, req)
	s.Require().NoError(err)

	byID, err := s.store.Find(ctx, reqID)
	s.Require().NoError(err)
	byOracle, err := s.store.FindByOracleID(ctx, req.OracleRequestID)
	s.Require().NoError(err)

	s.Equal(byID.ID, byOracle.ID)
	s.Equal(req.Requester, byID.Requester)
	s.Equal(req.DocumentType, byID.DocumentType)
	s.Equal(req.Requirements, byID.Requirements)
	s.Equal(req.OracleRequestID, byID.OracleRequestID)
	s.True(req.CreatedAt.Equal(byID.CreatedAt))
	s.False(byID.Fulfilled)
	s.True(byID.DocumentID.IsZero())

	_, err = s.store.Find(ctx, id.RequestID(99))
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindByOracleID(ctx, id.NewOracleRequestID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// TestMarkFulfilledExactlyOnce verifies the guarded UPDATE admits a single
// winner under concurrency.
func (s *PostgresRequestStoreSuite) TestMarkFulfilledExactlyOnce() {
	ctx := context.Background()
	reqID, err := s.store.Create(ctx, newRequest())
	s.Require().NoError(err)

	var docID id.DocumentID
	docID[0] = 0xd0

	const goroutines = 20
	var wg sync.WaitGroup
	var successes, invalidState atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch err := s.store.MarkFulfilled(ctx, reqID, docID); err {
			case nil:
				successes.Add(1)
			case sentinel.ErrInvalidState:
				invalidState.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successes.Load(), "exactly one transition should win")
	s.Equal(int32(goroutines-1), invalidState.Load())

	req, err := s.store.Find(ctx, reqID)
	s.Require().NoError(err)
	s.True(req.Fulfilled)
	s.Equal(docID, req.DocumentID)
}

// TestMarkFulfilledUnknownRequest distinguishes missing from terminal.
func (s *PostgresRequestStoreSuite) TestMarkFulfilledUnknownRequest() {
	var docID id.DocumentID
	docID[0] = 0xd0
	err := s.store.MarkFulfilled(context.Background(), id.RequestID(404), docID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
