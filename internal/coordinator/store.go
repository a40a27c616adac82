package coordinator

import (
	"context"

	id "docledger/pkg/domain"
)

// Store persists document requests and the reverse correlation index. Local
// request ids are allocated by the store, monotonically from 1; absence is
// reported with sentinel.ErrNotFound, never with a zero-valued record.
type Store interface {
	// Create persists a new request, allocates its RequestID, and records
	// the oracleRequestID -> RequestID correlation entry, atomically.
	// Returns the allocated id.
	Create(ctx context.Context, req DocumentRequest) (id.RequestID, error)

	// Find returns the request for the given local id.
	Find(ctx context.Context, reqID id.RequestID) (DocumentRequest, error)

	// FindByOracleID resolves an inbound oracle correlation key to the
	// local request.
	FindByOracleID(ctx context.Context, oracleID id.OracleRequestID) (DocumentRequest, error)

	// MarkFulfilled flips the terminal flag and records the registered
	// document id. Returns sentinel.ErrInvalidState if the request is
	// already fulfilled, so the exactly-once guarantee holds even if two
	// fulfillment attempts race.
	MarkFulfilled(ctx context.Context, reqID id.RequestID, docID id.DocumentID) error
}
