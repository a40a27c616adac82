package registry

import (
	"context"

	id "docledger/pkg/domain"
)

// Store persists documents. Implementations are append-only: Create is the
// only mutation, and it must reject an id that is already present with
// sentinel.ErrConflict. Lookups report absence with sentinel.ErrNotFound,
// never with zero-valued records.
type Store interface {
	// Create appends the document, records its hash in the global
	// membership set, and appends its id to the owner's index, atomically.
	Create(ctx context.Context, doc Document) error

	// Find returns the document for the given id.
	Find(ctx context.Context, docID id.DocumentID) (Document, error)

	// ListByOwner returns the owner's document ids in insertion order.
	// An owner with no documents yields an empty slice, not an error.
	ListByOwner(ctx context.Context, owner id.Address) ([]id.DocumentID, error)

	// HashRegistered reports whether any owner ever registered the hash.
	HashRegistered(ctx context.Context, contentHash id.Hash) (bool, error)
}
