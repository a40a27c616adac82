package registry

import (
	"time"

	id "docledger/pkg/domain"
	dErrors "docledger/pkg/domain-errors"
)

// Field bounds enforced at registration time.
const (
	MaxDocumentTypeLen = 100
	MaxMetadataLen     = 1000
)

// Document binds a content fingerprint to an owner and timestamp. Records are
// append-only: once created, ContentHash, Owner, and RegisteredAt never
// change, and nothing is ever deleted.
type Document struct {
	ID           id.DocumentID
	Owner        id.Address
	ContentHash  id.Hash
	RegisteredAt time.Time
	DocumentType string
	Metadata     string
}

// View is the caller-facing shape of a document. Owner, DocumentType, and
// RegisteredAt are public; ContentHash and Metadata are only populated for
// the recorded owner.
type View struct {
	ID           id.DocumentID
	Owner        id.Address
	ContentHash  id.Hash
	RegisteredAt time.Time
	DocumentType string
	Metadata     string
}

// ViewFor applies the ownership-gated visibility policy. This is a privacy
// policy, not an access-control failure: the lookup succeeds either way.
func (d Document) ViewFor(caller id.Address) View {
	v := View{
		ID:           d.ID,
		Owner:        d.Owner,
		ContentHash:  d.ContentHash,
		RegisteredAt: d.RegisteredAt,
		DocumentType: d.DocumentType,
		Metadata:     d.Metadata,
	}
	if caller != d.Owner {
		v.ContentHash = id.Hash{}
		v.Metadata = ""
	}
	return v
}

func validateRegistration(contentHash id.Hash, documentType, metadata string) error {
	if contentHash.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "content hash cannot be zero")
	}
	if documentType == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "document type cannot be empty")
	}
	if len(documentType) > MaxDocumentTypeLen {
		return dErrors.New(dErrors.CodeInvalidInput, "document type exceeds maximum length")
	}
	if len(metadata) > MaxMetadataLen {
		return dErrors.New(dErrors.CodeInvalidInput, "metadata exceeds maximum length")
	}
	return nil
}
