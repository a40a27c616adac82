package coordinator

import (
	"time"

	id "docledger/pkg/domain"
	dErrors "docledger/pkg/domain-errors"
)

// Field bounds enforced when opening and fulfilling requests.
const (
	MaxDocumentTypeLen = 100
	MaxRequirementsLen = 2000
	MaxContentLen      = 50000
	MaxMetadataLen     = 1000
)

// DocumentRequest tracks one generation workflow. The only state transition
// is unfulfilled -> fulfilled, exactly once; a request that never receives a
// response stays open forever, which is an accepted limitation rather than a
// bug. Retries are a caller-level concern.
type DocumentRequest struct {
	ID              id.RequestID
	Requester       id.Address
	DocumentType    string
	Requirements    string
	CreatedAt       time.Time
	OracleRequestID id.OracleRequestID

	// DocumentID is set when the request is fulfilled; zero before that.
	DocumentID id.DocumentID
	Fulfilled  bool
}

// View is the caller-facing shape of a request. Requirements are only
// populated for the original requester; everything else is public.
type View struct {
	ID              id.RequestID
	Requester       id.Address
	DocumentType    string
	Requirements    string
	CreatedAt       time.Time
	OracleRequestID id.OracleRequestID
	DocumentID      id.DocumentID
	Fulfilled       bool
}

// ViewFor applies the same ownership-gated visibility policy the registry
// uses for documents.
func (r DocumentRequest) ViewFor(caller id.Address) View {
	v := View{
		ID:              r.ID,
		Requester:       r.Requester,
		DocumentType:    r.DocumentType,
		Requirements:    r.Requirements,
		CreatedAt:       r.CreatedAt,
		OracleRequestID: r.OracleRequestID,
		DocumentID:      r.DocumentID,
		Fulfilled:       r.Fulfilled,
	}
	if caller != r.Requester {
		v.Requirements = ""
	}
	return v
}

func validateGeneration(documentType, requirements string) error {
	if documentType == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "document type cannot be empty")
	}
	if len(documentType) > MaxDocumentTypeLen {
		return dErrors.New(dErrors.CodeInvalidInput, "document type exceeds maximum length")
	}
	if requirements == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "requirements cannot be empty")
	}
	if len(requirements) > MaxRequirementsLen {
		return dErrors.New(dErrors.CodeInvalidInput, "requirements exceed maximum length")
	}
	return nil
}

func validateFulfillment(content, metadata string) error {
	if content == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "content cannot be empty")
	}
	if len(content) > MaxContentLen {
		return dErrors.New(dErrors.CodeInvalidInput, "content exceeds maximum length")
	}
	if len(metadata) > MaxMetadataLen {
		return dErrors.New(dErrors.CodeInvalidInput, "metadata exceeds maximum length")
	}
	return nil
}
