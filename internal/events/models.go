// Package events carries the ledger's contract events. Field names and order
// are the compatibility surface external tooling binds to, so the payload
// structs only ever gain fields.
package events

import (
	"time"

	id "docledger/pkg/domain"
)

// Type names one of the five contract events.
type Type string

const (
	TypeDocumentRegistered  Type = "DocumentRegistered"
	TypeDocumentVerified    Type = "DocumentVerified"
	TypeGenerationRequested Type = "GenerationRequested"
	TypeResponseReceived    Type = "ResponseReceived"
	TypeGenerationFulfilled Type = "GenerationFulfilled"
)

// Event is the envelope written to the configured sink. Exactly one payload
// field group is populated per type.
type Event struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	// DocumentRegistered: Owner, DocumentID, ContentHash, DocumentType.
	// DocumentVerified: DocumentID, CandidateHash, Matched.
	// GenerationRequested: RequestID, Requester, DocumentType, OracleRequestID.
	// ResponseReceived: RequestID, OracleRequestID, ResponseText.
	// GenerationFulfilled: RequestID, Requester, DocumentID.
	Owner           string `json:"owner,omitempty"`
	Requester       string `json:"requester,omitempty"`
	DocumentID      string `json:"document_id,omitempty"`
	ContentHash     string `json:"content_hash,omitempty"`
	CandidateHash   string `json:"candidate_hash,omitempty"`
	DocumentType    string `json:"document_type,omitempty"`
	Matched         *bool  `json:"matched,omitempty"`
	RequestID       uint64 `json:"request_id,omitempty"`
	OracleRequestID string `json:"oracle_request_id,omitempty"`
	ResponseText    string `json:"response_text,omitempty"`
}

// DocumentRegistered builds the registration event.
func DocumentRegistered(owner id.Address, docID id.DocumentID, contentHash id.Hash, documentType string) Event {
	return Event{
		Type:         TypeDocumentRegistered,
		Owner:        owner.String(),
		DocumentID:   docID.String(),
		ContentHash:  contentHash.String(),
		DocumentType: documentType,
	}
}

// DocumentVerified builds the verification event. A mismatch is a normal,
// loggable outcome, so the event is emitted for both values of matched.
func DocumentVerified(docID id.DocumentID, candidate id.Hash, matched bool) Event {
	return Event{
		Type:          TypeDocumentVerified,
		DocumentID:    docID.String(),
		CandidateHash: candidate.String(),
		Matched:       &matched,
	}
}

// GenerationRequested builds the request-opened event.
func GenerationRequested(reqID id.RequestID, requester id.Address, documentType string, oracleID id.OracleRequestID) Event {
	return Event{
		Type:            TypeGenerationRequested,
		RequestID:       uint64(reqID),
		Requester:       requester.String(),
		DocumentType:    documentType,
		OracleRequestID: oracleID.String(),
	}
}

// ResponseReceived builds the oracle-answer event.
func ResponseReceived(reqID id.RequestID, oracleID id.OracleRequestID, responseText string) Event {
	return Event{
		Type:            TypeResponseReceived,
		RequestID:       uint64(reqID),
		OracleRequestID: oracleID.String(),
		ResponseText:    responseText,
	}
}

// GenerationFulfilled builds the terminal fulfillment event.
func GenerationFulfilled(reqID id.RequestID, requester id.Address, docID id.DocumentID) Event {
	return Event{
		Type:       TypeGenerationFulfilled,
		RequestID:  uint64(reqID),
		Requester:  requester.String(),
		DocumentID: docID.String(),
	}
}
