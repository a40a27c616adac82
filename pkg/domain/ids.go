// Package domain holds the typed identifiers shared by the registry and the
// coordinator. Values are constructed via ParseX at trust boundaries so that
// services never see malformed addresses or hashes.
package domain

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	dErrors "docledger/pkg/domain-errors"
)

// Address identifies a caller account. 20 bytes, rendered as 0x-prefixed hex.
// Invariant: the zero address is not a valid caller identity.
type Address [20]byte

// Hash is a 256-bit content fingerprint. The zero hash means "absent" and is
// rejected wherever a real fingerprint is required.
type Hash [32]byte

// DocumentID is the derived document key, see DeriveDocumentID. The zero id
// is invalid.
type DocumentID [32]byte

// OracleRequestID is the correlation key assigned by the oracle gateway.
// Invariant: non-nil UUID, fresh per submitted request.
type OracleRequestID uuid.UUID

// RequestID is the coordinator-local request key. Allocation is monotonic and
// starts at 1; 0 never names a request. Absence is reported through
// sentinel.ErrNotFound, never through the zero value.
type RequestID uint64

// ParseAddress constructs an Address from external input.
//
// Errors: CodeInvalidInput when the value is not 0x-prefixed 40-digit hex or
// is the zero address.
func ParseAddress(s string) (Address, error) {
	var a Address
	raw, ok := strings.CutPrefix(strings.ToLower(s), "0x")
	if !ok || len(raw) != 40 {
		return a, dErrors.New(dErrors.CodeInvalidInput, "address must be 0x-prefixed 40-digit hex")
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return a, dErrors.New(dErrors.CodeInvalidInput, "address is not valid hex")
	}
	copy(a[:], b)
	if a.IsZero() {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address cannot be the zero address")
	}
	return a, nil
}

func (a Address) IsZero() bool { return a == Address{} }

func (a Address) String() string { return "0x" + hex.EncodeToString(a[:]) }

// ParseHash constructs a Hash from external input.
//
// Errors: CodeInvalidInput when the value is not 0x-prefixed 64-digit hex or
// is the zero hash.
func ParseHash(s string) (Hash, error) {
	var h Hash
	raw, ok := strings.CutPrefix(strings.ToLower(s), "0x")
	if !ok || len(raw) != 64 {
		return h, dErrors.New(dErrors.CodeInvalidInput, "hash must be 0x-prefixed 64-digit hex")
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return h, dErrors.New(dErrors.CodeInvalidInput, "hash is not valid hex")
	}
	copy(h[:], b)
	if h.IsZero() {
		return Hash{}, dErrors.New(dErrors.CodeInvalidInput, "hash cannot be zero")
	}
	return h, nil
}

func (h Hash) IsZero() bool { return h == Hash{} }

func (h Hash) String() string { return "0x" + hex.EncodeToString(h[:]) }

// ParseDocumentID constructs a DocumentID from external input.
//
// Errors: CodeInvalidInput when the value is not 0x-prefixed 64-digit hex or
// is the zero id.
func ParseDocumentID(s string) (DocumentID, error) {
	h, err := ParseHash(s)
	if err != nil {
		return DocumentID{}, dErrors.New(dErrors.CodeInvalidInput, "document id must be 0x-prefixed 64-digit hex")
	}
	return DocumentID(h), nil
}

func (d DocumentID) IsZero() bool { return d == DocumentID{} }

func (d DocumentID) String() string { return "0x" + hex.EncodeToString(d[:]) }

// ParseOracleRequestID constructs an OracleRequestID from external input.
//
// Errors: CodeInvalidInput when the value is empty, not a UUID, or the nil
// UUID.
func ParseOracleRequestID(s string) (OracleRequestID, error) {
	if s == "" {
		return OracleRequestID{}, dErrors.New(dErrors.CodeInvalidInput, "oracle request id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return OracleRequestID{}, dErrors.New(dErrors.CodeInvalidInput, "oracle request id must be a valid UUID")
	}
	if u == uuid.Nil {
		return OracleRequestID{}, dErrors.New(dErrors.CodeInvalidInput, "oracle request id cannot be the nil UUID")
	}
	return OracleRequestID(u), nil
}

// NewOracleRequestID allocates a fresh correlation id. Used by gateways when
// accepting a submission.
func NewOracleRequestID() OracleRequestID {
	return OracleRequestID(uuid.New())
}

func (o OracleRequestID) IsZero() bool { return uuid.UUID(o) == uuid.Nil }

func (o OracleRequestID) String() string { return uuid.UUID(o).String() }
