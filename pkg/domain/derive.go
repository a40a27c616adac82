package domain

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/sha3"
)

// HashContent fingerprints document content with Keccak-256. The content
// itself is never stored; only this digest is.
func HashContent(content []byte) Hash {
	var h Hash
	k := sha3.NewLegacyKeccak256()
	k.Write(content)
	copy(h[:], k.Sum(nil))
	return h
}

// DeriveDocumentID derives the document key from the content fingerprint, the
// owning address, and the registration timestamp (second resolution).
//
// Pure and deterministic: identical inputs always yield the identical id, so
// external callers can pre-compute ids for auditing. Collisions between
// distinct inputs are treated as cryptographically infeasible; the registry
// only guards against the exact same triple being replayed within one logical
// second.
func DeriveDocumentID(contentHash Hash, owner Address, ts time.Time) DocumentID {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(ts.Unix()))

	k := sha3.NewLegacyKeccak256()
	k.Write(contentHash[:])
	k.Write(owner[:])
	k.Write(buf[:])

	var id DocumentID
	copy(id[:], k.Sum(nil))
	return id
}
