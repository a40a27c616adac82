package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "docledger/pkg/domain"
	"docledger/pkg/platform/sentinel"
)

type DocumentStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestDocumentStoreSuite(t *testing.T) {
	suite.Run(t, new(DocumentStoreSuite))
}

func (s *DocumentStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func (s *DocumentStoreSuite) newDocument(owner id.Address, content string) Document {
	contentHash := id.HashContent([]byte(content))
	registeredAt := time.Now().Truncate(time.Second)
	return Document{
		ID:           id.DeriveDocumentID(contentHash, owner, registeredAt),
		Owner:        owner,
		ContentHash:  contentHash,
		RegisteredAt: registeredAt,
		DocumentType: "NDA",
	}
}

func (s *DocumentStoreSuite) addr(last byte) id.Address {
	var a id.Address
	a[19] = last
	return a
}

// TestCreateAndFind verifies the store persists and retrieves documents.
func (s *DocumentStoreSuite) TestCreateAndFind() {
	s.Run("creates and finds a document", func() {
		doc := s.newDocument(s.addr(1), "nda body")
		s.Require().NoError(s.store.Create(s.ctx, doc))

		found, err := s.store.Find(s.ctx, doc.ID)
		s.Require().NoError(err)
		s.Equal(doc, found)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		var unknown id.DocumentID
		unknown[0] = 0xff
		_, err := s.store.Find(s.ctx, unknown)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects duplicate id with ErrConflict", func() {
		doc := s.newDocument(s.addr(2), "duplicate body")
		s.Require().NoError(s.store.Create(s.ctx, doc))
		s.Require().ErrorIs(s.store.Create(s.ctx, doc), sentinel.ErrConflict)
	})
}

// TestListByOwner verifies the per-owner index keeps insertion order and never
// returns nil.
func (s *DocumentStoreSuite) TestListByOwner() {
	s.Run("empty slice for unknown owner", func() {
		ids, err := s.store.ListByOwner(s.ctx, s.addr(9))
		s.Require().NoError(err)
		s.NotNil(ids)
		s.Empty(ids)
	})

	s.Run("returns ids in insertion order", func() {
		owner := s.addr(3)
		first := s.newDocument(owner, "first")
		second := s.newDocument(owner, "second")
		third := s.newDocument(owner, "third")
		for _, doc := range []Document{first, second, third} {
			s.Require().NoError(s.store.Create(s.ctx, doc))
		}

		ids, err := s.store.ListByOwner(s.ctx, owner)
		s.Require().NoError(err)
		s.Equal([]id.DocumentID{first.ID, second.ID, third.ID}, ids)
	})

	s.Run("does not leak other owners' documents", func() {
		mine := s.newDocument(s.addr(4), "mine")
		theirs := s.newDocument(s.addr(5), "theirs")
		s.Require().NoError(s.store.Create(s.ctx, mine))
		s.Require().NoError(s.store.Create(s.ctx, theirs))

		ids, err := s.store.ListByOwner(s.ctx, s.addr(4))
		s.Require().NoError(err)
		s.Equal([]id.DocumentID{mine.ID}, ids)
	})
}

// TestHashRegistered verifies global hash membership independent of owner.
func (s *DocumentStoreSuite) TestHashRegistered() {
	s.Run("false before any registration", func() {
		ok, err := s.store.HashRegistered(s.ctx, id.HashContent([]byte("nothing")))
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("true after any owner registers the hash", func() {
		doc := s.newDocument(s.addr(6), "shared content")
		s.Require().NoError(s.store.Create(s.ctx, doc))

		ok, err := s.store.HashRegistered(s.ctx, doc.ContentHash)
		s.Require().NoError(err)
		s.True(ok)
	})
}
