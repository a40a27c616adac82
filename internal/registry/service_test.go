package registry

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"docledger/internal/events"
	id "docledger/pkg/domain"
	dErrors "docledger/pkg/domain-errors"
	"docledger/pkg/requestcontext"
)

type RegistryServiceSuite struct {
	suite.Suite
	store    *InMemoryStore
	recorder *events.Recorder
	service  *Service

	owner    id.Address
	stranger id.Address
}

func TestRegistryServiceSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceSuite))
}

func (s *RegistryServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.recorder = events.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	// nil cache and nil metrics: both are optional collaborators
	s.service = NewService(s.store, nil, s.recorder, logger, nil)

	var err error
	s.owner, err = id.ParseAddress("0x1111111111111111111111111111111111111111")
	s.Require().NoError(err)
	s.stranger, err = id.ParseAddress("0x2222222222222222222222222222222222222222")
	s.Require().NoError(err)
}

// ctxAt pins the logical registration time, which the derived id depends on.
func (s *RegistryServiceSuite) ctxAt(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}

func (s *RegistryServiceSuite) register(ctx context.Context, content string) id.DocumentID {
	docID, err := s.service.Register(ctx, s.owner, id.HashContent([]byte(content)), "NDA", "signed copy")
	s.Require().NoError(err)
	return docID
}

// TestRegister verifies derivation, validation, and the duplicate guard.
func (s *RegistryServiceSuite) TestRegister() {
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	s.Run("derives id from hash, owner, and logical time", func() {
		contentHash := id.HashContent([]byte("nda body"))
		docID, err := s.service.Register(s.ctxAt(at), s.owner, contentHash, "NDA", "")
		s.Require().NoError(err)
		s.Equal(id.DeriveDocumentID(contentHash, s.owner, at), docID)
	})

	s.Run("rejects the zero caller", func() {
		_, err := s.service.Register(s.ctxAt(at), id.Address{}, id.HashContent([]byte("x")), "NDA", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("rejects a zero content hash", func() {
		_, err := s.service.Register(s.ctxAt(at), s.owner, id.Hash{}, "NDA", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects an empty document type", func() {
		_, err := s.service.Register(s.ctxAt(at), s.owner, id.HashContent([]byte("x")), "", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("accepts fields at their exact bounds", func() {
		docType := strings.Repeat("t", MaxDocumentTypeLen)
		metadata := strings.Repeat("m", MaxMetadataLen)
		_, err := s.service.Register(s.ctxAt(at), s.owner, id.HashContent([]byte("bounded")), docType, metadata)
		s.Require().NoError(err)
	})

	s.Run("rejects fields one byte over their bounds", func() {
		_, err := s.service.Register(s.ctxAt(at), s.owner, id.HashContent([]byte("a")),
			strings.Repeat("t", MaxDocumentTypeLen+1), "")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		_, err = s.service.Register(s.ctxAt(at), s.owner, id.HashContent([]byte("b")),
			"NDA", strings.Repeat("m", MaxMetadataLen+1))
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("same triple within one logical second is already_exists", func() {
		contentHash := id.HashContent([]byte("replayed"))
		_, err := s.service.Register(s.ctxAt(at), s.owner, contentHash, "NDA", "")
		s.Require().NoError(err)

		_, err = s.service.Register(s.ctxAt(at), s.owner, contentHash, "NDA", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyExists))
	})

	s.Run("same content a second later is a new document", func() {
		contentHash := id.HashContent([]byte("re-registered"))
		first, err := s.service.Register(s.ctxAt(at), s.owner, contentHash, "NDA", "")
		s.Require().NoError(err)
		second, err := s.service.Register(s.ctxAt(at.Add(time.Second)), s.owner, contentHash, "NDA", "")
		s.Require().NoError(err)
		s.NotEqual(first, second)
	})

	s.Run("emits a registration event", func() {
		before := len(s.recorder.Events())
		docID := s.register(s.ctxAt(at.Add(2*time.Second)), "evented body")

		recorded := s.recorder.Events()
		s.Require().Len(recorded, before+1)
		last := recorded[len(recorded)-1]
		s.Equal(events.TypeDocumentRegistered, last.Type)
		s.Equal(docID.String(), last.DocumentID)
		s.Equal(s.owner.String(), last.Owner)
	})
}

// TestGet verifies ownership-gated visibility on fetch.
func (s *RegistryServiceSuite) TestGet() {
	ctx := s.ctxAt(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))
	docID := s.register(ctx, "confidential body")

	s.Run("owner sees the full record", func() {
		view, err := s.service.Get(ctx, s.owner, docID)
		s.Require().NoError(err)
		s.Equal(id.HashContent([]byte("confidential body")), view.ContentHash)
		s.Equal("signed copy", view.Metadata)
		s.Equal(s.owner, view.Owner)
	})

	s.Run("non-owner sees redacted hash and metadata", func() {
		view, err := s.service.Get(ctx, s.stranger, docID)
		s.Require().NoError(err)
		s.True(view.ContentHash.IsZero())
		s.Empty(view.Metadata)
		// existence, owner, type, and timestamp stay public
		s.Equal(s.owner, view.Owner)
		s.Equal("NDA", view.DocumentType)
		s.False(view.RegisteredAt.IsZero())
	})

	s.Run("unknown id is not_found", func() {
		var unknown id.DocumentID
		unknown[0] = 0xaa
		_, err := s.service.Get(ctx, s.owner, unknown)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

// TestVerify covers the hash comparison round trip, including the tampered
// case where a single character changes the candidate hash.
func (s *RegistryServiceSuite) TestVerify() {
	ctx := s.ctxAt(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))
	original := "Hello"
	docID := s.register(ctx, original)

	s.Run("matching content verifies true", func() {
		matched, err := s.service.Verify(ctx, docID, id.HashContent([]byte(original)))
		s.Require().NoError(err)
		s.True(matched)
	})

	s.Run("altered content verifies false, not error", func() {
		matched, err := s.service.Verify(ctx, docID, id.HashContent([]byte("Hello!")))
		s.Require().NoError(err)
		s.False(matched)
	})

	s.Run("any caller may verify, including non-owners", func() {
		matched, err := s.service.Verify(ctx, docID, id.HashContent([]byte(original)))
		s.Require().NoError(err)
		s.True(matched)
	})

	s.Run("zero candidate hash is invalid_input", func() {
		_, err := s.service.Verify(ctx, docID, id.Hash{})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("unknown document is not_found", func() {
		var unknown id.DocumentID
		unknown[0] = 0xbb
		_, err := s.service.Verify(ctx, unknown, id.HashContent([]byte(original)))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("emits the verification event on both outcomes", func() {
		before := len(s.recorder.Events())
		_, err := s.service.Verify(ctx, docID, id.HashContent([]byte(original)))
		s.Require().NoError(err)
		_, err = s.service.Verify(ctx, docID, id.HashContent([]byte("tampered")))
		s.Require().NoError(err)

		recorded := s.recorder.Events()[before:]
		s.Require().Len(recorded, 2)
		s.Equal(events.TypeDocumentVerified, recorded[0].Type)
		s.Require().NotNil(recorded[0].Matched)
		s.True(*recorded[0].Matched)
		s.Require().NotNil(recorded[1].Matched)
		s.False(*recorded[1].Matched)
	})
}

// TestIsHashRegistered verifies global membership checks.
func (s *RegistryServiceSuite) TestIsHashRegistered() {
	ctx := s.ctxAt(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))

	s.Run("zero hash is invalid_input", func() {
		_, err := s.service.IsHashRegistered(ctx, id.Hash{})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("unregistered hash is false", func() {
		ok, err := s.service.IsHashRegistered(ctx, id.HashContent([]byte("never seen")))
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("registered hash is true for any caller", func() {
		s.register(ctx, "well known content")
		ok, err := s.service.IsHashRegistered(ctx, id.HashContent([]byte("well known content")))
		s.Require().NoError(err)
		s.True(ok)
	})
}

// TestListByOwner verifies per-owner listing through the service.
func (s *RegistryServiceSuite) TestListByOwner() {
	ctx := s.ctxAt(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))

	s.Run("empty for an owner with no documents", func() {
		ids, err := s.service.ListByOwner(ctx, s.stranger)
		s.Require().NoError(err)
		s.Empty(ids)
	})

	s.Run("returns ids in registration order", func() {
		first := s.register(ctx, "list one")
		second := s.register(s.ctxAt(time.Date(2026, 5, 1, 12, 0, 1, 0, time.UTC)), "list two")

		ids, err := s.service.ListByOwner(ctx, s.owner)
		s.Require().NoError(err)
		s.Equal([]id.DocumentID{first, second}, ids)
	})
}
