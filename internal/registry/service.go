package registry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"docledger/internal/events"
	"docledger/internal/registry/metrics"
	id "docledger/pkg/domain"
	dErrors "docledger/pkg/domain-errors"
	"docledger/pkg/platform/sentinel"
	"docledger/pkg/requestcontext"
)

// Service owns document identity derivation, ownership-gated visibility, and
// hash comparison. It keeps orchestration out of handlers and the store thin.
type Service struct {
	store   Store
	cache   *HashCache
	emitter events.Emitter
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func NewService(store Store, cache *HashCache, emitter events.Emitter, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		cache:   cache,
		emitter: emitter,
		logger:  logger,
		metrics: m,
		tracer:  otel.Tracer("docledger/registry"),
	}
}

// Register creates the document record for the calling owner. The id is
// derived from (contentHash, owner, logical time); replaying the exact same
// triple within one logical second is rejected as already existing, which is
// documented behavior rather than a collision case.
func (s *Service) Register(ctx context.Context, owner id.Address, contentHash id.Hash, documentType, metadata string) (id.DocumentID, error) {
	ctx, span := s.tracer.Start(ctx, "registry.Register")
	defer span.End()
	start := time.Now()

	if owner.IsZero() {
		return id.DocumentID{}, dErrors.New(dErrors.CodeUnauthorized, "caller identity is required")
	}
	if err := validateRegistration(contentHash, documentType, metadata); err != nil {
		return id.DocumentID{}, err
	}

	registeredAt := requestcontext.Now(ctx)
	doc := Document{
		ID:           id.DeriveDocumentID(contentHash, owner, registeredAt),
		Owner:        owner,
		ContentHash:  contentHash,
		RegisteredAt: registeredAt,
		DocumentType: documentType,
		Metadata:     metadata,
	}

	if err := s.store.Create(ctx, doc); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return id.DocumentID{}, dErrors.New(dErrors.CodeAlreadyExists, "document already exists")
		}
		return id.DocumentID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store document")
	}

	s.cache.Add(ctx, contentHash)
	s.emitter.Emit(ctx, events.DocumentRegistered(owner, doc.ID, contentHash, documentType))
	s.metrics.IncrementRegistered(documentType)
	s.metrics.ObserveRegisterLatency(time.Since(start))

	s.logger.InfoContext(ctx, "document registered",
		"request_id", requestcontext.RequestID(ctx),
		"document_id", doc.ID.String(),
		"owner", owner.String(),
		"document_type", documentType,
	)
	return doc.ID, nil
}

// Get returns the document with ownership-gated visibility: non-owners see
// the owner, type, and timestamp but a zeroed content hash and empty
// metadata.
func (s *Service) Get(ctx context.Context, caller id.Address, docID id.DocumentID) (View, error) {
	doc, err := s.store.Find(ctx, docID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return View{}, dErrors.New(dErrors.CodeNotFound, "document not found")
		}
		return View{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load document")
	}
	return doc.ViewFor(caller), nil
}

// Verify compares a candidate hash against the stored fingerprint. Any caller
// may verify; a mismatch is a normal outcome and still emits the
// verification event.
func (s *Service) Verify(ctx context.Context, docID id.DocumentID, candidate id.Hash) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "registry.Verify")
	defer span.End()

	if candidate.IsZero() {
		return false, dErrors.New(dErrors.CodeInvalidInput, "candidate hash cannot be zero")
	}

	doc, err := s.store.Find(ctx, docID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, dErrors.New(dErrors.CodeNotFound, "document not found")
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load document")
	}

	matched := doc.ContentHash == candidate
	s.emitter.Emit(ctx, events.DocumentVerified(docID, candidate, matched))
	s.metrics.IncrementVerification(matched)
	return matched, nil
}

// IsHashRegistered reports whether any owner ever registered the hash,
// independent of ownership or derived id.
func (s *Service) IsHashRegistered(ctx context.Context, contentHash id.Hash) (bool, error) {
	if contentHash.IsZero() {
		return false, dErrors.New(dErrors.CodeInvalidInput, "content hash cannot be zero")
	}
	if s.cache.Contains(ctx, contentHash) {
		return true, nil
	}
	registered, err := s.store.HashRegistered(ctx, contentHash)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check hash membership")
	}
	return registered, nil
}

// ListByOwner returns the caller's document ids in insertion order.
func (s *Service) ListByOwner(ctx context.Context, owner id.Address) ([]id.DocumentID, error) {
	ids, err := s.store.ListByOwner(ctx, owner)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list documents")
	}
	return ids, nil
}
