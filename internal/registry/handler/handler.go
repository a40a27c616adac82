package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"docledger/internal/registry"
	"docledger/internal/transport/http/shared"
	id "docledger/pkg/domain"
	dErrors "docledger/pkg/domain-errors"
	"docledger/pkg/requestcontext"
)

// Service defines the registry operations the handler depends on.
type Service interface {
	Register(ctx context.Context, owner id.Address, contentHash id.Hash, documentType, metadata string) (id.DocumentID, error)
	Get(ctx context.Context, caller id.Address, docID id.DocumentID) (registry.View, error)
	Verify(ctx context.Context, docID id.DocumentID, candidate id.Hash) (bool, error)
	IsHashRegistered(ctx context.Context, contentHash id.Hash) (bool, error)
	ListByOwner(ctx context.Context, owner id.Address) ([]id.DocumentID, error)
}

// Handler exposes the document registry over HTTP.
type Handler struct {
	logger   *slog.Logger
	registry Service
}

func New(registry Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, registry: registry}
}

// Register mounts the registry routes. Caller authentication happens in the
// router middleware; handlers read the caller address from context.
func (h *Handler) Register(r chi.Router) {
	r.Post("/registry/documents", h.handleRegister)
	r.Get("/registry/documents", h.handleList)
	r.Get("/registry/documents/{documentID}", h.handleGet)
	r.Post("/registry/documents/{documentID}/verify", h.handleVerify)
	r.Get("/registry/hashes/{contentHash}", h.handleHashRegistered)
	r.Get("/registry/derive", h.handleDerive)
}

type registerRequest struct {
	ContentHash  string `json:"content_hash"`
	DocumentType string `json:"document_type"`
	Metadata     string `json:"metadata"`
}

type registerResponse struct {
	DocumentID string `json:"document_id"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	contentHash, err := id.ParseHash(req.ContentHash)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	docID, err := h.registry.Register(ctx, requestcontext.Caller(ctx), contentHash, req.DocumentType, req.Metadata)
	if err != nil {
		h.logger.WarnContext(ctx, "register document failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, registerResponse{DocumentID: docID.String()})
}

type documentResponse struct {
	DocumentID   string `json:"document_id"`
	Owner        string `json:"owner"`
	ContentHash  string `json:"content_hash,omitempty"`
	RegisteredAt string `json:"registered_at"`
	DocumentType string `json:"document_type"`
	Metadata     string `json:"metadata,omitempty"`
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docID, err := id.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	view, err := h.registry.Get(ctx, requestcontext.Caller(ctx), docID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	resp := documentResponse{
		DocumentID:   view.ID.String(),
		Owner:        view.Owner.String(),
		RegisteredAt: view.RegisteredAt.UTC().Format(time.RFC3339),
		DocumentType: view.DocumentType,
		Metadata:     view.Metadata,
	}
	if !view.ContentHash.IsZero() {
		resp.ContentHash = view.ContentHash.String()
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

type verifyRequest struct {
	ContentHash string `json:"content_hash"`
}

type verifyResponse struct {
	DocumentID string `json:"document_id"`
	Matched    bool   `json:"matched"`
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docID, err := id.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	candidate, err := id.ParseHash(req.ContentHash)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	matched, err := h.registry.Verify(ctx, docID, candidate)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, verifyResponse{DocumentID: docID.String(), Matched: matched})
}

type listResponse struct {
	DocumentIDs []string `json:"document_ids"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ids, err := h.registry.ListByOwner(ctx, requestcontext.Caller(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	resp := listResponse{DocumentIDs: make([]string, 0, len(ids))}
	for _, docID := range ids {
		resp.DocumentIDs = append(resp.DocumentIDs, docID.String())
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

type hashRegisteredResponse struct {
	ContentHash string `json:"content_hash"`
	Registered  bool   `json:"registered"`
}

func (h *Handler) handleHashRegistered(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contentHash, err := id.ParseHash(chi.URLParam(r, "contentHash"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	registered, err := h.registry.IsHashRegistered(ctx, contentHash)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, hashRegisteredResponse{ContentHash: contentHash.String(), Registered: registered})
}

type deriveResponse struct {
	DocumentID string `json:"document_id"`
}

// handleDerive exposes the identity deriver so external callers can
// pre-compute a document id for auditing. Pure; no state is touched.
func (h *Handler) handleDerive(w http.ResponseWriter, r *http.Request) {
	contentHash, err := id.ParseHash(r.URL.Query().Get("content_hash"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	owner, err := id.ParseAddress(r.URL.Query().Get("owner"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	unix, err := strconv.ParseInt(r.URL.Query().Get("timestamp"), 10, 64)
	if err != nil || unix < 0 {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "timestamp must be a non-negative unix second"))
		return
	}

	docID := id.DeriveDocumentID(contentHash, owner, time.Unix(unix, 0).UTC())
	shared.WriteJSON(w, http.StatusOK, deriveResponse{DocumentID: docID.String()})
}
