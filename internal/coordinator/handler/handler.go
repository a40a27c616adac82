package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"docledger/internal/coordinator"
	"docledger/internal/transport/http/shared"
	id "docledger/pkg/domain"
	dErrors "docledger/pkg/domain-errors"
	"docledger/pkg/requestcontext"
)

// Service defines the coordinator operations the handler depends on.
type Service interface {
	RequestGeneration(ctx context.Context, requester id.Address, documentType, requirements string) (id.RequestID, error)
	ReceiveResponse(ctx context.Context, from id.Address, oracleID id.OracleRequestID, responseText string) error
	Fulfill(ctx context.Context, caller id.Address, reqID id.RequestID, content, metadata string) (id.DocumentID, error)
	GetRequest(ctx context.Context, caller id.Address, reqID id.RequestID) (coordinator.View, error)
}

// Handler exposes the request coordinator over HTTP.
type Handler struct {
	logger      *slog.Logger
	coordinator Service
}

func New(coordinator Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, coordinator: coordinator}
}

// Register mounts the coordinator routes. Caller authentication happens in
// the router middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/generation/requests", h.handleRequestGeneration)
	r.Get("/generation/requests/{requestID}", h.handleGetRequest)
	r.Post("/generation/requests/{requestID}/fulfill", h.handleFulfill)
	r.Post("/oracle/responses", h.handleOracleResponse)
}

type requestGenerationRequest struct {
	DocumentType string `json:"document_type"`
	Requirements string `json:"requirements"`
}

type requestGenerationResponse struct {
	RequestID uint64 `json:"request_id"`
}

func (h *Handler) handleRequestGeneration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req requestGenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	reqID, err := h.coordinator.RequestGeneration(ctx, requestcontext.Caller(ctx), req.DocumentType, req.Requirements)
	if err != nil {
		h.logger.WarnContext(ctx, "request generation failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, requestGenerationResponse{RequestID: uint64(reqID)})
}

type requestView struct {
	RequestID       uint64 `json:"request_id"`
	Requester       string `json:"requester"`
	DocumentType    string `json:"document_type"`
	Requirements    string `json:"requirements,omitempty"`
	CreatedAt       string `json:"created_at"`
	OracleRequestID string `json:"oracle_request_id"`
	DocumentID      string `json:"document_id,omitempty"`
	Fulfilled       bool   `json:"fulfilled"`
}

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reqID, err := parseRequestID(chi.URLParam(r, "requestID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	view, err := h.coordinator.GetRequest(ctx, requestcontext.Caller(ctx), reqID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	resp := requestView{
		RequestID:       uint64(view.ID),
		Requester:       view.Requester.String(),
		DocumentType:    view.DocumentType,
		Requirements:    view.Requirements,
		CreatedAt:       view.CreatedAt.UTC().Format(time.RFC3339),
		OracleRequestID: view.OracleRequestID.String(),
		Fulfilled:       view.Fulfilled,
	}
	if !view.DocumentID.IsZero() {
		resp.DocumentID = view.DocumentID.String()
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

type fulfillRequest struct {
	Content  string `json:"content"`
	Metadata string `json:"metadata"`
}

type fulfillResponse struct {
	RequestID  uint64 `json:"request_id"`
	DocumentID string `json:"document_id"`
}

func (h *Handler) handleFulfill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reqID, err := parseRequestID(chi.URLParam(r, "requestID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req fulfillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	docID, err := h.coordinator.Fulfill(ctx, requestcontext.Caller(ctx), reqID, req.Content, req.Metadata)
	if err != nil {
		h.logger.WarnContext(ctx, "fulfill request failed",
			"request_id", requestcontext.RequestID(ctx),
			"local_request_id", uint64(reqID),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, fulfillResponse{RequestID: uint64(reqID), DocumentID: docID.String()})
}

type oracleResponseRequest struct {
	OracleRequestID string `json:"oracle_request_id"`
	ResponseText    string `json:"response_text"`
}

// handleOracleResponse is the gateway's inbound delivery endpoint. The
// service enforces that the authenticated caller is the configured gateway
// identity; everyone else gets an unauthorized rejection.
func (h *Handler) handleOracleResponse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req oracleResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	oracleID, err := id.ParseOracleRequestID(req.OracleRequestID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.coordinator.ReceiveResponse(ctx, requestcontext.Caller(ctx), oracleID, req.ResponseText); err != nil {
		h.logger.WarnContext(ctx, "oracle response rejected",
			"request_id", requestcontext.RequestID(ctx),
			"oracle_request_id", oracleID.String(),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseRequestID(raw string) (id.RequestID, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "request id must be a positive integer")
	}
	return id.RequestID(n), nil
}
