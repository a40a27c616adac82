package coordinator

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"docledger/internal/coordinator/metrics"
	"docledger/internal/events"
	"docledger/internal/oracle"
	id "docledger/pkg/domain"
	dErrors "docledger/pkg/domain-errors"
	"docledger/pkg/platform/sentinel"
	"docledger/pkg/platform/tx"
	"docledger/pkg/requestcontext"
)

// Registrar is the slice of the document registry the coordinator needs for
// the final fulfillment step. Satisfied by registry.Service.
type Registrar interface {
	Register(ctx context.Context, owner id.Address, contentHash id.Hash, documentType, metadata string) (id.DocumentID, error)
}

// Config identifies the trusted gateway and the generation backend.
type Config struct {
	// GatewayAddress is the only identity allowed to deliver responses.
	GatewayAddress id.Address
	Provider       string
	ModelID        string
}

// Service owns the lifecycle of a generation request across its two
// asynchronous legs: the outbound submission to the oracle gateway and the
// inbound response, followed by the locally-authorized fulfillment that
// writes into the registry.
type Service struct {
	cfg       Config
	store     Store
	gateway   oracle.Gateway
	registrar Registrar
	txr       tx.Runner
	emitter   events.Emitter
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer

	// fulfillMu serializes fulfillments so the registry write and the
	// terminal flag land as one step.
	fulfillMu sync.Mutex
}

func NewService(cfg Config, store Store, gateway oracle.Gateway, registrar Registrar, txr tx.Runner, emitter events.Emitter, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		cfg:       cfg,
		store:     store,
		gateway:   gateway,
		registrar: registrar,
		txr:       txr,
		emitter:   emitter,
		logger:    logger,
		metrics:   m,
		tracer:    otel.Tracer("docledger/coordinator"),
	}
}

// RequestGeneration opens a new workflow: it builds the prompt, submits it to
// the gateway, and records the request keyed by a freshly allocated local id
// together with the reverse correlation entry for the oracle's id.
func (s *Service) RequestGeneration(ctx context.Context, requester id.Address, documentType, requirements string) (id.RequestID, error) {
	ctx, span := s.tracer.Start(ctx, "coordinator.RequestGeneration")
	defer span.End()

	if requester.IsZero() {
		return 0, dErrors.New(dErrors.CodeUnauthorized, "caller identity is required")
	}
	if err := validateGeneration(documentType, requirements); err != nil {
		return 0, err
	}

	oracleID, err := s.gateway.SubmitRequest(ctx, oracle.SubmitParams{
		Provider: s.cfg.Provider,
		ModelID:  s.cfg.ModelID,
		Prompt:   BuildPrompt(documentType, requirements),
	})
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "oracle submission failed")
	}

	reqID, err := s.store.Create(ctx, DocumentRequest{
		Requester:       requester,
		DocumentType:    documentType,
		Requirements:    requirements,
		CreatedAt:       requestcontext.Now(ctx),
		OracleRequestID: oracleID,
	})
	if err != nil {
		// A conflict here means the gateway reused a correlation id,
		// which breaks its freshness contract.
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store request")
	}

	s.emitter.Emit(ctx, events.GenerationRequested(reqID, requester, documentType, oracleID))
	s.metrics.IncrementOpened(documentType)

	s.logger.InfoContext(ctx, "generation requested",
		"request_id", requestcontext.RequestID(ctx),
		"local_request_id", uint64(reqID),
		"oracle_request_id", oracleID.String(),
		"document_type", documentType,
	)
	return reqID, nil
}

// ReceiveResponse is the inbound leg of the oracle exchange. Only the
// configured gateway identity may deliver; the answer is surfaced through the
// ResponseReceived event and nothing on the request mutates — fulfillment is
// a separate, requester-authorized step.
//
// Implements oracle.ResponseReceiver.
func (s *Service) ReceiveResponse(ctx context.Context, from id.Address, oracleID id.OracleRequestID, responseText string) error {
	ctx, span := s.tracer.Start(ctx, "coordinator.ReceiveResponse")
	defer span.End()

	if from != s.cfg.GatewayAddress || from.IsZero() {
		s.metrics.IncrementResponse(false)
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not the configured oracle gateway")
	}

	req, err := s.store.FindByOracleID(ctx, oracleID)
	if err != nil {
		s.metrics.IncrementResponse(false)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeUnknownCorrelation, "no request matches the oracle id")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve oracle correlation")
	}
	if req.Fulfilled {
		s.metrics.IncrementResponse(false)
		return dErrors.New(dErrors.CodeAlreadyFulfilled, "request already fulfilled")
	}

	s.emitter.Emit(ctx, events.ResponseReceived(req.ID, oracleID, responseText))
	s.metrics.IncrementResponse(true)

	s.logger.InfoContext(ctx, "oracle response received",
		"request_id", requestcontext.RequestID(ctx),
		"local_request_id", uint64(req.ID),
		"oracle_request_id", oracleID.String(),
	)
	return nil
}

// Fulfill is the terminal step: the original requester converts generated
// content into a registered document. The request flips to fulfilled exactly
// once; every later attempt fails, regardless of caller.
func (s *Service) Fulfill(ctx context.Context, caller id.Address, reqID id.RequestID, content, metadata string) (id.DocumentID, error) {
	ctx, span := s.tracer.Start(ctx, "coordinator.Fulfill")
	defer span.End()

	if err := validateFulfillment(content, metadata); err != nil {
		return id.DocumentID{}, err
	}

	// A rejected fulfillment must leave no trace: the loser of a race must
	// not have registered a document. Fulfillments are serialized here, and
	// the durable path additionally pairs both writes in one transaction.
	s.fulfillMu.Lock()
	defer s.fulfillMu.Unlock()

	req, err := s.store.Find(ctx, reqID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return id.DocumentID{}, dErrors.New(dErrors.CodeNotFound, "request not found")
		}
		return id.DocumentID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load request")
	}
	if req.Fulfilled {
		return id.DocumentID{}, dErrors.New(dErrors.CodeAlreadyFulfilled, "request already fulfilled")
	}
	if caller != req.Requester {
		return id.DocumentID{}, dErrors.New(dErrors.CodeUnauthorized, "only the original requester may fulfill")
	}

	contentHash := id.HashContent([]byte(content))
	var docID id.DocumentID
	err = s.txr.Run(ctx, func(ctx context.Context) error {
		var regErr error
		docID, regErr = s.registrar.Register(ctx, caller, contentHash, req.DocumentType, metadata)
		if regErr != nil {
			return regErr
		}
		if err := s.store.MarkFulfilled(ctx, reqID, docID); err != nil {
			if errors.Is(err, sentinel.ErrInvalidState) {
				return dErrors.New(dErrors.CodeAlreadyFulfilled, "request already fulfilled")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark request fulfilled")
		}
		return nil
	})
	if err != nil {
		return id.DocumentID{}, err
	}

	s.emitter.Emit(ctx, events.GenerationFulfilled(reqID, caller, docID))
	s.metrics.IncrementFulfilled(requestcontext.Now(ctx).Sub(req.CreatedAt))

	s.logger.InfoContext(ctx, "generation fulfilled",
		"request_id", requestcontext.RequestID(ctx),
		"local_request_id", uint64(reqID),
		"document_id", docID.String(),
	)
	return docID, nil
}

// GetRequest returns the request with the same ownership-gated visibility
// policy the registry applies to documents: non-requesters see every field
// except the requirements.
func (s *Service) GetRequest(ctx context.Context, caller id.Address, reqID id.RequestID) (View, error) {
	req, err := s.store.Find(ctx, reqID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return View{}, dErrors.New(dErrors.CodeNotFound, "request not found")
		}
		return View{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load request")
	}
	return req.ViewFor(caller), nil
}
