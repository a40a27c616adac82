package oracle

import (
	"context"
	"log/slog"
	"sync"

	id "docledger/pkg/domain"
	dErrors "docledger/pkg/domain-errors"
)

// RequesterCallback is implemented by requester-side automation that wants
// the oracle's answer pushed to it directly. Delivery is best-effort.
type RequesterCallback interface {
	OnGenerationResponse(ctx context.Context, oracleID id.OracleRequestID, responseText string) error
}

// MockGateway is the reference gateway used in tests and local runs. It
// assigns fresh correlation ids and lets callers trigger the response leg
// deterministically via SimulateResponse.
type MockGateway struct {
	address  id.Address
	receiver ResponseReceiver
	logger   *slog.Logger

	mu        sync.Mutex
	pending   map[id.OracleRequestID]SubmitParams
	callbacks map[id.OracleRequestID]RequesterCallback
}

func NewMockGateway(address id.Address, logger *slog.Logger) *MockGateway {
	return &MockGateway{
		address:   address,
		logger:    logger,
		pending:   make(map[id.OracleRequestID]SubmitParams),
		callbacks: make(map[id.OracleRequestID]RequesterCallback),
	}
}

// Address is the identity this gateway delivers responses under.
func (g *MockGateway) Address() id.Address { return g.address }

// SetReceiver wires the coordinator callback. Separate from the constructor
// because the gateway and coordinator reference each other.
func (g *MockGateway) SetReceiver(receiver ResponseReceiver) {
	g.receiver = receiver
}

// RegisterCallback attaches a requester-side callback to a pending request.
func (g *MockGateway) RegisterCallback(oracleID id.OracleRequestID, cb RequesterCallback) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.callbacks[oracleID] = cb
}

func (g *MockGateway) SubmitRequest(_ context.Context, params SubmitParams) (id.OracleRequestID, error) {
	oracleID := id.NewOracleRequestID()
	g.mu.Lock()
	g.pending[oracleID] = params
	g.mu.Unlock()
	return oracleID, nil
}

// PendingPrompt returns the submitted prompt for a correlation id; used by
// tests to assert the outbound leg.
func (g *MockGateway) PendingPrompt(oracleID id.OracleRequestID) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	params, ok := g.pending[oracleID]
	return params.Prompt, ok
}

// SimulateResponse performs the inbound leg: it delivers responseText to the
// coordinator under the gateway identity, then makes a best-effort forward to
// the requester callback if one is registered. A failing forward is logged
// and discarded; it never unwinds the delivery that already happened.
func (g *MockGateway) SimulateResponse(ctx context.Context, oracleID id.OracleRequestID, responseText string) error {
	if g.receiver == nil {
		return dErrors.New(dErrors.CodeInternal, "gateway has no receiver wired")
	}

	g.mu.Lock()
	_, known := g.pending[oracleID]
	cb := g.callbacks[oracleID]
	g.mu.Unlock()
	if !known {
		return dErrors.New(dErrors.CodeUnknownCorrelation, "no pending request for oracle id")
	}

	if err := g.receiver.ReceiveResponse(ctx, g.address, oracleID, responseText); err != nil {
		return err
	}

	if cb != nil {
		if err := cb.OnGenerationResponse(ctx, oracleID, responseText); err != nil {
			g.logger.WarnContext(ctx, "requester callback failed, response already delivered",
				"oracle_request_id", oracleID.String(),
				"error", err,
			)
		}
	}
	return nil
}
