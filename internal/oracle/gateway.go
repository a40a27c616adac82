// Package oracle defines the boundary contract between the coordinator and
// the external content-generation oracle. The oracle is untrusted except for
// its identity: only the configured gateway address may deliver responses.
package oracle

import (
	"context"

	id "docledger/pkg/domain"
)

// SubmitParams describes one generation request handed to the gateway.
type SubmitParams struct {
	Provider string
	ModelID  string
	Prompt   string

	// Parameters carries provider-specific generation knobs (temperature,
	// max tokens, ...). Opaque to the coordinator.
	Parameters map[string]string
}

// Gateway is the outbound leg: the coordinator submits a request and receives
// a fresh, previously-unused correlation id. The oracle computes off-process
// and eventually delivers its answer through the inbound leg.
type Gateway interface {
	SubmitRequest(ctx context.Context, params SubmitParams) (id.OracleRequestID, error)
}

// ResponseReceiver is the inbound leg: the contract the coordinator exposes
// for the gateway's callback. The from address must match the configured
// gateway identity or the delivery is rejected.
type ResponseReceiver interface {
	ReceiveResponse(ctx context.Context, from id.Address, oracleID id.OracleRequestID, responseText string) error
}
