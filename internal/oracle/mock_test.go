package oracle

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	id "docledger/pkg/domain"
	dErrors "docledger/pkg/domain-errors"
)

// recordingReceiver captures deliveries made under the gateway identity.
type recordingReceiver struct {
	from     id.Address
	oracleID id.OracleRequestID
	text     string
	calls    int
	err      error
}

func (r *recordingReceiver) ReceiveResponse(_ context.Context, from id.Address, oracleID id.OracleRequestID, responseText string) error {
	r.calls++
	r.from = from
	r.oracleID = oracleID
	r.text = responseText
	return r.err
}

// failingCallback always errors, to prove forwards never unwind delivery.
type failingCallback struct {
	calls int
}

func (c *failingCallback) OnGenerationResponse(context.Context, id.OracleRequestID, string) error {
	c.calls++
	return dErrors.New(dErrors.CodeInternal, "callback endpoint down")
}

type MockGatewaySuite struct {
	suite.Suite
	gateway  *MockGateway
	receiver *recordingReceiver
	address  id.Address
	ctx      context.Context
}

func TestMockGatewaySuite(t *testing.T) {
	suite.Run(t, new(MockGatewaySuite))
}

func (s *MockGatewaySuite) SetupTest() {
	var err error
	s.address, err = id.ParseAddress("0x0000000000000000000000000000000000000001")
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.gateway = NewMockGateway(s.address, logger)
	s.receiver = &recordingReceiver{}
	s.gateway.SetReceiver(s.receiver)
	s.ctx = context.Background()
}

func (s *MockGatewaySuite) submit() id.OracleRequestID {
	oracleID, err := s.gateway.SubmitRequest(s.ctx, SubmitParams{
		Provider: "anthropic",
		ModelID:  "claude-3-5-sonnet",
		Prompt:   "Generate a professional NDA legal document.",
	})
	s.Require().NoError(err)
	return oracleID
}

func (s *MockGatewaySuite) TestSubmitRequest() {
	s.Run("assigns fresh correlation ids", func() {
		first := s.submit()
		second := s.submit()
		s.NotEqual(first, second)
		s.False(first.IsZero())
	})

	s.Run("retains the submitted prompt", func() {
		oracleID := s.submit()
		prompt, ok := s.gateway.PendingPrompt(oracleID)
		s.Require().True(ok)
		s.Contains(prompt, "NDA")
	})
}

func (s *MockGatewaySuite) TestSimulateResponse() {
	s.Run("delivers under the gateway identity", func() {
		oracleID := s.submit()
		s.Require().NoError(s.gateway.SimulateResponse(s.ctx, oracleID, "answer"))

		s.Equal(1, s.receiver.calls)
		s.Equal(s.address, s.receiver.from)
		s.Equal(oracleID, s.receiver.oracleID)
		s.Equal("answer", s.receiver.text)
	})

	s.Run("unknown correlation id is rejected before delivery", func() {
		before := s.receiver.calls
		err := s.gateway.SimulateResponse(s.ctx, id.NewOracleRequestID(), "orphan")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnknownCorrelation))
		s.Equal(before, s.receiver.calls, "rejection must happen before delivery")
	})

	s.Run("receiver rejection propagates to the simulator", func() {
		oracleID := s.submit()
		s.receiver.err = dErrors.New(dErrors.CodeAlreadyFulfilled, "request already fulfilled")

		err := s.gateway.SimulateResponse(s.ctx, oracleID, "late")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyFulfilled))
	})

	s.Run("unwired receiver is an internal error", func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		bare := NewMockGateway(s.address, logger)
		err := bare.SimulateResponse(s.ctx, id.NewOracleRequestID(), "text")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *MockGatewaySuite) TestRequesterCallback() {
	s.Run("failing callback never unwinds the delivery", func() {
		oracleID := s.submit()
		cb := &failingCallback{}
		s.gateway.RegisterCallback(oracleID, cb)

		s.Require().NoError(s.gateway.SimulateResponse(s.ctx, oracleID, "answer"))
		s.Equal(1, s.receiver.calls)
		s.Equal(1, cb.calls)
	})

	s.Run("callback is skipped when delivery fails", func() {
		oracleID := s.submit()
		cb := &failingCallback{}
		s.gateway.RegisterCallback(oracleID, cb)
		s.receiver.err = dErrors.New(dErrors.CodeUnauthorized, "caller is not the configured oracle gateway")

		s.Require().Error(s.gateway.SimulateResponse(s.ctx, oracleID, "answer"))
		s.Zero(cb.calls)
	})
}
