package testutil

import (
	"context"
	"net/http"
	"time"

	id "docledger/pkg/domain"
	"docledger/pkg/requestcontext"
)

// WithCaller adds a caller address to the request context, simulating what
// the auth middleware does for authenticated requests. Invalid addresses are
// silently ignored.
func WithCaller(req *http.Request, address string) *http.Request {
	caller, err := id.ParseAddress(address)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithCaller(req.Context(), caller))
}

// WithTime pins the request-scoped logical time, so derived document ids are
// reproducible in tests.
func WithTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// Ctx builds a service-level context with a caller and fixed time.
func Ctx(address string, t time.Time) context.Context {
	ctx := context.Background()
	if caller, err := id.ParseAddress(address); err == nil {
		ctx = requestcontext.WithCaller(ctx, caller)
	}
	return requestcontext.WithTime(ctx, t)
}
