package httpserver

import (
	"net/http"
	"time"
)

// New builds the API server. Every endpoint is a small JSON exchange (the
// largest request body is a fulfillment carrying document content), so the
// timeouts are tight: nothing here streams or long-polls.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
