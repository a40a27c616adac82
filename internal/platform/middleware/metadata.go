package middleware

import (
	"net"
	"net/http"

	"github.com/mssola/useragent"

	"docledger/pkg/requestcontext"
)

// ClientMetadata captures the client IP and a normalized User-Agent so event
// emission and request logs can attribute calls without re-parsing headers.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		uaName := ""
		if raw := r.Header.Get("User-Agent"); raw != "" {
			ua := useragent.New(raw)
			name, version := ua.Browser()
			if name != "" {
				uaName = name
				if version != "" {
					uaName += "/" + version
				}
			} else {
				uaName = raw
			}
		}

		ctx := requestcontext.WithClientMetadata(r.Context(), ip, uaName)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
