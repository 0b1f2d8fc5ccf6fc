// Package middleware provides HTTP middleware guarding the backend API.
package middleware

import (
	"log"
	"net/http"
)

// HeaderFromExtension is the header the browser extension sets on every
// request it makes to the backend.
const HeaderFromExtension = "X-From-Extension"

// RequireExtension rejects any request that does not carry
// "X-From-Extension: true" with 403 before the handler runs. The backend
// serves a single browser extension and nothing else; the header keeps
// stray local traffic out without a full authentication scheme.
func RequireExtension(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderFromExtension) != "true" {
			log.Printf("[auth] request to %s missing %s header", r.URL.Path, HeaderFromExtension)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"Forbidden"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
