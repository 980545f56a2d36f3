package auth

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sreekrishna-ayurveda/clinic-api/pkg/common/logger"
)

var (
	// ErrNotConfigured indicates the server has no shared secret set. The
	// gate fails closed in that state; it never means "allow all".
	ErrNotConfigured = errors.New("server misconfiguration: API key not set")

	// ErrInvalidKey indicates the request carried no credential or a
	// credential that does not match the configured secret.
	ErrInvalidKey = errors.New("invalid or missing API key")
)

// Gate authenticates requests against a single shared secret. Every request
// is checked independently; there are no sessions, expiry, or rotation.
type Gate struct {
	secret string
}

func NewGate(secret string) *Gate {
	return &Gate{secret: strings.TrimSpace(secret)}
}

// Authenticate extracts a candidate secret from the headers and compares it
// to the configured one. X-API-Key takes precedence over a bearer token.
func (g *Gate) Authenticate(h http.Header) error {
	if g.secret == "" {
		return ErrNotConfigured
	}

	candidate := candidateFromHeaders(h)
	if candidate == "" {
		return ErrInvalidKey
	}
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(g.secret)) != 1 {
		return ErrInvalidKey
	}
	return nil
}

func candidateFromHeaders(h http.Header) string {
	if key := strings.TrimSpace(h.Get("X-API-Key")); key != "" {
		return key
	}
	authz := h.Get("Authorization")
	if len(authz) > 7 && strings.EqualFold(authz[:7], "Bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return ""
}

// Skipper reports whether a request bypasses the gate.
type Skipper func(r *http.Request) bool

// ExemptPaths builds a Skipper that lets the named paths through unchecked.
func ExemptPaths(paths ...string) Skipper {
	exempt := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		exempt[p] = struct{}{}
	}
	return func(r *http.Request) bool {
		_, ok := exempt[r.URL.Path]
		return ok
	}
}

// Middleware enforces the gate on every route except those the skipper
// exempts. Failures are written as JSON and never reach the next handler.
func (g *Gate) Middleware(skip Skipper) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip != nil && skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			if err := g.Authenticate(r.Header); err != nil {
				status := http.StatusUnauthorized
				if errors.Is(err, ErrNotConfigured) {
					status = http.StatusInternalServerError
					logger.Log.Error("rejecting request: no API key configured")
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				json.NewEncoder(w).Encode(map[string]string{"detail": err.Error()})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
