package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsResponse(t *testing.T, origins []string, requestOrigin string) *httptest.ResponseRecorder {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	if requestOrigin != "" {
		req.Header.Set("Origin", requestOrigin)
	}
	CORS(origins)(next).ServeHTTP(rec, req)
	return rec
}

func TestCORSWildcard(t *testing.T) {
	rec := corsResponse(t, []string{"*"}, "https://anywhere.example")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard, got %q", got)
	}

	rec = corsResponse(t, nil, "https://anywhere.example")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("empty configuration should stay open, got %q", got)
	}
}

func TestCORSAllowlistHonoredForMultipleOrigins(t *testing.T) {
	origins := []string{"https://a.example", "https://b.example"}

	for _, allowed := range origins {
		rec := corsResponse(t, origins, allowed)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != allowed {
			t.Fatalf("expected %q to be allowed, got %q", allowed, got)
		}
	}

	rec := corsResponse(t, origins, "https://evil.example")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("disallowed origin must get no allow header, got %q", got)
	}

	rec = corsResponse(t, origins, "")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("request without Origin must get no allow header, got %q", got)
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the next handler")
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/patients", nil)
	req.Header.Set("Origin", "https://a.example")
	CORS([]string{"https://a.example"})(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
}
