package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sreekrishna-ayurveda/clinic-api/pkg/auth"
	"github.com/sreekrishna-ayurveda/clinic-api/pkg/clinic"
	"github.com/sreekrishna-ayurveda/clinic-api/pkg/middleware"
)

// Options carries everything the router needs; the gate and handler are
// constructed once at startup and injected.
type Options struct {
	Gate           *auth.Gate
	Records        *clinic.HTTPHandler
	AllowedOrigins []string
	MaxRequestBody int64
}

// exempt routes never pass the credential gate; the validator and store are
// unreachable from them.
var exemptPaths = []string{"/health", "/debug/echo"}

// NewRouter assembles the full HTTP surface: diagnostics outside the gate,
// every record route behind it.
func NewRouter(opts Options) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.Logging)
	router.Use(middleware.Recovery)
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.BodyLimit(opts.MaxRequestBody))
	router.Use(opts.Gate.Middleware(auth.ExemptPaths(exemptPaths...)))

	router.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/debug/echo", handleEcho).Methods(http.MethodGet)

	opts.Records.Register(router)

	return router
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// handleEcho mirrors the request headers back, for debugging what a proxy or
// Actions runtime actually sends.
func handleEcho(w http.ResponseWriter, r *http.Request) {
	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		headers[name] = strings.Join(values, ", ")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"headers": headers})
}
