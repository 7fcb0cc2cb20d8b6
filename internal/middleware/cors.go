// Package middleware provides HTTP middleware for the waitlist service.
package middleware

import (
	"net/http"
	"strings"
)

// CORSConfig holds CORS configuration options.
type CORSConfig struct {
	// AllowedOrigins is the explicit allow-list. Matching is exact,
	// case included; there are no wildcards.
	AllowedOrigins []string

	// AllowedMethods specifies the allowed HTTP methods.
	// Default: POST, OPTIONS
	AllowedMethods []string

	// AllowedHeaders specifies the allowed request headers.
	// Default: Content-Type
	AllowedHeaders []string
}

// DefaultCORSConfig returns the signup endpoint's CORS policy with an empty allow-list.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}
}

// CORS returns a middleware that echoes allowed origins and answers
// preflight requests.
//
// An allowed Origin gets Access-Control-Allow-Origin (the origin itself),
// Allow-Methods, Allow-Headers and Vary: Origin on every response. Any other
// request gets no CORS headers at all. Every OPTIONS request is answered
// here with 204 and an empty body, whatever the origin.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	methodsStr := strings.Join(cfg.AllowedMethods, ", ")
	headersStr := strings.Join(cfg.AllowedHeaders, ", ")

	originSet := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			originSet[origin] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if isOriginAllowed(origin, originSet) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", methodsStr)
				h.Set("Access-Control-Allow-Headers", headersStr)
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isOriginAllowed checks origin against the trimmed allow-list.
func isOriginAllowed(origin string, originSet map[string]struct{}) bool {
	if origin == "" || len(originSet) == 0 {
		return false
	}
	_, ok := originSet[origin]
	return ok
}
