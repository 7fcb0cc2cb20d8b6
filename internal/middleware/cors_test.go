package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		allowedOrigins []string
		requestOrigin  string
		method         string
		wantStatus     int
		wantHeader     string
		wantNext       bool
	}{
		{
			name:           "no origins configured omits headers",
			allowedOrigins: []string{},
			requestOrigin:  "https://example.com",
			method:         http.MethodPost,
			wantStatus:     http.StatusCreated,
			wantHeader:     "",
			wantNext:       true,
		},
		{
			name:           "allowed origin gets header",
			allowedOrigins: []string{"https://example.com"},
			requestOrigin:  "https://example.com",
			method:         http.MethodPost,
			wantStatus:     http.StatusCreated,
			wantHeader:     "https://example.com",
			wantNext:       true,
		},
		{
			name:           "disallowed origin passes through without headers",
			allowedOrigins: []string{"https://example.com"},
			requestOrigin:  "https://evil.com",
			method:         http.MethodPost,
			wantStatus:     http.StatusCreated,
			wantHeader:     "",
			wantNext:       true,
		},
		{
			name:           "preflight from allowed origin",
			allowedOrigins: []string{"https://example.com"},
			requestOrigin:  "https://example.com",
			method:         http.MethodOptions,
			wantStatus:     http.StatusNoContent,
			wantHeader:     "https://example.com",
		},
		{
			name:           "preflight from disallowed origin is 204 without headers",
			allowedOrigins: []string{"https://example.com"},
			requestOrigin:  "https://evil.com",
			method:         http.MethodOptions,
			wantStatus:     http.StatusNoContent,
			wantHeader:     "",
		},
		{
			name:           "preflight without origin",
			allowedOrigins: []string{"https://example.com"},
			requestOrigin:  "",
			method:         http.MethodOptions,
			wantStatus:     http.StatusNoContent,
			wantHeader:     "",
		},
		{
			name:           "origin differing only in case is not a match",
			allowedOrigins: []string{"HTTPS://EXAMPLE.COM"},
			requestOrigin:  "https://example.com",
			method:         http.MethodPost,
			wantStatus:     http.StatusCreated,
			wantHeader:     "",
			wantNext:       true,
		},
		{
			name:           "allow-list entries are trimmed",
			allowedOrigins: []string{"  https://example.com "},
			requestOrigin:  "https://example.com",
			method:         http.MethodPost,
			wantStatus:     http.StatusCreated,
			wantHeader:     "https://example.com",
			wantNext:       true,
		},
		{
			name:           "subdomain is not a match",
			allowedOrigins: []string{"https://example.com"},
			requestOrigin:  "https://app.example.com",
			method:         http.MethodPost,
			wantStatus:     http.StatusCreated,
			wantHeader:     "",
			wantNext:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCORSConfig()
			cfg.AllowedOrigins = tt.allowedOrigins

			called := false
			handler := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusCreated)
			}))

			req := httptest.NewRequest(tt.method, "/waitlist", nil)
			if tt.requestOrigin != "" {
				req.Header.Set("Origin", tt.requestOrigin)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if got != tt.wantHeader {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantHeader)
			}

			if called != tt.wantNext {
				t.Errorf("next called = %v, want %v", called, tt.wantNext)
			}

			if tt.wantHeader == "" {
				for _, h := range []string{"Access-Control-Allow-Methods", "Access-Control-Allow-Headers"} {
					if v := rec.Header().Get(h); v != "" {
						t.Errorf("%s = %q, want absent", h, v)
					}
				}
			}
		})
	}
}

func TestCORSPreflightHeaders(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = []string{"https://example.com"}

	handler := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight must not reach the wrapped handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/waitlist", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "POST, OPTIONS" {
		t.Errorf("Access-Control-Allow-Methods = %q, want %q", got, "POST, OPTIONS")
	}

	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type" {
		t.Errorf("Access-Control-Allow-Headers = %q, want %q", got, "Content-Type")
	}

	if got := rec.Header().Get("Vary"); got != "Origin" {
		t.Errorf("Vary = %q, want Origin", got)
	}

	if rec.Body.Len() != 0 {
		t.Errorf("preflight body should be empty, got %q", rec.Body.String())
	}
}
