package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/unbounded/waitlist/internal/middleware"
	"github.com/unbounded/waitlist/internal/service"
)

// Error messages returned to clients.
const (
	msgInvalidJSON  = "Invalid JSON payload."
	msgInvalidEmail = "Invalid email."
	msgInternal     = "Internal error."
)

// WaitlistHandler handles signup submissions.
type WaitlistHandler struct {
	svc    *service.WaitlistService
	logger *slog.Logger
}

// NewWaitlistHandler creates a new WaitlistHandler.
func NewWaitlistHandler(svc *service.WaitlistService, logger *slog.Logger) *WaitlistHandler {
	return &WaitlistHandler{
		svc:    svc,
		logger: logger,
	}
}

// Join handles POST /waitlist and POST /api/waitlist.
func (h *WaitlistHandler) Join(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.svc.RejectPayload()
		writeJSON(w, http.StatusBadRequest, Response{Error: msgInvalidJSON})
		return
	}

	// Unmarshal rejects trailing data after the first value.
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		h.svc.RejectPayload()
		writeJSON(w, http.StatusBadRequest, Response{Error: msgInvalidJSON})
		return
	}

	email := emailField(payload)

	if _, err := h.svc.Join(r.Context(), email); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, Response{OK: true})
}

// emailField returns payload.email when payload is an object and the field
// is a string. Any other well-formed JSON yields "", an invalid email.
func emailField(payload any) string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	email, _ := obj["email"].(string)
	return email
}

// handleServiceError maps service errors to HTTP responses.
func (h *WaitlistHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		writeJSON(w, http.StatusBadRequest, Response{Error: msgInvalidEmail})
	default:
		h.logger.ErrorContext(r.Context(), "signup failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, Response{Error: msgInternal})
	}
}
