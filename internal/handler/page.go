package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/unbounded/waitlist/internal/ui"
)

// PageHandler serves the HTML pages.
type PageHandler struct {
	tmpl   *ui.Templates
	data   ui.PageData
	logger *slog.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(tmpl *ui.Templates, data ui.PageData, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		tmpl:   tmpl,
		data:   data,
		logger: logger,
	}
}

// Landing handles GET /.
func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, ui.PageLanding)
}

// Waitlist handles GET /waitlist.
func (h *PageHandler) Waitlist(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, ui.PageWaitlist)
}

// render buffers the page so a template error can still produce a clean 500.
func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, page string) {
	var buf bytes.Buffer
	if err := h.tmpl.Render(&buf, page, h.data); err != nil {
		h.logger.ErrorContext(r.Context(), "render page failed",
			"page", page,
			"error", err,
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
