package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davoodepb/temucore-shop-hub/internal/service"
	"github.com/davoodepb/temucore-shop-hub/pkg/httputil"
	"github.com/davoodepb/temucore-shop-hub/pkg/validator"
)

// ContentHandler handles HTTP requests for announcements and site content.
type ContentHandler struct {
	service *service.ContentService
	logger  *slog.Logger
}

// NewContentHandler creates a new content HTTP handler.
func NewContentHandler(svc *service.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		service: svc,
		logger:  logger,
	}
}

// ListActiveAnnouncements handles GET /api/v1/announcements
func (h *ContentHandler) ListActiveAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.service.ListAnnouncements(r.Context(), true)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.OK(w, announcements)
}

// ListAnnouncements handles GET /api/v1/admin/announcements
func (h *ContentHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.service.ListAnnouncements(r.Context(), false)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.OK(w, announcements)
}

// CreateAnnouncement handles POST /api/v1/admin/announcements
func (h *ContentHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var input service.CreateAnnouncementInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	announcement, err := h.service.CreateAnnouncement(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.Created(w, announcement)
}

// UpdateAnnouncement handles PUT /api/v1/admin/announcements/{id}
func (h *ContentHandler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateAnnouncementInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	announcement, err := h.service.UpdateAnnouncement(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.OKMessage(w, "Announcement updated", announcement)
}

// DeleteAnnouncement handles DELETE /api/v1/admin/announcements/{id}
func (h *ContentHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAnnouncement(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.OKMessage(w, "Announcement deleted", nil)
}

// GetSiteContent handles GET /api/v1/content/{section}
func (h *ContentHandler) GetSiteContent(w http.ResponseWriter, r *http.Request) {
	block, err := h.service.GetSiteContent(r.Context(), chi.URLParam(r, "section"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.OK(w, block)
}

// ListSiteContent handles GET /api/v1/content
func (h *ContentHandler) ListSiteContent(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.service.ListSiteContent(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.OK(w, blocks)
}

// UpsertSiteContent handles PUT /api/v1/admin/content/{section}
func (h *ContentHandler) UpsertSiteContent(w http.ResponseWriter, r *http.Request) {
	var input service.UpsertSiteContentInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	block, err := h.service.UpsertSiteContent(r.Context(), chi.URLParam(r, "section"), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.OKMessage(w, "Content saved", block)
}
