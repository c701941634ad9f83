package http

import (
	"log/slog"
	"net/http"

	"github.com/davoodepb/temucore-shop-hub/internal/service"
	"github.com/davoodepb/temucore-shop-hub/pkg/httputil"
	"github.com/davoodepb/temucore-shop-hub/pkg/validator"
)

// ChatHandler handles HTTP requests for support chat endpoints.
type ChatHandler struct {
	service *service.ChatService
	logger  *slog.Logger
}

// NewChatHandler creates a new chat HTTP handler.
func NewChatHandler(svc *service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		service: svc,
		logger:  logger,
	}
}

// SendMessage handles POST /api/v1/chat/messages
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var input service.SendMessageInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	msg, err := h.service.SendMessage(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.OKMessage(w, "Message sent", msg)
}

// GetThread handles GET /api/v1/chat/messages?email=...
func (h *ChatHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.GetThread(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.OK(w, messages)
}

// ListThreads handles GET /api/v1/admin/chat/threads
func (h *ChatHandler) ListThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.service.ListThreads(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.OK(w, threads)
}

// MarkThreadRead handles PUT /api/v1/admin/chat/threads/read?email=...
func (h *ChatHandler) MarkThreadRead(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkThreadRead(r.Context(), r.URL.Query().Get("email")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.OKMessage(w, "Thread marked read", nil)
}
