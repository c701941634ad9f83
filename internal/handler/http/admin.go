package http

import (
	"log/slog"
	"net/http"

	"github.com/davoodepb/temucore-shop-hub/internal/service"
	"github.com/davoodepb/temucore-shop-hub/pkg/httputil"
	"github.com/davoodepb/temucore-shop-hub/pkg/validator"
)

// AdminHandler handles HTTP requests for admin session endpoints.
type AdminHandler struct {
	service *service.AdminService
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(svc *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service: svc,
		logger:  logger,
	}
}

// LoginResponse carries a freshly issued admin session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/v1/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	token, err := h.service.Login(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.OKMessage(w, "Welcome back!", LoginResponse{Token: token})
}

// Logout handles POST /api/v1/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), r.Header.Get(HeaderAdminToken)); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.OKMessage(w, "Logged out", nil)
}

// Verify handles GET /api/v1/admin/verify
func (h *AdminHandler) Verify(w http.ResponseWriter, r *http.Request) {
	ok, err := h.service.Validate(r.Context(), r.Header.Get(HeaderAdminToken))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.OK(w, map[string]bool{"valid": ok})
}
