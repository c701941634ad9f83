package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/davoodepb/temucore-shop-hub/internal/service"
	"github.com/davoodepb/temucore-shop-hub/pkg/httputil"
	"github.com/davoodepb/temucore-shop-hub/pkg/logger"
)

// Header names used by the storefront API.
const (
	HeaderSessionID  = "X-Session-ID"
	HeaderAdminToken = "X-Admin-Token"
)

// ContentTypeJSON rejects mutating requests that do not declare a JSON body.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Message: "Content-Type must be application/json",
					Error:   &httputil.ErrorResponse{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Content-Type must be application/json"},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// SessionRequired rejects requests without an X-Session-ID header and adds
// the session ID to the request-scoped logger.
func SessionRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(HeaderSessionID)
		if sessionID == "" {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Message: "X-Session-ID header is required",
				Error:   &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-Session-ID header is required"},
			})
			return
		}

		ctx := logger.WithSessionID(r.Context(), sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminAuth guards back-office routes behind a live admin session token.
func AdminAuth(adminService *service.AdminService, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(HeaderAdminToken)
			if token == "" {
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Message: "admin token is required",
					Error:   &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "admin token is required"},
				})
				return
			}

			ok, err := adminService.Validate(r.Context(), token)
			if err != nil {
				log.ErrorContext(r.Context(), "admin token validation failed",
					slog.String("error", err.Error()),
				)
				httputil.WriteJSON(w, http.StatusInternalServerError, httputil.Response{
					Message: "an internal error occurred",
					Error:   &httputil.ErrorResponse{Code: "INTERNAL_ERROR", Message: "an internal error occurred"},
				})
				return
			}
			if !ok {
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Message: "invalid or expired admin token",
					Error:   &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid or expired admin token"},
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
