package http

import (
	"log/slog"
	"net/http"

	"github.com/nobih83-prog/Nashwa01/internal/service"
	"github.com/nobih83-prog/Nashwa01/pkg/httputil"
	"github.com/nobih83-prog/Nashwa01/pkg/logger"
)

// AuthHandler handles storefront login state.
type AuthHandler struct {
	sessions *service.Sessions
	auth     *service.AuthService
	logger   *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(sessions *service.Sessions, auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, auth: auth, logger: logger}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginInput
	if err := httputil.DecodeJSON(r, &req, false); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	kv := h.sessions.Store(logger.SessionIDFromContext(r.Context()))
	result, err := h.auth.Login(r.Context(), kv, req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, result)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	kv := h.sessions.Store(logger.SessionIDFromContext(r.Context()))
	if err := h.auth.Logout(r.Context(), kv); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /api/v1/auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	kv := h.sessions.Store(logger.SessionIDFromContext(r.Context()))
	sess, err := h.auth.Session(r.Context(), kv)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, sess)
}
