package http

import (
	"log/slog"
	"net/http"

	"github.com/nobih83-prog/Nashwa01/internal/service"
	"github.com/nobih83-prog/Nashwa01/pkg/httputil"
	"github.com/nobih83-prog/Nashwa01/pkg/logger"
)

// CheckoutHandler handles order placement.
type CheckoutHandler struct {
	sessions *service.Sessions
	checkout *service.CheckoutService
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(sessions *service.Sessions, checkout *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions, checkout: checkout, logger: logger}
}

// PlaceOrder handles POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutInput
	if err := httputil.DecodeJSON(r, &req, false); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	engine, err := openEngine(h.sessions, r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sessionID := logger.SessionIDFromContext(r.Context())
	order, err := h.checkout.PlaceOrder(r.Context(), sessionID, engine, req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, order)
}
