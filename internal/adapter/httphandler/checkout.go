package httphandler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
)

type checkoutService interface {
	Quote() domain.OrderSummary
	PlaceOrder(ctx context.Context, form service.CheckoutForm) (domain.Order, error)
}

// GET v1/checkout/quote (200 OK)
// POST v1/checkout JSON [checkout form] (201 Created, 409 Conflict, 422)

type CheckoutHandler struct {
	checkout checkoutService
}

func RegisterCheckout(mux *http.ServeMux, c checkoutService) {
	h := CheckoutHandler{c}
	mux.HandleFunc("GET /v1/checkout/quote", h.GetQuote)
	mux.HandleFunc("POST /v1/checkout", h.PostCheckout)
}

func (h CheckoutHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.GetQuote"
	writeJSON(w, slog.With("op", op), http.StatusOK, h.checkout.Quote())
}

func (h CheckoutHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PostCheckout"
	log := slog.With("op", op)

	var form service.CheckoutForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeBadJSON(w, log, err)
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), form)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, order)
}
