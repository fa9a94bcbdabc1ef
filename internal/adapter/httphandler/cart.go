package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/shopspring/decimal"
)

var errLineNotFound = errors.New("cart line not found")

type cartStore interface {
	AddItem(ctx context.Context, p domain.Product, quantity int, size, color string) (domain.AddResult, error)
	RemoveItem(ctx context.Context, key string) error
	SetQuantity(ctx context.Context, key string, n int) error
	Clear(ctx context.Context) error
	Lines() []domain.CartLine
	Line(key string) (domain.CartLine, bool)
	ItemCount() int
	Total() decimal.Decimal
}

// GET v1/cart (200 OK)
// DELETE v1/cart (204 No content)
// POST v1/cart/items JSON {"productId", "quantity", "size", "color"} (201 Created, 404, 409)
// PATCH v1/cart/items/{key} JSON {"quantity"} (200 OK, 404 Not found)
// DELETE v1/cart/items/{key} (204 No content)

type CartHandler struct {
	cart    cartStore
	catalog port.CatalogReader
}

func RegisterCart(mux *http.ServeMux, c cartStore, cat port.CatalogReader) {
	h := CartHandler{cart: c, catalog: cat}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("DELETE /v1/cart", h.ClearCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /v1/cart/items/{key}", h.PatchItem)
	mux.HandleFunc("DELETE /v1/cart/items/{key}", h.DeleteItem)
}

func (h CartHandler) view() Cart {
	return Cart{
		Items:     h.cart.Lines(),
		ItemCount: h.cart.ItemCount(),
		Total:     h.cart.Total(),
	}
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	writeJSON(w, slog.With("op", op), http.StatusOK, h.view())
}

func (h CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.ClearCart"
	log := slog.With("op", op)

	if err := h.cart.Clear(r.Context()); err != nil {
		writeError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var req CartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w, log, err)
		return
	}

	p, err := h.catalog.Product(req.ProductID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	res, err := h.cart.AddItem(r.Context(), p, req.quantity(), req.Size, req.Color)
	if err != nil {
		writeError(w, log, err)
		return
	}

	log.Info("item added", "productID", p.ID, "result", res)
	writeJSON(w, log, http.StatusCreated, CartItemResponse{
		Result: res.String(),
		Cart:   h.view(),
	})
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PatchItem"
	log := slog.With("op", op)

	key := r.PathValue("key")
	if _, ok := h.cart.Line(key); !ok {
		writeError(w, log, errLineNotFound)
		return
	}

	var req QuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w, log, err)
		return
	}

	if err := h.cart.SetQuantity(r.Context(), key, req.Quantity); err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, h.view())
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	if err := h.cart.RemoveItem(r.Context(), r.PathValue("key")); err != nil {
		writeError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
