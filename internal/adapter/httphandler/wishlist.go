package httphandler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

type wishlistStore interface {
	wishlistChecker
	Add(ctx context.Context, p domain.Product) error
	Remove(ctx context.Context, productID int) error
	Clear(ctx context.Context) error
	Entries() []domain.WishlistEntry
}

// GET v1/wishlist (200 OK)
// DELETE v1/wishlist (204 No content)
// POST v1/wishlist JSON {"productId"} (201 Created, 404 Not found, 409 Conflict)
// DELETE v1/wishlist/{id} (204 No content)

type WishlistHandler struct {
	wishlist wishlistStore
	catalog  port.CatalogReader
}

func RegisterWishlist(
	mux *http.ServeMux, wl wishlistStore, cat port.CatalogReader,
) {
	h := WishlistHandler{wishlist: wl, catalog: cat}
	mux.HandleFunc("GET /v1/wishlist", h.GetWishlist)
	mux.HandleFunc("DELETE /v1/wishlist", h.ClearWishlist)
	mux.HandleFunc("POST /v1/wishlist", h.PostItem)
	mux.HandleFunc("DELETE /v1/wishlist/{id}", h.DeleteItem)
}

func (h WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.GetWishlist"
	writeJSON(w, slog.With("op", op), http.StatusOK, Wishlist{h.wishlist.Entries()})
}

func (h WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.ClearWishlist"
	log := slog.With("op", op)

	if err := h.wishlist.Clear(r.Context()); err != nil {
		writeError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h WishlistHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.PostItem"
	log := slog.With("op", op)

	var req WishlistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w, log, err)
		return
	}

	p, err := h.catalog.Product(req.ProductID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	if err := h.wishlist.Add(r.Context(), p); err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, Wishlist{h.wishlist.Entries()})
}

func (h WishlistHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.DeleteItem"
	log := slog.With("op", op)

	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, log, err)
		return
	}

	if err := h.wishlist.Remove(r.Context(), id); err != nil {
		writeError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
