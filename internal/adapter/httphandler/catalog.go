package httphandler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

var errBadParam = errors.New("invalid parameter")

type wishlistChecker interface {
	Contains(productID int) bool
}

// GET v1/categories (200 OK)
// GET v1/products?category=&search=&sort=&priceMin=&priceMax=&color=&size= (200 OK, 204 No content, 400 Bad request)
// GET v1/products/{id} (200 OK, 404 Not found)

type CatalogHandler struct {
	catalog  port.CatalogReader
	wishlist wishlistChecker
}

func RegisterCatalog(
	mux *http.ServeMux, c port.CatalogReader, w wishlistChecker,
) {
	h := CatalogHandler{catalog: c, wishlist: w}
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
}

func (h CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCategories"
	log := slog.With("op", op)

	writeJSON(w, log, http.StatusOK, h.catalog.Categories())
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, log, err)
		return
	}

	products := h.catalog.Products()
	found := service.FilterProducts(products, criteria)
	if len(found) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, log, http.StatusOK, ProductList{
		Products: found,
		Count:    len(found),
		Colors:   service.AvailableColors(products),
		Sizes:    service.AvailableSizes(products),
	})
}

func parseCriteria(q url.Values) (domain.FilterCriteria, error) {
	c := domain.DefaultFilterCriteria()

	if v := q.Get("category"); v != "" {
		category, err := domain.ParseCategory(v)
		if err != nil {
			return c, err
		}
		c.Category = category
	}
	if v := q.Get("sort"); v != "" {
		sort, err := domain.ParseSortKey(v)
		if err != nil {
			return c, err
		}
		c.Sort = sort
	}

	var err error
	if c.PriceMin, err = parsePrice(q, "priceMin", c.PriceMin); err != nil {
		return c, err
	}
	if c.PriceMax, err = parsePrice(q, "priceMax", c.PriceMax); err != nil {
		return c, err
	}

	c.Search = q.Get("search")
	c.Colors = q["color"]
	c.Sizes = q["size"]
	return c, nil
}

func parsePrice(q url.Values, key string, def float64) (float64, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("%w: %s=%q", errBadParam, key, v)
	}
	return f, nil
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, log, err)
		return
	}

	p, err := h.catalog.Product(id)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, ProductDetails{
		Product:    p,
		Related:    service.RelatedProducts(h.catalog.Products(), p),
		InWishlist: h.wishlist.Contains(p.ID),
	})
}

func pathInt(r *http.Request, name string) (int, error) {
	v := r.PathValue(name)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", errBadParam, name, v)
	}
	return n, nil
}
