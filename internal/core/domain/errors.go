package domain

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownSortKey  = errors.New("unknown sort key")
	ErrProductNotFound = errors.New("product not found")

	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrOutOfStock       = errors.New("product is out of stock")
	ErrSizeUnavailable  = errors.New("size is not offered")
	ErrColorUnavailable = errors.New("color is not offered")

	ErrAlreadyInWishlist = errors.New("item already in wishlist")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no active session")
	ErrForbidden          = errors.New("forbidden")

	ErrEmptyCart    = errors.New("cart is empty")
	ErrEmptyMessage = errors.New("message is empty")
	ErrChatClosed   = errors.New("chat is closed")
)

// ValidationError maps form fields to the message shown next to them.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
