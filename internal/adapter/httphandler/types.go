package httphandler

import (
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

type (
	ProductList struct {
		Products []domain.Product `json:"products"`
		Count    int              `json:"count"`
		Colors   []string         `json:"colors"`
		Sizes    []string         `json:"sizes"`
	}

	ProductDetails struct {
		Product    domain.Product   `json:"product"`
		Related    []domain.Product `json:"related"`
		InWishlist bool             `json:"inWishlist"`
	}

	CartItemRequest struct {
		ProductID int    `json:"productId"`
		Quantity  *int   `json:"quantity"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}

	QuantityRequest struct {
		Quantity int `json:"quantity"`
	}

	Cart struct {
		Items     []domain.CartLine `json:"items"`
		ItemCount int               `json:"itemCount"`
		Total     decimal.Decimal   `json:"total"`
	}

	CartItemResponse struct {
		Result string `json:"result"`
		Cart   Cart   `json:"cart"`
	}

	WishlistRequest struct {
		ProductID int `json:"productId"`
	}

	Wishlist struct {
		Items []domain.WishlistEntry `json:"items"`
	}

	Session struct {
		State string       `json:"state"`
		User  *domain.User `json:"user,omitempty"`
	}

	ChatRequest struct {
		Message string `json:"message"`
	}

	Chat struct {
		Messages     []domain.ChatMessage `json:"messages"`
		Typing       bool                 `json:"typing"`
		QuickReplies []string             `json:"quickReplies"`
	}

	Notices struct {
		Notices []domain.Notice `json:"notices"`
	}
)

// quantity defaults to one when the request omits it.
func (r CartItemRequest) quantity() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}
