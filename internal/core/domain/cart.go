package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type (
	CartLine struct {
		Key           string   `json:"cartId"`
		ProductID     int      `json:"id"`
		Name          string   `json:"name"`
		Category      Category `json:"category"`
		Price         float64  `json:"price"`
		OriginalPrice *float64 `json:"originalPrice,omitempty"`
		Image         string   `json:"image"`
		Size          string   `json:"selectedSize,omitempty"`
		Color         string   `json:"selectedColor,omitempty"`
		Quantity      int      `json:"quantity"`
	}

	// WishlistEntry is a snapshot of a product taken when it was wished.
	WishlistEntry struct {
		Product
	}
)

func NewCartLine(p Product, quantity int, size, color string, at time.Time) CartLine {
	return CartLine{
		Key:           CartLineKey(p.ID, size, color, at),
		ProductID:     p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image(),
		Size:          size,
		Color:         color,
		Quantity:      quantity,
	}
}

func CartLineKey(productID int, size, color string, at time.Time) string {
	return fmt.Sprintf("%d-%s-%s-%d", productID, size, color, at.UnixMilli())
}

// Matches reports whether the line holds the same product variant.
func (l CartLine) Matches(productID int, size, color string) bool {
	return l.ProductID == productID && l.Size == size && l.Color == color
}

// Subtotal sums price times quantity over lines.
func Subtotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		q := decimal.NewFromInt(int64(l.Quantity))
		total = total.Add(decimal.NewFromFloat(l.Price).Mul(q))
	}
	return total
}

type AddResult int

const (
	AddResultAdded AddResult = iota + 1
	AddResultQuantityUpdated
)

func (r AddResult) String() string {
	switch r {
	case AddResultAdded:
		return "added"
	case AddResultQuantityUpdated:
		return "quantity_updated"
	default:
		return "unknown"
	}
}
