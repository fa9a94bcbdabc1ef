package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit-card"
	PaymentPayPal     PaymentMethod = "paypal"
)

var (
	FreeShippingThreshold = decimal.NewFromInt(75)
	ShippingFee           = decimal.NewFromInt(5)
	TaxRate               = decimal.RequireFromString("0.08")
)

type (
	OrderSummary struct {
		Subtotal decimal.Decimal `json:"subtotal"`
		Shipping decimal.Decimal `json:"shipping"`
		Tax      decimal.Decimal `json:"tax"`
		Total    decimal.Decimal `json:"total"`
	}

	ShippingDetails struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Address   string `json:"address"`
		City      string `json:"city"`
		State     string `json:"state"`
		ZipCode   string `json:"zipCode"`
		Country   string `json:"country"`
	}

	Order struct {
		ID            string          `json:"id"`
		Shipping      ShippingDetails `json:"shipping"`
		PaymentMethod PaymentMethod   `json:"paymentMethod"`
		Lines         []CartLine      `json:"items"`
		Summary       OrderSummary    `json:"summary"`
		PlacedAt      time.Time       `json:"placedAt"`
	}

	OrderStats struct {
		Orders  int64           `json:"orders"`
		Items   int64           `json:"items"`
		Revenue decimal.Decimal `json:"revenue"`
	}
)

// Summarize applies the shipping and tax rules to a cart subtotal.
func Summarize(subtotal decimal.Decimal) OrderSummary {
	shipping := ShippingFee
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(TaxRate).Round(2)
	return OrderSummary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

func (o Order) ItemCount() int64 {
	var n int64
	for _, l := range o.Lines {
		n += int64(l.Quantity)
	}
	return n
}

// Apply folds a placed order into the running stats.
func (s OrderStats) Apply(o Order) OrderStats {
	s.Orders++
	s.Items += o.ItemCount()
	s.Revenue = s.Revenue.Add(o.Summary.Total)
	return s
}
