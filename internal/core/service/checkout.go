package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/shopspring/decimal"
)

type cart interface {
	port.CartReader
	port.CartClearer
	Total() decimal.Decimal
}

// CheckoutService turns the cart into a simulated order confirmation.
type CheckoutService struct {
	cart      cart
	publisher port.OrderPublisher
	notifier  port.Notifier
	now       func() time.Time
	orderID   func() string
}

func NewCheckoutService(
	c cart, p port.OrderPublisher, n port.Notifier,
) CheckoutService {
	return CheckoutService{
		cart:      c,
		publisher: p,
		notifier:  n,
		now:       time.Now,
		orderID:   newOrderID,
	}
}

func newOrderID() string {
	return fmt.Sprintf("WB-%d", 100000+rand.IntN(900000))
}

// Quote returns the order summary for the current cart.
func (s CheckoutService) Quote() domain.OrderSummary {
	return domain.Summarize(s.cart.Total())
}

// PlaceOrder validates the form, confirms the order and empties the cart.
//
// An empty cart fails with [domain.ErrEmptyCart] and invalid input with a
// [domain.ValidationError]; in both cases nothing changes.
func (s CheckoutService) PlaceOrder(
	ctx context.Context, form CheckoutForm,
) (domain.Order, error) {
	const op = "CheckoutService.PlaceOrder"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	lines := s.cart.Lines()
	if len(lines) == 0 {
		s.notifier.Notify(domain.Failure("Your cart is empty"))
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrEmptyCart)
	}

	if err := ValidateForm(form); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	order := domain.Order{
		ID:            s.orderID(),
		Shipping:      form.shipping(),
		PaymentMethod: domain.PaymentMethod(form.PaymentMethod),
		Lines:         lines,
		Summary:       domain.Summarize(domain.Subtotal(lines)),
		PlacedAt:      s.now().UTC(),
	}

	if err := s.publisher.PublishOrder(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cart.Clear(ctx); err != nil {
		// the order is already confirmed downstream
		log.Error("failed to clear cart", "orderID", order.ID, "err", err)
	}

	log.Info("order placed", "orderID", order.ID, "total", order.Summary.Total)
	s.notifier.Notify(domain.Success("Order placed successfully"))
	return order, nil
}
