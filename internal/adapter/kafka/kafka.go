package kafka

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/IBM/sarama"
	"github.com/lovoo/goka"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/shopspring/decimal"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

func withNonlogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

// ApplyGokaTLS switches every goka client created afterwards to TLS.
// A nil config leaves the global config untouched.
func ApplyGokaTLS(tlsConfig *tls.Config) {
	if tlsConfig == nil {
		return
	}
	cfg := goka.DefaultConfig()
	cfg.Net.TLS.Enable = true
	cfg.Net.TLS.Config = tlsConfig
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	goka.ReplaceGlobalConfig(cfg)
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func orderToSchemaV1(v domain.Order) (s schema.OrderV1) {
	s.OrderID = v.ID
	s.PlacedAt = v.PlacedAt
	s.PaymentMethod = string(v.PaymentMethod)
	s.Country = v.Shipping.Country
	s.Subtotal = v.Summary.Subtotal.String()
	s.Shipping = v.Summary.Shipping.String()
	s.Tax = v.Summary.Tax.String()
	s.Total = v.Summary.Total.String()

	s.Items = make([]schema.OrderItemV1, len(v.Lines))
	for i, l := range v.Lines {
		s.Items[i] = schema.OrderItemV1{
			ProductID: l.ProductID,
			Name:      l.Name,
			Size:      l.Size,
			Color:     l.Color,
			Price:     l.Price,
			Quantity:  l.Quantity,
		}
	}
	return
}

func orderFromSchemaV1(s schema.OrderV1) (domain.Order, error) {
	const op = "orderFromSchemaV1"

	var (
		o    domain.Order
		errs []error
	)
	parse := func(dst *decimal.Decimal, v string) {
		d, err := decimal.NewFromString(v)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = d
	}
	parse(&o.Summary.Subtotal, s.Subtotal)
	parse(&o.Summary.Shipping, s.Shipping)
	parse(&o.Summary.Tax, s.Tax)
	parse(&o.Summary.Total, s.Total)
	if err := errors.Join(errs...); err != nil {
		return domain.Order{}, opErr(err, op)
	}

	o.ID = s.OrderID
	o.PlacedAt = s.PlacedAt
	o.PaymentMethod = domain.PaymentMethod(s.PaymentMethod)
	o.Shipping.Country = s.Country
	o.Lines = make([]domain.CartLine, len(s.Items))
	for i, it := range s.Items {
		o.Lines[i] = domain.CartLine{
			ProductID: it.ProductID,
			Name:      it.Name,
			Size:      it.Size,
			Color:     it.Color,
			Price:     it.Price,
			Quantity:  it.Quantity,
		}
	}
	return o, nil
}

func statsToSchemaV1(v domain.OrderStats) schema.OrderStatsV1 {
	return schema.OrderStatsV1{
		Orders:  v.Orders,
		Items:   v.Items,
		Revenue: v.Revenue.String(),
	}
}

func statsFromSchemaV1(s schema.OrderStatsV1) (domain.OrderStats, error) {
	const op = "statsFromSchemaV1"

	revenue := decimal.Zero
	if s.Revenue != "" {
		var err error
		revenue, err = decimal.NewFromString(s.Revenue)
		if err != nil {
			return domain.OrderStats{}, opErr(err, op)
		}
	}
	return domain.OrderStats{
		Orders:  s.Orders,
		Items:   s.Items,
		Revenue: revenue,
	}, nil
}
