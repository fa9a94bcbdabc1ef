package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
)

var ErrViewNotReady = errors.New("view is recovering")

type tableGetter interface {
	Get(key string) (any, error)
	Recovered() bool
}

// An OrderStatsViewConfig used for setup [OrderStatsView].
//
// All fields are required.
type OrderStatsViewConfig struct {
	SeedBrokers []string
	Group       string
	StatsSerde  Serde
}

var _ port.OrderStatsReader = (*OrderStatsView)(nil)

// An OrderStatsView reads the totals from the stats group table.
type OrderStatsView struct {
	gv    *goka.View
	table tableGetter
}

func NewOrderStatsView(
	config OrderStatsViewConfig, opts ...goka.ViewOption,
) (*OrderStatsView, error) {
	const op = "NewOrderStatsView"

	gv, err := goka.NewView(
		config.SeedBrokers,
		goka.GroupTable(goka.Group(config.Group)),
		orderStatsCodec{config.StatsSerde},
		opts...,
	)
	if err != nil {
		return nil, opErr(err, op)
	}
	return &OrderStatsView{gv: gv, table: gv}, nil
}

// Run blocks until ctx is done or the view fails.
func (v *OrderStatsView) Run(ctx context.Context) {
	const op = "OrderStatsView.Run"
	log := slog.With("op", op)

	if err := v.gv.Run(ctx); err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

func (v *OrderStatsView) OrderStats(ctx context.Context) (domain.OrderStats, error) {
	const op = "OrderStatsView.OrderStats"

	if err := ctx.Err(); err != nil {
		return domain.OrderStats{}, opErr(err, op)
	}
	if !v.table.Recovered() {
		return domain.OrderStats{}, opErr(ErrViewNotReady, op)
	}

	value, err := v.table.Get(statsKey)
	if err != nil {
		return domain.OrderStats{}, opErr(err, op)
	}
	if value == nil {
		return domain.OrderStats{}, nil
	}

	s, ok := value.(schema.OrderStatsV1)
	if !ok {
		err := fmt.Errorf("%w: %T", ErrInvalidValueType, value)
		return domain.OrderStats{}, opErr(err, op)
	}

	stats, err := statsFromSchemaV1(s)
	if err != nil {
		return domain.OrderStats{}, opErr(err, op)
	}
	return stats, nil
}
