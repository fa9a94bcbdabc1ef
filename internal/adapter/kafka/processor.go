package kafka

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
)

// statsKey is the single group table row holding the storefront totals.
const statsKey = "storefront"

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	if err := p.gp.Run(ctx); err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("fall down while preparing", "err", err)
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// An orderEventCodec used for serde [schema.OrderV1]
type orderEventCodec struct {
	serde Serde
}

func (c orderEventCodec) Encode(v any) ([]byte, error) {
	const op = "orderEventCodec.Encode"
	if _, ok := v.(schema.OrderV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c orderEventCodec) Decode(data []byte) (any, error) {
	const op = "orderEventCodec.Decode"
	var s schema.OrderV1
	if err := c.serde.Decode(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// An orderStatsCodec used for serde [schema.OrderStatsV1]
type orderStatsCodec struct {
	serde Serde
}

func (c orderStatsCodec) Encode(v any) ([]byte, error) {
	const op = "orderStatsCodec.Encode"
	if _, ok := v.(schema.OrderStatsV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c orderStatsCodec) Decode(data []byte) (any, error) {
	const op = "orderStatsCodec.Decode"
	var s schema.OrderStatsV1
	if err := c.serde.Decode(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// An OrderStatsProcessorConfig used for setup [OrderStatsProcessor].
//
// All fields are required.
type OrderStatsProcessorConfig struct {
	SeedBrokers []string
	OrdersTopic string
	Group       string
	OrderSerde  Serde
	StatsSerde  Serde
}

var _ port.OrderStatsProcessor = (*OrderStatsProcessor)(nil)

// An OrderStatsProcessor folds the orders stream into running totals
// kept in its group table.
//
// Orders arrive keyed by order ID and are looped back to one row.
type OrderStatsProcessor struct {
	opPrefix string
	proc     processor
}

func NewOrderStatsProc(
	config OrderStatsProcessorConfig, opts ...goka.ProcessorOption,
) (*OrderStatsProcessor, error) {
	const op = "NewOrderStatsProcessor"

	p := &OrderStatsProcessor{opPrefix: "OrderStatsProcessor"}

	orderCodec := orderEventCodec{config.OrderSerde}
	gg := goka.DefineGroup(goka.Group(config.Group),
		goka.Input(goka.Stream(config.OrdersTopic), orderCodec, p.routeFn),
		goka.Loop(orderCodec, p.aggregateFn),
		goka.Persist(orderStatsCodec{config.StatsSerde}),
	)

	opts = append([]goka.ProcessorOption{withNonlogProcOpt()}, opts...)
	gp, err := goka.NewProcessor(config.SeedBrokers, gg, opts...)
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{opPrefix: p.opPrefix, gp: gp}
	return p, nil
}

// Run starts the processor and returns once it is ready. stopFn is called
// when the processor stops.
func (p *OrderStatsProcessor) Run(ctx context.Context, stopFn context.CancelFunc) {
	p.proc.run(ctx, stopFn)
}

func (p *OrderStatsProcessor) Close() {
	p.proc.close()
}

func (p *OrderStatsProcessor) routeFn(ctx goka.Context, msg any) {
	ctx.Loopback(statsKey, msg)
}

func (p *OrderStatsProcessor) aggregateFn(ctx goka.Context, msg any) {
	const op = "aggregateFn"
	log := slog.With("op", makeOp(p.opPrefix, op))

	event, _ := msg.(schema.OrderV1)
	order, err := orderFromSchemaV1(event)
	if err != nil {
		log.Error("skip malformed order", "orderID", event.OrderID, "err", err)
		return
	}

	cur, _ := ctx.Value().(schema.OrderStatsV1)
	stats, err := statsFromSchemaV1(cur)
	if err != nil {
		log.Error("reset malformed stats", "err", err)
	}

	stats = stats.Apply(order)
	ctx.SetValue(statsToSchemaV1(stats))
	log.Info(
		"order counted",
		"orderID", order.ID,
		"orders", stats.Orders,
		"revenue", stats.Revenue,
	)
}
