package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/kvstore"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/retry"
	"github.com/niksmo/storefront/pkg/schema"
)

const brokerConnectAttempts = 5

type stores struct {
	notices  *service.NoticeBoard
	cart     *service.CartStore
	wishlist *service.WishlistStore
	session  *service.SessionStore
}

type orders struct {
	publisher port.OrderPublisher
	stats     port.OrderStatsReader
	producer  *kafka.OrdersProducer
	processor port.OrderStatsProcessor
	view      *kafka.OrderStatsView
}

type coreService struct {
	checkout service.CheckoutService
	admin    service.AdminService
	chat     *service.ChatBot
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	kv         kvstore.Store
	catalog    *catalog.Catalog
	stores     stores
	orders     orders
	service    coreService
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initCatalog()
	app.initStores()
	app.initOrders()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	kv, err := kvstore.Open(app.ctx, kvstore.Config{
		Backend:     app.cfg.KV.Backend,
		LevelDBPath: app.cfg.KV.LevelDBPath,
		SQLDB:       app.cfg.KV.SQLDB,
	})
	if err != nil {
		app.fallDown(op, err)
	}
	app.kv = kv
}

func (app *App) initCatalog() {
	const op = "App.initCatalog"

	c, err := catalog.LoadFile(app.cfg.Catalog.SeedFile)
	if err != nil {
		app.fallDown(op, err)
	}
	slog.Info("catalog is loaded", "products", c.Len())
	app.catalog = c
}

func (app *App) initStores() {
	const op = "App.initStores"
	ctx := app.ctx

	app.stores.notices = service.NewNoticeBoard()

	cart, err := service.NewCartStore(ctx, app.kv, app.stores.notices)
	if err != nil {
		app.fallDown(op, err)
	}

	wishlist, err := service.NewWishlistStore(ctx, app.kv, app.stores.notices)
	if err != nil {
		app.fallDown(op, err)
	}

	session, err := service.NewSessionStore(ctx, app.kv, app.stores.notices)
	if err != nil {
		app.fallDown(op, err)
	}

	app.stores.cart = cart
	app.stores.wishlist = wishlist
	app.stores.session = session
}

func (app *App) initOrders() {
	const op = "App.initOrders"

	if !app.cfg.Broker.Enabled() {
		ledger, err := service.NewOrderLedger(app.ctx, app.kv)
		if err != nil {
			app.fallDown(op, err)
		}
		slog.Info("no brokers configured, orders are counted locally")
		app.orders.publisher = ledger
		app.orders.stats = ledger
		return
	}

	app.initBrokerOrders()
}

func (app *App) initBrokerOrders() {
	const op = "App.initBrokerOrders"
	ctx := app.ctx
	broker := app.cfg.Broker

	var tlsConfig *tls.Config
	if broker.TLS.Enabled() {
		tlsConfig = adapter.MakeTLSConfig(broker.TLS.CA, broker.TLS.Cert, broker.TLS.Key)
	}
	kafka.ApplyGokaTLS(tlsConfig)

	identifier, err := schema.NewRegistryIdentifier(broker.SchemaRegistryURLs, tlsConfig)
	if err != nil {
		app.fallDown(op, err)
	}

	orderSerde, err := schema.NewSerdeOrderV1(
		ctx,
		schema.SubjectOpt(broker.Topics.Orders+"-value"),
		schema.SchemaIdentifierOpt(identifier),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	statsSerde, err := schema.NewSerdeOrderStatsV1(
		ctx,
		schema.SubjectOpt(broker.Consumers.OrderStatsGroup+"-table-value"),
		schema.SchemaIdentifierOpt(identifier),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := retry.DoWithResult(ctx, retry.Config{
		MaxAttempts: brokerConnectAttempts,
		Backoff:     retry.ExponentialBackoff(500 * time.Millisecond),
	}, func() (kafka.OrdersProducer, error) {
		return kafka.NewOrdersProducer(
			kafka.ProducerClientOpt(ctx, broker.SeedBrokers, broker.Topics.Orders, tlsConfig),
			kafka.ProducerEncoderOpt(orderSerde),
		)
	})
	if err != nil {
		app.fallDown(op, err)
	}

	processor, err := kafka.NewOrderStatsProc(kafka.OrderStatsProcessorConfig{
		SeedBrokers: broker.SeedBrokers,
		OrdersTopic: broker.Topics.Orders,
		Group:       broker.Consumers.OrderStatsGroup,
		OrderSerde:  orderSerde,
		StatsSerde:  statsSerde,
	})
	if err != nil {
		app.fallDown(op, err)
	}

	view, err := kafka.NewOrderStatsView(kafka.OrderStatsViewConfig{
		SeedBrokers: broker.SeedBrokers,
		Group:       broker.Consumers.OrderStatsGroup,
		StatsSerde:  statsSerde,
	})
	if err != nil {
		app.fallDown(op, err)
	}

	app.orders.producer = &producer
	app.orders.publisher = producer
	app.orders.processor = processor
	app.orders.view = view
	app.orders.stats = view
}

func (app *App) initCoreService() {
	app.service.checkout = service.NewCheckoutService(
		app.stores.cart, app.orders.publisher, app.stores.notices,
	)
	app.service.admin = service.NewAdminService(
		app.stores.session, app.catalog, app.orders.stats,
	)
	app.service.chat = service.NewChatBot(
		app.cfg.Chat.ReplyDelayMin, app.cfg.Chat.ReplyDelayMax,
	)
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.catalog, app.stores.wishlist)
	httphandler.RegisterCart(mux, app.stores.cart, app.catalog)
	httphandler.RegisterWishlist(mux, app.stores.wishlist, app.catalog)
	httphandler.RegisterSession(mux, app.stores.session)
	httphandler.RegisterCheckout(mux, app.service.checkout)
	httphandler.RegisterShell(
		mux, app.service.chat, app.stores.notices, app.service.admin,
	)

	handler := httphandler.LogRequests(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(addr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	if app.orders.processor != nil {
		app.orders.processor.Run(app.ctx, stopFn)
	}
	if app.orders.view != nil {
		go app.orders.view.Run(app.ctx)
	}

	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.service.chat.Close()
	if app.orders.producer != nil {
		app.orders.producer.Close()
	}
	if app.orders.processor != nil {
		app.orders.processor.Close()
	}
	app.kv.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
