package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/catalogsource"
	"github.com/niksmo/storefront/internal/adapter/geo"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

type services struct {
	catalog  port.CatalogBrowser
	cart     port.CartOperator
	auth     port.Authenticator
	checkout port.CheckoutProcessor
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	kv         *storage.KV
	geocoder   port.Geocoder
	services   services
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initOutboundAdapters()
	app.initCoreServices()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	kv, err := storage.NewKV(app.cfg.StoragePath)
	if err != nil {
		app.fallDown(op, err)
	}
	app.kv = kv
	app.geocoder = geo.NewClient(app.cfg.Geocoder.BaseURL)
}

func (app *App) initCoreServices() {
	source := catalogsource.NewClient(app.cfg.Catalog.SourceBaseURL)

	catalog := service.NewCatalogService(source, service.CatalogConfig{
		PriceFillMin: app.cfg.Catalog.PriceFillMin,
		PriceFillMax: app.cfg.Catalog.PriceFillMax,
		PageSize:     app.cfg.Catalog.PageSize,
	})

	cart := service.NewCartService(catalog)
	auth := service.NewSessionService(
		storage.NewUsersRepository(app.kv),
		storage.NewSessionRepository(app.kv),
	)
	checkout := service.NewCheckoutService(cart, auth, app.geocoder)

	app.services = services{
		catalog:  catalog,
		cart:     cart,
		auth:     auth,
		checkout: checkout,
	}
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.services.catalog)
	httphandler.RegisterCart(mux, app.services.cart)
	httphandler.RegisterAuth(mux, app.services.auth)
	httphandler.RegisterCheckout(mux, app.services.checkout)
	httphandler.RegisterGeo(mux, app.geocoder)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(addr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	// The initial load may fail; the catalog keeps its error state and
	// serves it until a refresh succeeds.
	if err := app.services.catalog.Refresh(app.ctx); err != nil {
		slog.Error("initial catalog load failed", "err", err)
	}

	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.kv.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
