package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mrops-br/simple-shop/internal/app/service"
	"github.com/mrops-br/simple-shop/internal/domain"
	"github.com/mrops-br/simple-shop/internal/infrastructure/catalog"
	"github.com/mrops-br/simple-shop/internal/infrastructure/checkout"
	"github.com/mrops-br/simple-shop/internal/infrastructure/config"
	"github.com/mrops-br/simple-shop/internal/infrastructure/repository/file"
	"github.com/mrops-br/simple-shop/internal/infrastructure/repository/memory"
	"github.com/mrops-br/simple-shop/internal/infrastructure/repository/sqlite"
	"github.com/mrops-br/simple-shop/internal/infrastructure/telemetry"
)

// app holds the wired services shared by every command
type app struct {
	cfg       *config.Config
	telemetry *telemetry.Telemetry
	logger    *slog.Logger
	settings  domain.Settings
	products  *service.ProductService
	cart      *service.CartService
	pricing   *service.PricingService
	checkout  *service.CheckoutService
	closers   []io.Closer
}

// newApp wires storage, catalog and services (dependency injection)
func newApp(ctx context.Context, cfg *config.Config, telem *telemetry.Telemetry) (*app, error) {
	tracer := telem.Tracer()
	meter := telem.Meter()
	logger := telem.Logger

	products, err := catalog.Load(cfg.Shop.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	a := &app{
		cfg:       cfg,
		telemetry: telem,
		logger:    logger,
		settings: domain.Settings{
			StorageKey: cfg.Storage.Key,
			Catalog:    products,
		},
	}

	storage, err := a.openStorage(ctx)
	if err != nil {
		return nil, err
	}

	gateway := checkout.NewClient(&cfg.Checkout, tracer, logger)

	a.products = service.NewProductService(a.settings, tracer, meter, logger)
	a.cart = service.NewCartService(storage, a.settings, tracer, meter, logger)
	a.pricing = service.NewPricingService(a.settings)
	a.checkout = service.NewCheckoutService(a.cart, a.pricing, gateway, tracer, meter, logger)

	logger.Debug("Application wired",
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.Int("catalog_size", products.Len()),
	)

	return a, nil
}

func (a *app) openStorage(ctx context.Context) (domain.Storage, error) {
	tracer := a.telemetry.Tracer()

	switch a.cfg.Storage.Driver {
	case "memory":
		return memory.NewStorage(tracer, a.logger), nil
	case "file", "":
		return file.NewStorage(a.cfg.Storage.Path, tracer, a.logger)
	case "sqlite":
		if err := os.MkdirAll(a.cfg.Storage.Path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage dir: %w", err)
		}
		s, err := sqlite.Open(ctx, filepath.Join(a.cfg.Storage.Path, "shop.db"), tracer, a.logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", a.cfg.Storage.Driver)
	}
}

// Close releases storage handles and flushes telemetry
func (a *app) Close(ctx context.Context) {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("Failed to close storage", slog.String("error", err.Error()))
		}
	}
	if err := a.telemetry.Shutdown(ctx); err != nil {
		a.logger.Warn("Error shutting down telemetry", slog.String("error", err.Error()))
	}
}
