// Package app is the application root. It builds the shared stores once and
// hands them by reference to every presentation layer.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-state/internal/catalog"
	"github.com/nikolayk812/storefront-state/internal/config"
	"github.com/nikolayk812/storefront-state/internal/port"
	"github.com/nikolayk812/storefront-state/internal/repository"
	"github.com/nikolayk812/storefront-state/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "storefront"

type App struct {
	Cart    *store.CartStore
	Session *store.SessionStore
	Catalog *catalog.Catalog
	Display config.Display

	Registry *prometheus.Registry
}

type options struct {
	source port.CatalogRepository
}

type Option func(*options)

// WithCatalogSource loads the catalog from source instead of cfg.DatabaseURL.
func WithCatalogSource(source port.CatalogRepository) Option {
	return func(o *options) {
		o.source = source
	}
}

// New loads the catalog and creates the stores. The catalog comes from the
// database when cfg.DatabaseURL is set and from the built-in list otherwise.
func New(ctx context.Context, cfg config.Config, log *slog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c, err := loadCatalog(ctx, cfg, o.source)
	if err != nil {
		return nil, fmt.Errorf("loadCatalog: %w", err)
	}
	log.Info("catalog loaded", slog.Int("products", c.Len()))

	reg := prometheus.NewRegistry()
	metrics := store.NewMetrics(reg, metricsNamespace)

	storeOpts := []store.Option{
		store.WithLogger(log),
		store.WithMetrics(metrics),
		store.WithCurrency(cfg.Currency),
	}

	return &App{
		Cart:     store.NewCartStore(storeOpts...),
		Session:  store.NewSessionStore(storeOpts...),
		Catalog:  c,
		Display:  cfg.Display,
		Registry: reg,
	}, nil
}

// Close ends every store subscription.
func (a *App) Close() {
	a.Cart.Close()
	a.Session.Close()
}

func loadCatalog(ctx context.Context, cfg config.Config, source port.CatalogRepository) (*catalog.Catalog, error) {
	if source == nil && cfg.DatabaseURL == "" {
		return catalog.Default(), nil
	}

	if source == nil {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		defer pool.Close()

		source = repository.NewCatalog(pool, cfg.Currency)
	}

	products, err := source.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("source.ListProducts: %w", err)
	}

	c, err := catalog.New(products)
	if err != nil {
		return nil, fmt.Errorf("catalog.New: %w", err)
	}

	return c, nil
}
