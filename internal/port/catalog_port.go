package port

import (
	"context"

	"github.com/nikolayk812/storefront-state/internal/domain"
)

type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpsertProducts(ctx context.Context, products []domain.Product) error
}
