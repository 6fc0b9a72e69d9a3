package catalog

import (
	"context"

	"rodrigues-modas/internal/domain"
)

// Repository supplies product display data to the storefront and the cart.
type Repository interface {
	List(ctx context.Context, category string, includeInactive bool) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
	Deactivate(ctx context.Context, id string) error
}
