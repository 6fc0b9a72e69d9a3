package checkout

import (
	"context"

	"rodrigues-modas/internal/domain"
)

// OrdersRepository persists orders produced at checkout.
type OrdersRepository interface {
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	SetStatus(ctx context.Context, id, status string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}
