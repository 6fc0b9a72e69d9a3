package httpserver

import (
	"context"

	"rodrigues-modas/internal/auth"
	"rodrigues-modas/internal/cart"
	"rodrigues-modas/internal/checkout"
	"rodrigues-modas/internal/domain"
)

type cartService interface {
	Lines(ctx context.Context, owner cart.Owner) ([]domain.CartLine, error)
	Totals(lines []domain.CartLine) domain.DerivedTotals
	Add(ctx context.Context, owner cart.Owner, productID string, quantity int, color, size string) ([]domain.CartLine, error)
	UpdateQuantity(ctx context.Context, owner cart.Owner, lineID string, quantity int) ([]domain.CartLine, error)
	Remove(ctx context.Context, owner cart.Owner, lineID string) ([]domain.CartLine, error)
	Clear(ctx context.Context, owner cart.Owner) error
	MergeOnLogin(ctx context.Context, guestID, userID string) error
}

type authService interface {
	Signup(ctx context.Context, in auth.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	AccessTTLSeconds() int
}

type guestSessions interface {
	Issue() (token, guestID string, err error)
	Lookup(token string) (string, bool)
}

type checkoutService interface {
	WhatsApp(ctx context.Context, owner cart.Owner) (*checkout.WhatsAppOrder, error)
	Place(ctx context.Context, owner cart.Owner, in checkout.PlaceInput) (*domain.Order, error)
	Confirm(ctx context.Context, owner cart.Owner, orderID string) (*domain.Order, error)
	History(ctx context.Context, userID string) ([]domain.Order, error)
}

type productCatalog interface {
	List(ctx context.Context, category string, includeInactive bool) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
	Deactivate(ctx context.Context, id string) error
}

// Deps carries the services the router hangs handlers on.
type Deps struct {
	Cart        cartService
	Auth        authService
	Guests      guestSessions
	Checkout    checkoutService
	Catalog     productCatalog
	CORSOrigins []string
}
