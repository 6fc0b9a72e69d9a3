package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"rodrigues-modas/internal/auth"
	"rodrigues-modas/internal/cart"
	"rodrigues-modas/internal/checkout"
	"rodrigues-modas/internal/domain"

	"github.com/gin-gonic/gin"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubCart struct {
	lines      []domain.CartLine
	linesErr   error
	addErr     error
	updateErr  error
	removeErr  error
	clearErr   error
	cleared    []cart.Owner
	added      []string
	removed    []string
	mergeCalls [][2]string
}

func (s *stubCart) Lines(_ context.Context, _ cart.Owner) ([]domain.CartLine, error) {
	return s.lines, s.linesErr
}

func (s *stubCart) Totals(lines []domain.CartLine) domain.DerivedTotals {
	return cart.ComputeTotals(lines)
}

func (s *stubCart) Add(_ context.Context, _ cart.Owner, productID string, quantity int, _, _ string) ([]domain.CartLine, error) {
	if quantity < 1 {
		return nil, cart.ErrQuantity
	}
	if s.addErr != nil {
		return nil, s.addErr
	}
	s.added = append(s.added, productID)
	return s.lines, nil
}

func (s *stubCart) UpdateQuantity(_ context.Context, _ cart.Owner, lineID string, quantity int) ([]domain.CartLine, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if quantity <= 0 {
		s.removed = append(s.removed, lineID)
	}
	return s.lines, nil
}

func (s *stubCart) Remove(_ context.Context, _ cart.Owner, lineID string) ([]domain.CartLine, error) {
	if s.removeErr != nil {
		return nil, s.removeErr
	}
	s.removed = append(s.removed, lineID)
	return s.lines, nil
}

func (s *stubCart) Clear(_ context.Context, owner cart.Owner) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.cleared = append(s.cleared, owner)
	return nil
}

func (s *stubCart) MergeOnLogin(_ context.Context, guestID, userID string) error {
	s.mergeCalls = append(s.mergeCalls, [2]string{guestID, userID})
	return nil
}

type stubAuth struct {
	byToken   map[string]*domain.User
	loginUser *domain.User
	loginErr  error
	signupErr error
}

func (s *stubAuth) Signup(_ context.Context, in auth.SignupInput) (*domain.User, error) {
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	return &domain.User{ID: "u-new", Email: in.Email, Name: in.Name, Role: domain.RoleCustomer}, nil
}

func (s *stubAuth) Login(_ context.Context, _, _ string) (*domain.User, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return s.loginUser, "signed-token", nil
}

func (s *stubAuth) LookupByToken(_ context.Context, token string) (*domain.User, error) {
	if u, ok := s.byToken[token]; ok {
		return u, nil
	}
	return nil, auth.ErrInvalidToken
}

func (s *stubAuth) AccessTTLSeconds() int { return 3600 }

type stubGuests struct {
	byToken map[string]string
}

func (s *stubGuests) Issue() (string, string, error) {
	return "guest-token", "guest-id", nil
}

func (s *stubGuests) Lookup(token string) (string, bool) {
	id, ok := s.byToken[token]
	return id, ok
}

type stubCheckout struct {
	whatsOrder *checkout.WhatsAppOrder
	whatsErr   error
	placed     *domain.Order
	placeErr   error
	confirmed  *domain.Order
	confirmErr error
	orders     []domain.Order
}

func (s *stubCheckout) WhatsApp(_ context.Context, _ cart.Owner) (*checkout.WhatsAppOrder, error) {
	return s.whatsOrder, s.whatsErr
}

func (s *stubCheckout) Place(_ context.Context, _ cart.Owner, _ checkout.PlaceInput) (*domain.Order, error) {
	return s.placed, s.placeErr
}

func (s *stubCheckout) Confirm(_ context.Context, _ cart.Owner, _ string) (*domain.Order, error) {
	return s.confirmed, s.confirmErr
}

func (s *stubCheckout) History(_ context.Context, _ string) ([]domain.Order, error) {
	return s.orders, nil
}

type stubCatalog struct {
	products []domain.Product
	byID     map[string]*domain.Product
	upserted *domain.Product
}

func (s *stubCatalog) List(_ context.Context, category string, _ bool) ([]domain.Product, error) {
	if category == "" {
		return s.products, nil
	}
	var out []domain.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubCatalog) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubCatalog) Upsert(_ context.Context, product domain.Product) (*domain.Product, error) {
	if product.ID == "" {
		product.ID = "p-new"
	}
	s.upserted = &product
	return &product, nil
}

func (s *stubCatalog) Deactivate(_ context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return domain.ErrNotFound
	}
	return nil
}

type testDeps struct {
	cart     *stubCart
	auth     *stubAuth
	guests   *stubGuests
	checkout *stubCheckout
	catalog  *stubCatalog
}

func newTestRouter(t *testing.T) (*gin.Engine, *testDeps) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	deps := &testDeps{
		cart: &stubCart{},
		auth: &stubAuth{byToken: map[string]*domain.User{
			"user-token":  {ID: "u1", Email: "ana@example.com", Role: domain.RoleCustomer},
			"admin-token": {ID: "adm", Email: "admin@example.com", Role: domain.RoleAdmin},
		}},
		guests:   &stubGuests{byToken: map[string]string{"g-token": "g1"}},
		checkout: &stubCheckout{},
		catalog:  &stubCatalog{byID: map[string]*domain.Product{}},
	}
	router, err := buildRouter(logDiscard(), nil, Deps{
		Cart:     deps.cart,
		Auth:     deps.auth,
		Guests:   deps.guests,
		Checkout: deps.checkout,
		Catalog:  deps.catalog,
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router, deps
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCartRequiresCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCartRejectsUnknownGuestToken(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set(guestTokenHeader, "not-a-session")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCartRejectsInvalidBearer(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}
