package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"rodrigues-modas/internal/cart"
	"rodrigues-modas/internal/domain"
)

type stubEngine struct {
	lines    []domain.CartLine
	linesErr error
	cleared  []cart.Owner
	clearErr error
}

func (s *stubEngine) Lines(_ context.Context, _ cart.Owner) ([]domain.CartLine, error) {
	return s.lines, s.linesErr
}

func (s *stubEngine) Totals(lines []domain.CartLine) domain.DerivedTotals {
	return cart.ComputeTotals(lines)
}

func (s *stubEngine) Clear(_ context.Context, owner cart.Owner) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.cleared = append(s.cleared, owner)
	return nil
}

type stubOrders struct {
	created   *domain.Order
	createErr error
	byID      *domain.Order
	byIDErr   error
	statusID  string
	statusVal string
	statusErr error
}

func (s *stubOrders) Create(_ context.Context, order domain.Order) (*domain.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	order.ID = "o1"
	s.created = &order
	return &order, nil
}

func (s *stubOrders) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	return s.byID, s.byIDErr
}

func (s *stubOrders) SetStatus(_ context.Context, id, status string) error {
	if s.statusErr != nil {
		return s.statusErr
	}
	s.statusID = id
	s.statusVal = status
	return nil
}

func (s *stubOrders) ListByUser(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

func twoLines() []domain.CartLine {
	return []domain.CartLine{
		{
			ID: "l1", ProductID: "p1", Quantity: 2, SelectedColor: "black", SelectedSize: "M",
			Product: &domain.ProductSnapshot{Name: "Conjunto Renda", Price: "89.90", Images: []string{"/uploads/renda.jpg"}},
		},
		{
			ID: "l2", ProductID: "p2", Quantity: 1, SelectedColor: "red", SelectedSize: "P",
			Product: &domain.ProductSnapshot{Name: "Body Tule", Price: "59.90"},
		},
	}
}

func TestWhatsAppRejectsEmptyCart(t *testing.T) {
	engine := &stubEngine{}
	svc := New(engine, &stubOrders{}, "5585991802352", "https://loja.example", nil)

	if _, err := svc.WhatsApp(context.Background(), cart.Owner{GuestID: "g1"}); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if len(engine.cleared) != 0 {
		t.Fatalf("empty checkout must not clear the cart")
	}
}

func TestWhatsAppBuildsMessageAndClears(t *testing.T) {
	engine := &stubEngine{lines: twoLines()}
	svc := New(engine, &stubOrders{}, "5585991802352", "https://loja.example", nil)

	got, err := svc.WhatsApp(context.Background(), cart.Owner{GuestID: "g1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got.URL, "https://wa.me/5585991802352?text=") {
		t.Fatalf("unexpected url: %s", got.URL)
	}
	for _, want := range []string{
		"Conjunto Renda",
		"Cor: black",
		"Tamanho: M",
		"Quantidade: 2",
		"R$ 89,90",
		"Foto: https://loja.example/uploads/renda.jpg",
		"Total: R$ 239,70",
	} {
		if !strings.Contains(got.Message, want) {
			t.Fatalf("message missing %q:\n%s", want, got.Message)
		}
	}
	if got.Totals.ItemCount != 3 {
		t.Fatalf("expected item count 3, got %d", got.Totals.ItemCount)
	}
	if len(engine.cleared) != 1 {
		t.Fatalf("expected cart cleared once, got %d", len(engine.cleared))
	}
}

func TestPlaceRejectsUnknownPaymentMethod(t *testing.T) {
	svc := New(&stubEngine{lines: twoLines()}, &stubOrders{}, "", "", nil)
	if _, err := svc.Place(context.Background(), cart.Owner{UserID: "u1"}, PlaceInput{PaymentMethod: "barter"}); !errors.Is(err, ErrPaymentMethod) {
		t.Fatalf("expected ErrPaymentMethod, got %v", err)
	}
}

func TestPlaceCreatesPendingOrderWithoutClearing(t *testing.T) {
	engine := &stubEngine{lines: twoLines()}
	orders := &stubOrders{}
	svc := New(engine, orders, "", "", nil)

	got, err := svc.Place(context.Background(), cart.Owner{UserID: "u1"}, PlaceInput{
		PaymentMethod: domain.PaymentPix,
		CustomerInfo:  domain.CustomerInfo{Name: "Ana", Email: "a@b.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.OrderStatusPending {
		t.Fatalf("expected pending order, got %q", got.Status)
	}
	if got.Total != "239.70" {
		t.Fatalf("expected total 239.70, got %q", got.Total)
	}
	if len(got.Items) != 2 || got.Items[0].Price != "89.90" {
		t.Fatalf("expected frozen line prices, got %+v", got.Items)
	}
	if len(engine.cleared) != 0 {
		t.Fatalf("pending order must leave the cart intact")
	}
}

func TestConfirmMarksPaidAndClearsActiveStore(t *testing.T) {
	engine := &stubEngine{}
	orders := &stubOrders{byID: &domain.Order{ID: "o1", UserID: "u1", Status: domain.OrderStatusPending}}
	svc := New(engine, orders, "", "", nil)

	got, err := svc.Confirm(context.Background(), cart.Owner{UserID: "u1"}, "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.OrderStatusPaid {
		t.Fatalf("expected paid order, got %q", got.Status)
	}
	if orders.statusID != "o1" || orders.statusVal != domain.OrderStatusPaid {
		t.Fatalf("expected status update, got %q %q", orders.statusID, orders.statusVal)
	}
	if len(engine.cleared) != 1 || engine.cleared[0].UserID != "u1" {
		t.Fatalf("expected the user cart cleared, got %+v", engine.cleared)
	}
}

func TestConfirmRejectsForeignOrder(t *testing.T) {
	engine := &stubEngine{}
	orders := &stubOrders{byID: &domain.Order{ID: "o1", UserID: "someone-else"}}
	svc := New(engine, orders, "", "", nil)

	if _, err := svc.Confirm(context.Background(), cart.Owner{UserID: "u1"}, "o1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(engine.cleared) != 0 {
		t.Fatalf("foreign order must not clear the cart")
	}
}

func TestConfirmStatusErrorLeavesCart(t *testing.T) {
	engine := &stubEngine{}
	orders := &stubOrders{
		byID:      &domain.Order{ID: "o1", UserID: "u1"},
		statusErr: errors.New("boom"),
	}
	svc := New(engine, orders, "", "", nil)

	if _, err := svc.Confirm(context.Background(), cart.Owner{UserID: "u1"}, "o1"); err == nil {
		t.Fatalf("expected error from status update")
	}
	if len(engine.cleared) != 0 {
		t.Fatalf("failed confirm must not clear the cart")
	}
}
