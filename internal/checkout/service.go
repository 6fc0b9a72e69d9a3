package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"rodrigues-modas/internal/cart"
	"rodrigues-modas/internal/domain"
)

// ErrPaymentMethod rejects checkouts with an unknown payment method.
var ErrPaymentMethod = errors.New("unsupported payment method")

type cartEngine interface {
	Lines(ctx context.Context, owner cart.Owner) ([]domain.CartLine, error)
	Totals(lines []domain.CartLine) domain.DerivedTotals
	Clear(ctx context.Context, owner cart.Owner) error
}

// Service turns the active cart into an order summary and clears whichever
// store is active once the order is confirmed. It never talks to the payment
// gateway itself; that stays an external collaborator.
type Service struct {
	engine         cartEngine
	orders         OrdersRepository
	whatsAppNumber string
	baseURL        string
	logger         *log.Logger
}

func New(engine cartEngine, orders OrdersRepository, whatsAppNumber, baseURL string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		engine:         engine,
		orders:         orders,
		whatsAppNumber: whatsAppNumber,
		baseURL:        baseURL,
		logger:         logger,
	}
}

// WhatsAppOrder is the prepared redirect for the WhatsApp checkout flow.
type WhatsAppOrder struct {
	URL     string               `json:"url"`
	Message string               `json:"message"`
	Totals  domain.DerivedTotals `json:"totals"`
}

// WhatsApp builds the wa.me redirect from the active cart and clears it.
// Handing the conversation to WhatsApp is the confirmation for this flow.
func (s *Service) WhatsApp(ctx context.Context, owner cart.Owner) (*WhatsAppOrder, error) {
	lines, err := s.engine.Lines(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	totals := s.engine.Totals(lines)
	message := buildWhatsAppMessage(lines, totals.Subtotal, s.baseURL)

	if err := s.engine.Clear(ctx, owner); err != nil {
		s.logger.Printf("checkout: clear cart owner=%s error=%v", owner.Ref(), err)
		return nil, err
	}
	return &WhatsAppOrder{
		URL:     whatsAppURL(s.whatsAppNumber, message),
		Message: message,
		Totals:  totals,
	}, nil
}

// PlaceInput carries the gateway checkout fields.
type PlaceInput struct {
	PaymentMethod string              `json:"paymentMethod"`
	CustomerInfo  domain.CustomerInfo `json:"customerInfo"`
}

// Place creates a pending order from the active cart. The cart stays intact
// until the payment is confirmed.
func (s *Service) Place(ctx context.Context, owner cart.Owner, in PlaceInput) (*domain.Order, error) {
	if in.PaymentMethod != domain.PaymentCard && in.PaymentMethod != domain.PaymentPix {
		return nil, ErrPaymentMethod
	}
	lines, err := s.engine.Lines(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	totals := s.engine.Totals(lines)
	order := domain.Order{
		UserID:        owner.UserID,
		Total:         fmt.Sprintf("%.2f", totals.Subtotal),
		Status:        domain.OrderStatusPending,
		PaymentMethod: in.PaymentMethod,
		CustomerInfo:  in.CustomerInfo,
	}
	for _, line := range lines {
		price := ""
		if line.Product != nil {
			price = line.Product.Price
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:     line.ProductID,
			Quantity:      line.Quantity,
			Price:         price,
			SelectedColor: line.SelectedColor,
			SelectedSize:  line.SelectedSize,
		})
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		s.logger.Printf("checkout: create order owner=%s error=%v", owner.Ref(), err)
		return nil, err
	}
	return created, nil
}

// Confirm marks a pending order paid and clears the active cart. Only a
// confirmed payment empties the store.
func (s *Service) Confirm(ctx context.Context, owner cart.Owner, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != owner.UserID {
		return nil, domain.ErrNotFound
	}
	if err := s.orders.SetStatus(ctx, orderID, domain.OrderStatusPaid); err != nil {
		return nil, err
	}
	if err := s.engine.Clear(ctx, owner); err != nil {
		s.logger.Printf("checkout: clear cart after confirm owner=%s error=%v", owner.Ref(), err)
	}
	order.Status = domain.OrderStatusPaid
	return order, nil
}

// History lists a user's past orders, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}
