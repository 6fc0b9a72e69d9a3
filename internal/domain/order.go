package domain

import "time"

// Order statuses follow the storefront lifecycle.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// Payment methods accepted at checkout.
const (
	PaymentWhatsApp = "whatsapp"
	PaymentCard     = "card"
	PaymentPix      = "pix"
)

// CustomerInfo is the contact block embedded in an order.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Order struct {
	ID            string       `json:"id"`
	UserID        string       `json:"userId"`
	Total         string       `json:"total"`
	Status        string       `json:"status"`
	PaymentMethod string       `json:"paymentMethod"`
	CustomerInfo  CustomerInfo `json:"customerInfo"`
	CreatedAt     time.Time    `json:"createdAt"`
	Items         []OrderItem  `json:"items,omitempty"`
}

// OrderItem freezes a cart line at checkout time, price included.
type OrderItem struct {
	ID            string `json:"id"`
	OrderID       string `json:"orderId"`
	ProductID     string `json:"productId"`
	Quantity      int    `json:"quantity"`
	Price         string `json:"price"`
	SelectedColor string `json:"selectedColor"`
	SelectedSize  string `json:"selectedSize"`
}
