package domain

import "time"

// GuestOwner is the sentinel owner reference carried by lines that belong to
// a device-local cart with no account behind it.
const GuestOwner = "guest"

// CartLine is a single line in a cart, guest or authenticated.
// (ProductID, SelectedColor, SelectedSize) is the identity key: adding the
// same key again increments Quantity instead of creating a second line.
type CartLine struct {
	ID            string           `json:"id"`
	OwnerRef      string           `json:"userId"`
	ProductID     string           `json:"productId"`
	Quantity      int              `json:"quantity"`
	SelectedColor string           `json:"selectedColor"`
	SelectedSize  string           `json:"selectedSize"`
	CreatedAt     time.Time        `json:"createdAt"`
	Product       *ProductSnapshot `json:"product,omitempty"`
}

// ProductSnapshot carries the display data a cart line needs to render.
// Guest lines capture it at add time; remote lines join it live.
type ProductSnapshot struct {
	Name   string   `json:"name"`
	Price  string   `json:"price"`
	Images []string `json:"images"`
	Colors []string `json:"colors"`
	Sizes  []string `json:"sizes"`
}

// SameKey reports whether two lines share the identity key.
func (l CartLine) SameKey(other CartLine) bool {
	return l.ProductID == other.ProductID &&
		l.SelectedColor == other.SelectedColor &&
		l.SelectedSize == other.SelectedSize
}

// DerivedTotals is recomputed on every read, never persisted.
type DerivedTotals struct {
	Subtotal  float64 `json:"subtotal"`
	ItemCount int     `json:"itemCount"`
}
