package domain

import "time"

// Product is a catalog entry. Price is the decimal string the storefront
// renders ("89.90"); money math happens at the edges, not here.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	Colors      []string  `json:"colors"`
	Sizes       []string  `json:"sizes"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Snapshot captures the display data a guest cart line keeps locally.
func (p Product) Snapshot() *ProductSnapshot {
	return &ProductSnapshot{
		Name:   p.Name,
		Price:  p.Price,
		Images: p.Images,
		Colors: p.Colors,
		Sizes:  p.Sizes,
	}
}
