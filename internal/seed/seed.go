package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Name        string
	Description string
	Price       string
	Category    string
	Images      []string
	Colors      []string
	Sizes       []string
	Stock       int
}

// Apply inserts demo data for manual testing: a small lingerie catalog and an
// admin account. It is idempotent, keyed on product name and user email.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureAdmin(ctx, pool, "admin@rodriguesmodas.com.br", "admin12345"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	products := []productSeed{
		{
			Name:        "Conjunto Renda Clássico",
			Description: "Conjunto de renda com bojo e calcinha fio",
			Price:       "89.90",
			Category:    "conjuntos",
			Images:      []string{"/uploads/conjunto-renda.jpg"},
			Colors:      []string{"preto", "vermelho", "branco"},
			Sizes:       []string{"P", "M", "G"},
			Stock:       25,
		},
		{
			Name:        "Body Tule Bordado",
			Description: "Body transparente em tule com bordado floral",
			Price:       "119.90",
			Category:    "bodys",
			Images:      []string{"/uploads/body-tule.jpg"},
			Colors:      []string{"preto", "vinho"},
			Sizes:       []string{"P", "M", "G", "GG"},
			Stock:       12,
		},
		{
			Name:        "Camisola Cetim",
			Description: "Camisola curta de cetim com detalhe em renda",
			Price:       "74.90",
			Category:    "camisolas",
			Images:      []string{"/uploads/camisola-cetim.jpg"},
			Colors:      []string{"rosa", "preto"},
			Sizes:       []string{"M", "G"},
			Stock:       18,
		},
	}

	for _, p := range products {
		if err := ensureProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("ensure product %q: %w", p.Name, err)
		}
	}

	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (email, name, password_hash, role)
VALUES ($1, 'Administradora', $2, 'admin')
ON CONFLICT (email) DO UPDATE SET role = 'admin'
`
	_, err = pool.Exec(ctx, q, email, string(hashed))
	return err
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	var id string
	err := pool.QueryRow(ctx, `SELECT id::text FROM products WHERE name = $1`, p.Name).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	const q = `
INSERT INTO products (name, description, price, category, images, colors, sizes, stock, is_active)
VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, TRUE)
`
	_, err = pool.Exec(ctx, q, p.Name, p.Description, p.Price, p.Category, p.Images, p.Colors, p.Sizes, p.Stock)
	return err
}
