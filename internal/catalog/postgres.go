package catalog

import (
	"context"
	"errors"
	"io"
	"log"

	"rodrigues-modas/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id::text, name, description, price::text, category, images, colors, sizes, stock, is_active, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context, category string, includeInactive bool) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE ($1 = '' OR category = $1)
  AND ($2 OR is_active)
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, category, includeInactive)
	if err != nil {
		r.logger.Printf("catalog repo: list category=%q error=%v", category, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("catalog repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("catalog repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	q := `
INSERT INTO products (id, name, description, price, category, images, colors, sizes, stock, is_active)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4::numeric, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    category = EXCLUDED.category,
    images = EXCLUDED.images,
    colors = EXCLUDED.colors,
    sizes = EXCLUDED.sizes,
    stock = EXCLUDED.stock,
    is_active = EXCLUDED.is_active
RETURNING ` + productColumns + `
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.Images,
		product.Colors,
		product.Sizes,
		product.Stock,
		product.IsActive,
	))
	if err != nil {
		r.logger.Printf("catalog repo: upsert name=%q error=%v", product.Name, err)
		return nil, err
	}
	r.logger.Printf("catalog repo: upserted id=%s name=%q", p.ID, p.Name)
	return &p, nil
}

func (r *postgresRepo) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE products
SET is_active = FALSE
WHERE id = $1
`, id)
	if err != nil {
		r.logger.Printf("catalog repo: deactivate id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.Images,
		&p.Colors,
		&p.Sizes,
		&p.Stock,
		&p.IsActive,
		&p.CreatedAt,
	)
	return p, err
}
