package cart

import (
	"context"
	"errors"
	"io"
	"log"

	"rodrigues-modas/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const lineColumns = `
ci.id::text, ci.user_id::text, ci.product_id::text, ci.quantity, ci.selected_color, ci.selected_size, ci.created_at,
p.name, p.price::text, p.images, p.colors, p.sizes
`

// RemoteStore is the server-persisted cart for authenticated owners, one row
// per (user, product, color, size). Product display data is joined live, never
// stored with the line.
type RemoteStore struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewRemote(pool *pgxpool.Pool, logger *log.Logger) *RemoteStore {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &RemoteStore{pool: pool, logger: logger}
}

// Fetch returns all lines for the owner joined with live product data.
func (r *RemoteStore) Fetch(ctx context.Context, ownerRef string) ([]domain.CartLine, error) {
	q := `
SELECT ` + lineColumns + `
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.user_id = $1
ORDER BY ci.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, ownerRef)
	if err != nil {
		r.logger.Printf("remote cart: fetch owner=%s error=%v", ownerRef, err)
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("remote cart: fetch rows owner=%s error=%v", ownerRef, err)
		return nil, err
	}
	return lines, nil
}

// Create inserts a line or increments the one matching the identity key,
// inside a single transaction, and returns the authoritative post-state.
func (r *RemoteStore) Create(ctx context.Context, ownerRef, productID string, quantity int, color, size string) (*domain.CartLine, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var lineID string
	var existingQty int
	err = tx.QueryRow(ctx, `
SELECT id::text, quantity
FROM cart_items
WHERE user_id = $1 AND product_id = $2 AND selected_color = $3 AND selected_size = $4
`, ownerRef, productID, color, size).Scan(&lineID, &existingQty)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if err == nil {
		if _, err := tx.Exec(ctx, `
UPDATE cart_items
SET quantity = $1
WHERE id = $2
`, existingQty+quantity, lineID); err != nil {
			return nil, err
		}
	} else {
		if err := tx.QueryRow(ctx, `
INSERT INTO cart_items (user_id, product_id, quantity, selected_color, selected_size)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text
`, ownerRef, productID, quantity, color, size).Scan(&lineID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.fetchLine(ctx, ownerRef, lineID)
}

// UpdateQuantity sets an absolute quantity. Zero or below is an implicit
// remove; a zero-quantity line must never survive a read.
func (r *RemoteStore) UpdateQuantity(ctx context.Context, ownerRef, lineID string, quantity int) error {
	if quantity <= 0 {
		return r.Remove(ctx, ownerRef, lineID)
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE cart_items
SET quantity = $1
WHERE id = $2 AND user_id = $3
`, quantity, lineID, ownerRef)
	if err != nil {
		r.logger.Printf("remote cart: update owner=%s line=%s error=%v", ownerRef, lineID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Remove deletes one line by id, scoped to the owner.
func (r *RemoteStore) Remove(ctx context.Context, ownerRef, lineID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE id = $1 AND user_id = $2
`, lineID, ownerRef)
	if err != nil {
		r.logger.Printf("remote cart: remove owner=%s line=%s error=%v", ownerRef, lineID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Clear deletes all lines for the owner in one statement.
func (r *RemoteStore) Clear(ctx context.Context, ownerRef string) error {
	if _, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE user_id = $1
`, ownerRef); err != nil {
		r.logger.Printf("remote cart: clear owner=%s error=%v", ownerRef, err)
		return err
	}
	return nil
}

func (r *RemoteStore) fetchLine(ctx context.Context, ownerRef, lineID string) (*domain.CartLine, error) {
	q := `
SELECT ` + lineColumns + `
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.id = $1 AND ci.user_id = $2
`
	row := r.pool.QueryRow(ctx, q, lineID, ownerRef)
	line, err := scanLine(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

func scanLine(row pgx.Row) (domain.CartLine, error) {
	var line domain.CartLine
	snap := &domain.ProductSnapshot{}
	err := row.Scan(
		&line.ID,
		&line.OwnerRef,
		&line.ProductID,
		&line.Quantity,
		&line.SelectedColor,
		&line.SelectedSize,
		&line.CreatedAt,
		&snap.Name,
		&snap.Price,
		&snap.Images,
		&snap.Colors,
		&snap.Sizes,
	)
	if err != nil {
		return domain.CartLine{}, err
	}
	line.Product = snap
	return line, nil
}
