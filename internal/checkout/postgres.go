package checkout

import (
	"context"
	"errors"
	"io"
	"log"

	"rodrigues-modas/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns an OrdersRepository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) OrdersRepository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var created domain.Order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, total, status, payment_method, customer_info)
VALUES (NULLIF($1, '')::uuid, $2::numeric, $3, $4, $5)
RETURNING id::text, COALESCE(user_id::text, ''), total::text, status, payment_method, customer_info, created_at
`, order.UserID, order.Total, order.Status, order.PaymentMethod, order.CustomerInfo).Scan(
		&created.ID,
		&created.UserID,
		&created.Total,
		&created.Status,
		&created.PaymentMethod,
		&created.CustomerInfo,
		&created.CreatedAt,
	)
	if err != nil {
		r.logger.Printf("orders repo: create user=%s error=%v", order.UserID, err)
		return nil, err
	}

	for _, item := range order.Items {
		var id string
		if err := tx.QueryRow(ctx, `
INSERT INTO order_items (order_id, product_id, quantity, price, selected_color, selected_size)
VALUES ($1, $2, $3, $4::numeric, $5, $6)
RETURNING id::text
`, created.ID, item.ProductID, item.Quantity, item.Price, item.SelectedColor, item.SelectedSize).Scan(&id); err != nil {
			r.logger.Printf("orders repo: create item order=%s product=%s error=%v", created.ID, item.ProductID, err)
			return nil, err
		}
		item.ID = id
		item.OrderID = created.ID
		created.Items = append(created.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := r.pool.QueryRow(ctx, `
SELECT id::text, COALESCE(user_id::text, ''), total::text, status, payment_method, customer_info, created_at
FROM orders
WHERE id = $1
`, id).Scan(
		&order.ID,
		&order.UserID,
		&order.Total,
		&order.Status,
		&order.PaymentMethod,
		&order.CustomerInfo,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("orders repo: get id=%s error=%v", id, err)
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
SELECT id::text, order_id::text, product_id::text, quantity, price::text, selected_color, selected_size
FROM order_items
WHERE order_id = $1
`, order.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.SelectedColor, &item.SelectedSize); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *postgresRepo) SetStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET status = $1
WHERE id = $2
`, status, id)
	if err != nil {
		r.logger.Printf("orders repo: set status id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, COALESCE(user_id::text, ''), total::text, status, payment_method, customer_info, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`, userID)
	if err != nil {
		r.logger.Printf("orders repo: list user=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.Total, &order.Status, &order.PaymentMethod, &order.CustomerInfo, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
