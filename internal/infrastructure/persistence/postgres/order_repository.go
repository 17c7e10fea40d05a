package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/order"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/repository"
)

type OrderRepository struct {
	q querier
}

func NewOrderRepository(q querier) *OrderRepository {
	return &OrderRepository{q: q}
}

// FindByID loads the order together with its items.
func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	const query = `
		SELECT id, user_id, order_date, status, total, version
		FROM orders
		WHERE id = $1;
	`
	var o order.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.UserID,
		&o.OrderDate,
		&o.Status,
		&o.Total,
		&o.Version,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	items, err := r.itemsFor(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// List returns all orders, newest first, without items.
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	const query = `
		SELECT id, user_id, order_date, status, total, version
		FROM orders
		ORDER BY order_date DESC;
	`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]order.Order, error) {
	const query = `
		SELECT id, user_id, order_date, status, total, version
		FROM orders
		WHERE user_id = $1
		ORDER BY order_date DESC
		LIMIT $2;
	`
	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// Create persists the order and its items, assigning their IDs.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	const orderQuery = `
		INSERT INTO orders (user_id, order_date, status, total, version)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	err := r.q.QueryRow(ctx, orderQuery,
		o.UserID,
		o.OrderDate,
		o.Status,
		o.Total,
		o.Version,
	).Scan(&o.ID)
	if err != nil {
		return err
	}

	const itemQuery = `
		INSERT INTO order_items (order_id, product_id, quantity, subtotal)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		err := r.q.QueryRow(ctx, itemQuery,
			o.ID,
			o.Items[i].ProductID,
			o.Items[i].Quantity,
			o.Items[i].Subtotal,
		).Scan(&o.Items[i].ID)
		if err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus is version-checked; zero rows affected means a concurrent
// writer got there first.
func (r *OrderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	const query = `
		UPDATE orders
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3;
	`
	tag, err := r.q.Exec(ctx, query, o.Status, o.ID, o.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrConcurrencyConflict
	}
	o.Version++
	return nil
}

// Delete removes the order; order_items cascade.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1;`, id)
	return err
}

func (r *OrderRepository) itemsFor(ctx context.Context, orderID int64) ([]order.Item, error) {
	const query = `
		SELECT id, order_id, product_id, quantity, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id;
	`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []order.Item
	for rows.Next() {
		var it order.Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanOrders(rows pgx.Rows) ([]order.Order, error) {
	var out []order.Order
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.OrderDate, &o.Status, &o.Total, &o.Version); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
