package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(10, 2) NOT NULL,
		stock INT NOT NULL,
		supplier_ref TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ,
		version INT NOT NULL DEFAULT 1,
		CONSTRAINT products_supplier_ref_key UNIQUE (supplier_ref)
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ
	);`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users (id),
		order_date TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL,
		total NUMERIC(10, 2) NOT NULL,
		version INT NOT NULL DEFAULT 1
	);`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL,
		quantity INT NOT NULL,
		subtotal NUMERIC(10, 2) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS order_audit (
		id BIGSERIAL PRIMARY KEY,
		event_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		order_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		status TEXT NOT NULL,
		total TEXT NOT NULL,
		occurred_at TIMESTAMPTZ NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL
	);`,
}

// EnsureSchema creates the tables on startup, same bootstrap style as the
// rest of the stack: no external migration tooling.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
