package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same
// repository code serves plain reads and transactional writes.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store owns the pool and implements repository.UnitOfWork.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Repositories returns pool-backed repositories for non-transactional reads.
func (s *Store) Repositories() repository.Repositories {
	return reposOver(s.pool)
}

// WithinTx runs fn inside one transaction; every repository it receives is
// scoped to that transaction. Any error rolls the whole thing back.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, r repository.Repositories) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(ctx, reposOver(tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func reposOver(q querier) repository.Repositories {
	return repository.Repositories{
		Products: &ProductRepository{q: q},
		Users:    &UserRepository{q: q},
		Orders:   &OrderRepository{q: q},
	}
}
