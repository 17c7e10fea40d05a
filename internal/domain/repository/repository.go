package repository

import (
	"context"
	"errors"
	"time"

	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/account"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/catalog"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/order"
)

// ErrConcurrencyConflict is returned when a version-checked update matched no
// row: someone else committed first. Callers reload and retry.
var ErrConcurrencyConflict = errors.New("concurrent update detected, reload and retry")

// Repositories that find nothing return (nil, nil); missing-entity semantics
// belong to the workflows.

type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*catalog.Product, error)
	FindBySupplierRef(ctx context.Context, ref string) (*catalog.Product, error)
	List(ctx context.Context, filter catalog.ListFilter) ([]catalog.Product, error)
	Create(ctx context.Context, p *catalog.Product) error
	// Update is version-checked and bumps the version on success.
	Update(ctx context.Context, p *catalog.Product) error
	Delete(ctx context.Context, id int64) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*account.User, error)
	FindByEmail(ctx context.Context, email string) (*account.User, error)
	List(ctx context.Context) ([]account.User, error)
	Create(ctx context.Context, u *account.User) error
	Update(ctx context.Context, u *account.User) error
	Delete(ctx context.Context, id int64) error
}

type OrderRepository interface {
	// FindByID loads the order together with its items.
	FindByID(ctx context.Context, id int64) (*order.Order, error)
	List(ctx context.Context) ([]order.Order, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]order.Order, error)
	// Create persists the order and its items, assigning their IDs.
	Create(ctx context.Context, o *order.Order) error
	// UpdateStatus is version-checked and bumps the version on success.
	UpdateStatus(ctx context.Context, o *order.Order) error
	// Delete removes the order; items go with it (cascade).
	Delete(ctx context.Context, id int64) error
}

// AuditEntry is one consumed order event, as stored by the audit trail.
type AuditEntry struct {
	ID         int64
	EventID    string
	EventType  string
	OrderID    int64
	UserID     int64
	Status     string
	Total      string
	OccurredAt time.Time
	RecordedAt time.Time
}

type AuditRepository interface {
	Append(ctx context.Context, entry *AuditEntry) error
}

// Repositories bundles the collections visible inside one transaction.
type Repositories struct {
	Products ProductRepository
	Users    UserRepository
	Orders   OrderRepository
}

// UnitOfWork runs fn inside a single transaction; the repositories it hands
// over are scoped to that transaction. An error from fn rolls everything back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
}
