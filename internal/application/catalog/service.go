package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/account"
	domain "github.com/BolivianProgrammer/RazorPedidos/internal/domain/catalog"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/repository"
)

// Service manages the product catalog. Reads are open to everyone; writes
// require the manage-products capability.
type Service struct {
	products repository.ProductRepository
}

func NewService(products repository.ProductRepository) *Service {
	return &Service{products: products}
}

type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	return s.products.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, principal account.Principal, in ProductInput) (*domain.Product, error) {
	caps := account.CapabilitiesFor(principal.Role)
	if !caps.ManageProducts {
		return nil, account.ErrForbidden
	}

	p, err := domain.NewProduct(in.Name, in.Description, in.Price, in.Stock)
	if err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// Update replaces name, description, price and stock. CreatedAt is preserved,
// UpdatedAt stamped; a stale version surfaces ErrConcurrencyConflict.
func (s *Service) Update(ctx context.Context, principal account.Principal, id int64, in ProductInput) (*domain.Product, error) {
	caps := account.CapabilitiesFor(principal.Role)
	if !caps.ManageProducts {
		return nil, account.ErrForbidden
	}

	// Run the constructor for its validation only.
	if _, err := domain.NewProduct(in.Name, in.Description, in.Price, in.Stock); err != nil {
		return nil, err
	}

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock
	now := time.Now().UTC()
	p.UpdatedAt = &now

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, principal account.Principal, id int64) error {
	caps := account.CapabilitiesFor(principal.Role)
	if !caps.ManageProducts {
		return account.ErrForbidden
	}

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load product: %w", err)
	}
	if p == nil {
		return domain.ErrProductNotFound
	}
	return s.products.Delete(ctx, id)
}
