package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BolivianProgrammer/RazorPedidos/internal/domain/catalog"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/repository"
	"github.com/BolivianProgrammer/RazorPedidos/pkg/logger"
)

// FeedRow is one product row from the supplier catalog feed.
type FeedRow struct {
	Reference   string          `json:"reference"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// FeedFetcher abstracts the supplier client so the sync is testable.
type FeedFetcher interface {
	FetchCatalog(ctx context.Context) ([]FeedRow, error)
}

// FeedSync imports the supplier catalog: known references get price and stock
// refreshed, unknown ones become new products. Invalid rows are skipped and
// counted, never abort the run.
type FeedSync struct {
	fetcher  FeedFetcher
	products repository.ProductRepository
	log      logger.Logger
}

func NewFeedSync(fetcher FeedFetcher, products repository.ProductRepository, log logger.Logger) *FeedSync {
	return &FeedSync{fetcher: fetcher, products: products, log: log}
}

// SyncResult counts what one run did.
type SyncResult struct {
	Created int
	Updated int
	Skipped int
}

func (s *FeedSync) Run(ctx context.Context) (SyncResult, error) {
	var result SyncResult

	rows, err := s.fetcher.FetchCatalog(ctx)
	if err != nil {
		return result, fmt.Errorf("fetch supplier catalog: %w", err)
	}

	for _, row := range rows {
		if row.Reference == "" || row.Name == "" || !row.Price.IsPositive() || row.Stock < 0 {
			result.Skipped++
			continue
		}

		existing, err := s.products.FindBySupplierRef(ctx, row.Reference)
		if err != nil {
			return result, fmt.Errorf("lookup supplier ref %s: %w", row.Reference, err)
		}

		if existing == nil {
			p, err := domain.NewProduct(row.Name, row.Description, row.Price, row.Stock)
			if err != nil {
				result.Skipped++
				continue
			}
			p.SupplierRef = row.Reference
			if err := s.products.Create(ctx, p); err != nil {
				return result, fmt.Errorf("create product %s: %w", row.Reference, err)
			}
			result.Created++
			continue
		}

		existing.Price = row.Price
		existing.Stock = row.Stock
		now := time.Now().UTC()
		existing.UpdatedAt = &now
		if err := s.products.Update(ctx, existing); err != nil {
			return result, fmt.Errorf("update product %s: %w", row.Reference, err)
		}
		result.Updated++
	}

	s.log.Info("supplier feed sync finished",
		logger.Int("created", result.Created),
		logger.Int("updated", result.Updated),
		logger.Int("skipped", result.Skipped),
	)
	return result, nil
}
