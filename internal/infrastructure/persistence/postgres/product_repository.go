package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/catalog"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/repository"
)

type ProductRepository struct {
	q querier
}

func NewProductRepository(q querier) *ProductRepository {
	return &ProductRepository{q: q}
}

const productColumns = `id, name, description, price, stock, COALESCE(supplier_ref, ''), created_at, updated_at, version`

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1;`, productColumns)
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

func (r *ProductRepository) FindBySupplierRef(ctx context.Context, ref string) (*catalog.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE supplier_ref = $1;`, productColumns)
	return r.scanOne(r.q.QueryRow(ctx, query, ref))
}

func (r *ProductRepository) List(ctx context.Context, filter catalog.ListFilter) ([]catalog.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products`, productColumns)
	var (
		conds []string
		args  []any
	)

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}
	if filter.InStock {
		conds = append(conds, "stock > 0")
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}

	switch filter.Sort {
	case catalog.SortNameDesc:
		query += " ORDER BY name DESC"
	case catalog.SortPriceAsc:
		query += " ORDER BY price ASC"
	case catalog.SortPriceDesc:
		query += " ORDER BY price DESC"
	default:
		query += " ORDER BY name ASC"
	}
	query += ";"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	const query = `
		INSERT INTO products (name, description, price, stock, supplier_ref, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
		RETURNING id;
	`
	return r.q.QueryRow(ctx, query,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		p.SupplierRef,
		p.CreatedAt,
		p.UpdatedAt,
		p.Version,
	).Scan(&p.ID)
}

// Update writes every mutable column, guarded by the version the caller
// loaded. Zero rows affected means someone else committed in between.
func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	const query = `
		UPDATE products
		SET name = $1,
			description = $2,
			price = $3,
			stock = $4,
			supplier_ref = NULLIF($5, ''),
			updated_at = $6,
			version = version + 1
		WHERE id = $7 AND version = $8;
	`
	tag, err := r.q.Exec(ctx, query,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		p.SupplierRef,
		p.UpdatedAt,
		p.ID,
		p.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrConcurrencyConflict
	}
	p.Version++
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1;`, id)
	return err
}

func (r *ProductRepository) scanOne(row pgx.Row) (*catalog.Product, error) {
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Stock,
		&p.SupplierRef,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.Version,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
