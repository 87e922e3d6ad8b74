package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mfontes/ohm/internal/catalog"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanProduct reads a product row from the scanner.
// Expected column order: id, category_id, name, brand, kind, purchase_price,
// selling_price, quantity, low_stock_at, active, featured, added_at,
// last_sold_at, created_at, updated_at
func scanProduct(s scanner) (*catalog.Product, error) {
	var p catalog.Product

	var kindStr string

	if err := s.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Brand, &kindStr,
		&p.PurchasePrice, &p.SellingPrice, &p.Quantity, &p.LowStockAt,
		&p.Active, &p.Featured, &p.AddedAt, &p.LastSoldAt,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Kind = catalog.Kind(kindStr)

	return &p, nil
}

const selectProductColumns = `
	id, category_id, name, brand, kind, purchase_price, selling_price,
	quantity, low_stock_at, active, featured, added_at, last_sold_at,
	created_at, updated_at
`

func (s *Store) FindProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	query := `SELECT ` + selectProductColumns + `
		FROM products
		WHERE id = $1`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("finding product: %w", err)
	}

	return p, nil
}

func (s *Store) ListProducts(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Product, error) {
	query := `SELECT ` + selectProductColumns + `
		FROM products
		WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND kind = $%d", argIdx)

		args = append(args, string(*filter.Kind))
		argIdx++
	}

	if filter.Active != nil {
		query += fmt.Sprintf(" AND active = $%d", argIdx)

		args = append(args, *filter.Active)
		argIdx++
	}

	if filter.MinPrice != nil {
		query += fmt.Sprintf(" AND selling_price >= $%d", argIdx)

		args = append(args, *filter.MinPrice)
		argIdx++
	}

	if filter.MaxPrice != nil {
		query += fmt.Sprintf(" AND selling_price <= $%d", argIdx)

		args = append(args, *filter.MaxPrice)
		argIdx++
	}

	if filter.MinQuantity != nil {
		query += fmt.Sprintf(" AND quantity >= $%d", argIdx)

		args = append(args, *filter.MinQuantity)
		argIdx++
	}

	if filter.ExcludeID != nil {
		query += fmt.Sprintf(" AND id <> $%d", argIdx)

		args = append(args, *filter.ExcludeID)
		argIdx++
	}

	if len(filter.IDs) > 0 {
		placeholders := make([]string, len(filter.IDs))
		for i, id := range filter.IDs {
			placeholders[i] = fmt.Sprintf("$%d", argIdx)

			args = append(args, id)
			argIdx++
		}

		query += fmt.Sprintf(" AND id IN (%s)", strings.Join(placeholders, ", "))
	}

	query += orderClause(filter.OrderBy)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)

		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []*catalog.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

// orderClause maps the filter's order to a whitelisted ORDER BY. Anything
// unknown falls back to the table default.
func orderClause(o catalog.Order) string {
	switch o {
	case catalog.OrderQuantityAsc:
		return " ORDER BY quantity ASC, added_at ASC"
	case catalog.OrderAddedAtAsc:
		return " ORDER BY added_at ASC"
	case catalog.OrderFeaturedFirst:
		return " ORDER BY featured DESC, added_at DESC"
	default:
		return " ORDER BY created_at DESC"
	}
}

func (s *Store) CreateProduct(ctx context.Context, p *catalog.Product) error {
	query := `
		INSERT INTO products (category_id, name, brand, kind, purchase_price, selling_price,
			quantity, low_stock_at, active, featured, added_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.CategoryID,
		p.Name,
		p.Brand,
		string(p.Kind),
		p.PurchasePrice,
		p.SellingPrice,
		p.Quantity,
		p.LowStockAt,
		p.Active,
		p.Featured,
		p.AddedAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}

	return nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	query := `
		UPDATE products
		SET category_id = $1, name = $2, brand = $3, kind = $4, purchase_price = $5,
			selling_price = $6, quantity = $7, low_stock_at = $8, active = $9,
			featured = $10, last_sold_at = $11, updated_at = NOW()
		WHERE id = $12
	`

	_, err := s.db.ExecContext(ctx, query,
		p.CategoryID,
		p.Name,
		p.Brand,
		string(p.Kind),
		p.PurchasePrice,
		p.SellingPrice,
		p.Quantity,
		p.LowStockAt,
		p.Active,
		p.Featured,
		p.LastSoldAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	return nil
}
