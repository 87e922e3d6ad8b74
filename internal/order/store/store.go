package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mfontes/ohm/internal/order"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) OrderIDsForProduct(ctx context.Context, productID uuid.UUID, limit int) ([]uuid.UUID, error) {
	query := `
		SELECT DISTINCT oi.order_id, o.created_at
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.product_id = $1
		ORDER BY o.created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing orders for product: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID

	for rows.Next() {
		var id uuid.UUID

		var createdAt sql.NullTime

		if err := rows.Scan(&id, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning order id: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return ids, nil
}

func (s *Store) ItemsByOrders(ctx context.Context, orderIDs []uuid.UUID) ([]*order.Item, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(orderIDs))

	args := make([]any, len(orderIDs))
	for i, id := range orderIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, order_id, product_id, quantity, unit_price, created_at
		FROM order_items
		WHERE order_id IN (%s)
	`, strings.Join(placeholders, ", "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}
	defer rows.Close()

	var items []*order.Item

	for rows.Next() {
		var it order.Item

		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}

		items = append(items, &it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return items, nil
}
