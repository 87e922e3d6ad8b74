package order

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=order

// Repository is the read side of the order ledger. The ledger itself is
// written by the checkout flow, outside this service.
type Repository interface {
	// OrderIDsForProduct returns the ids of orders containing the product,
	// newest order first, capped at limit.
	OrderIDsForProduct(ctx context.Context, productID uuid.UUID, limit int) ([]uuid.UUID, error)

	// ItemsByOrders returns every item belonging to the given orders.
	ItemsByOrders(ctx context.Context, orderIDs []uuid.UUID) ([]*Item, error)
}
