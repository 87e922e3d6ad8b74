package order

import (
	"time"

	"github.com/google/uuid"
)

// Item is a single line of a customer order. A product can appear in many
// orders and an order holds many items, so items are the join between the
// two.
type Item struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	UnitPrice int64 // Price in cents at sale time
	CreatedAt time.Time
}
