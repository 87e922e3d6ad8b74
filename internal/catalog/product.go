package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("product not found")

// Kind classifies what a product physically is.
type Kind string

const (
	KindPhone     Kind = "phone"
	KindAccessory Kind = "accessory"
	KindSparePart Kind = "spare_part"
)

// Product is a catalog item. Prices are in cents; PurchasePrice is what the
// shop paid per unit, SellingPrice what it charges. Both are independently
// non-negative and a zero SellingPrice simply means no margin.
type Product struct {
	ID            uuid.UUID
	CategoryID    uuid.UUID
	Name          string
	Brand         string
	Kind          Kind
	PurchasePrice int64 // Price in cents
	SellingPrice  int64 // Price in cents
	Quantity      int
	LowStockAt    int // Restock threshold for this product
	Active        bool
	Featured      bool
	AddedAt       time.Time
	LastSoldAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Order selects the sort the store applies to a listing. The zero value
// leaves ordering to the store's default.
type Order string

const (
	OrderDefault       Order = ""
	OrderQuantityAsc   Order = "quantity_asc"
	OrderAddedAtAsc    Order = "added_at_asc"
	OrderFeaturedFirst Order = "featured_first"
)

// ListFilter narrows a product listing. Nil fields are ignored. Price bounds
// are inclusive on both ends.
type ListFilter struct {
	CategoryID  *uuid.UUID
	Kind        *Kind
	Active      *bool
	MinPrice    *int64
	MaxPrice    *int64
	MinQuantity *int
	IDs         []uuid.UUID
	ExcludeID   *uuid.UUID
	OrderBy     Order
	Limit       int
}

// KindRollup is the per-kind slice of an inventory snapshot.
type KindRollup struct {
	Capital  int64
	Quantity int
}

// Snapshot is a point-in-time rollup of the stock on hand. Capital is the
// purchase value tied up in inventory, in cents. A snapshot is a value; it
// is never mutated after it is taken.
type Snapshot struct {
	TakenAt      time.Time
	TotalCapital int64
	TotalItems   int
	ByKind       map[Kind]KindRollup
}
