package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfontes/ohm/internal/catalog"
)

type productResponse struct {
	ID            uuid.UUID    `json:"id"`
	CategoryID    uuid.UUID    `json:"category_id"`
	Name          string       `json:"name"`
	Brand         string       `json:"brand"`
	Kind          catalog.Kind `json:"kind"`
	PurchasePrice int64        `json:"purchase_price"`
	SellingPrice  int64        `json:"selling_price"`
	Quantity      int          `json:"quantity"`
	LowStockAt    int          `json:"low_stock_at"`
	Active        bool         `json:"active"`
	Featured      bool         `json:"featured"`
	AddedAt       time.Time    `json:"added_at"`
	LastSoldAt    *time.Time   `json:"last_sold_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     *time.Time   `json:"updated_at,omitempty"`
}

func toResponse(p *catalog.Product) productResponse {
	return productResponse{
		ID:            p.ID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Brand:         p.Brand,
		Kind:          p.Kind,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		Quantity:      p.Quantity,
		LowStockAt:    p.LowStockAt,
		Active:        p.Active,
		Featured:      p.Featured,
		AddedAt:       p.AddedAt,
		LastSoldAt:    p.LastSoldAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toResponseList(products []*catalog.Product) []productResponse {
	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toResponse(p)
	}

	return resp
}

type kindRollupResponse struct {
	Capital  int64 `json:"capital"`
	Quantity int   `json:"quantity"`
}

type snapshotResponse struct {
	TakenAt      time.Time                     `json:"taken_at"`
	TotalCapital int64                         `json:"total_capital"`
	TotalItems   int                           `json:"total_items"`
	ByKind       map[string]kindRollupResponse `json:"by_kind"`
}

func toSnapshotResponse(snap *catalog.Snapshot) snapshotResponse {
	resp := snapshotResponse{
		TakenAt:      snap.TakenAt,
		TotalCapital: snap.TotalCapital,
		TotalItems:   snap.TotalItems,
		ByKind:       make(map[string]kindRollupResponse, len(snap.ByKind)),
	}

	for kind, rollup := range snap.ByKind {
		resp.ByKind[string(kind)] = kindRollupResponse{
			Capital:  rollup.Capital,
			Quantity: rollup.Quantity,
		}
	}

	return resp
}
