package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, filter ListFilter) ([]*Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, p *Product) error
}

type Service struct {
	repo Repository

	defaultLowStockAt int
}

func NewService(repo Repository, defaultLowStockAt int) *Service {
	return &Service{repo: repo, defaultLowStockAt: defaultLowStockAt}
}

type CreateParams struct {
	CategoryID    uuid.UUID
	Name          string
	Brand         string
	Kind          Kind
	PurchasePrice int64
	SellingPrice  int64
	Quantity      int
	LowStockAt    int
	Featured      bool
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	if params.PurchasePrice < 0 || params.SellingPrice < 0 {
		return nil, fmt.Errorf("prices must be non-negative")
	}

	if params.Quantity < 0 {
		return nil, fmt.Errorf("quantity must be non-negative")
	}

	lowStockAt := params.LowStockAt
	if lowStockAt <= 0 {
		lowStockAt = s.defaultLowStockAt
	}

	p := &Product{
		CategoryID:    params.CategoryID,
		Name:          params.Name,
		Brand:         params.Brand,
		Kind:          params.Kind,
		PurchasePrice: params.PurchasePrice,
		SellingPrice:  params.SellingPrice,
		Quantity:      params.Quantity,
		LowStockAt:    lowStockAt,
		Active:        true,
		AddedAt:       time.Now(),
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.FindProduct(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	return s.repo.ListProducts(ctx, filter)
}

func (s *Service) Update(ctx context.Context, p *Product) error {
	return s.repo.UpdateProduct(ctx, p)
}

// TakeSnapshot rolls the whole catalog up into an inventory snapshot.
// Inactive products still count: delisted stock is still capital on a shelf.
func (s *Service) TakeSnapshot(ctx context.Context) (*Snapshot, error) {
	products, err := s.repo.ListProducts(ctx, ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing products for snapshot: %w", err)
	}

	snap := &Snapshot{
		TakenAt: time.Now(),
		ByKind:  make(map[Kind]KindRollup),
	}

	for _, p := range products {
		capital := p.PurchasePrice * int64(p.Quantity)

		snap.TotalCapital += capital
		snap.TotalItems += p.Quantity

		rollup := snap.ByKind[p.Kind]
		rollup.Capital += capital
		rollup.Quantity += p.Quantity
		snap.ByKind[p.Kind] = rollup
	}

	return snap, nil
}
