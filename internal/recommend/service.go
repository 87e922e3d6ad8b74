// Package recommend derives product suggestions from the catalog and the
// order ledger: same-category price peers, basket affinity, and cart-time
// upsells. Every operation is a pure read; an empty result means "no
// signal", not an error.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/mfontes/ohm/internal/catalog"
	"github.com/mfontes/ohm/internal/order"
)

const (
	DefaultSimilarLimit        = 4
	DefaultBoughtTogetherLimit = 4
	DefaultUpsellLimit         = 3

	// DefaultOrderSample bounds the co-purchase pass to the most recent
	// orders. The cap keeps query cost flat and biases the signal towards
	// recent baskets, at the price of not being globally exact.
	DefaultOrderSample = 50
)

// Config carries the sampling knobs. Zero values fall back to defaults.
type Config struct {
	OrderSample int
}

type Service struct {
	products catalog.Repository
	orders   order.Repository
	cfg      Config
}

func NewService(products catalog.Repository, orders order.Repository, cfg Config) *Service {
	if cfg.OrderSample <= 0 {
		cfg.OrderSample = DefaultOrderSample
	}

	return &Service{
		products: products,
		orders:   orders,
		cfg:      cfg,
	}
}

// Similar returns up to limit active products in the reference product's
// category whose selling price sits within 70%-130% of the reference price,
// both bounds inclusive. A missing reference product yields an empty list;
// the storefront shows nothing rather than an error page.
func (s *Service) Similar(ctx context.Context, productID uuid.UUID, limit int) ([]*catalog.Product, error) {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	ref, err := s.products.FindProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("finding reference product: %w", err)
	}

	// Integer math keeps the band edges exact: 7/10 and 13/10 of the
	// price in cents.
	minPrice := ref.SellingPrice * 7 / 10
	maxPrice := ref.SellingPrice * 13 / 10
	active := true

	peers, err := s.products.ListProducts(ctx, catalog.ListFilter{
		CategoryID: &ref.CategoryID,
		Active:     &active,
		MinPrice:   &minPrice,
		MaxPrice:   &maxPrice,
		ExcludeID:  &ref.ID,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing similar products: %w", err)
	}

	return peers, nil
}

// BoughtTogether returns up to limit products most often found in the same
// orders as the given product, most frequent first. The tally runs over a
// bounded sample of recent orders, so it approximates true affinity.
func (s *Service) BoughtTogether(ctx context.Context, productID uuid.UUID, limit int) ([]*catalog.Product, error) {
	if limit <= 0 {
		limit = DefaultBoughtTogetherLimit
	}

	orderIDs, err := s.orders.OrderIDsForProduct(ctx, productID, s.cfg.OrderSample)
	if err != nil {
		return nil, fmt.Errorf("sampling orders: %w", err)
	}

	if len(orderIDs) == 0 {
		return nil, nil
	}

	items, err := s.orders.ItemsByOrders(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}

	ranked := rankCoPurchases(items, productID, limit)
	if len(ranked) == 0 {
		return nil, nil
	}

	active := true

	products, err := s.products.ListProducts(ctx, catalog.ListFilter{
		IDs:    ranked,
		Active: &active,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching ranked products: %w", err)
	}

	// The store returns the id set in its own order; put the counts' order
	// back.
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]*catalog.Product, 0, len(ranked))

	for _, id := range ranked {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}

	return out, nil
}

// rankCoPurchases tallies how often each other product appears alongside the
// reference product and returns the top ids by count. Ties keep first-seen
// order, which is stable and cheap.
func rankCoPurchases(items []*order.Item, ref uuid.UUID, limit int) []uuid.UUID {
	counts := make(map[uuid.UUID]int)

	var seen []uuid.UUID

	for _, it := range items {
		if it.ProductID == ref {
			continue
		}

		if counts[it.ProductID] == 0 {
			seen = append(seen, it.ProductID)
		}

		counts[it.ProductID]++
	}

	sort.SliceStable(seen, func(i, j int) bool {
		return counts[seen[i]] > counts[seen[j]]
	})

	if len(seen) > limit {
		seen = seen[:limit]
	}

	return seen
}

// Upsells returns up to limit in-stock accessories for cart-time suggestion,
// featured products first. Accessories carry the best margins, which is the
// whole point of the upsell slot.
func (s *Service) Upsells(ctx context.Context, limit int) ([]*catalog.Product, error) {
	if limit <= 0 {
		limit = DefaultUpsellLimit
	}

	active := true
	kind := catalog.KindAccessory
	minQuantity := 1

	products, err := s.products.ListProducts(ctx, catalog.ListFilter{
		Kind:        &kind,
		Active:      &active,
		MinQuantity: &minQuantity,
		OrderBy:     catalog.OrderFeaturedFirst,
		Limit:       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing upsell candidates: %w", err)
	}

	return products, nil
}
