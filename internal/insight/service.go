// Package insight turns catalog state into operational recommendations:
// what to restock, what is gathering dust, what to discount. It prefers
// answering something over failing: if the underlying reads break, the
// caller gets a single zero-confidence recommendation instead of an error.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mfontes/ohm/internal/audit"
	"github.com/mfontes/ohm/internal/catalog"
	"github.com/mfontes/ohm/internal/rotation"
)

const (
	// DefaultCandidatePool is how many products each heuristic looks at.
	// Ten is an unproven cost/coverage compromise, hence configurable.
	DefaultCandidatePool = 10

	defaultNamedProducts   = 3
	defaultReducedProducts = 5

	confidenceRestock        = 0.95
	confidenceSlowMover      = 0.88
	confidencePriceReduction = 0.72
)

const feature = "insights"

// Config tunes the heuristics. Zero values fall back to defaults. Clock is
// injectable so slow-mover cutoffs are testable; nil means the wall clock.
type Config struct {
	CandidatePool   int
	NamedProducts   int
	ReducedProducts int
	Clock           func() time.Time
}

type Service struct {
	products catalog.Repository
	audits   audit.Recorder
	cfg      Config
}

func NewService(products catalog.Repository, audits audit.Recorder, cfg Config) *Service {
	if cfg.CandidatePool <= 0 {
		cfg.CandidatePool = DefaultCandidatePool
	}

	if cfg.NamedProducts <= 0 {
		cfg.NamedProducts = defaultNamedProducts
	}

	if cfg.ReducedProducts <= 0 {
		cfg.ReducedProducts = defaultReducedProducts
	}

	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return &Service{
		products: products,
		audits:   audits,
		cfg:      cfg,
	}
}

type inputSizes struct {
	LowStockCandidates int `json:"low_stock_candidates"`
	AgingCandidates    int `json:"aging_candidates"`
}

// Recommendations runs the heuristics and appends one audit record per
// invocation. Fetch or compute failures degrade to a single
// zero-confidence recommendation rather than an error; the only error this
// returns is a failed audit append on an otherwise healthy run.
func (s *Service) Recommendations(ctx context.Context) ([]Recommendation, error) {
	recs, sizes, err := s.compute(ctx)
	if err != nil {
		slog.Error("insight computation failed, degrading", "error", err)

		recs = []Recommendation{degraded()}
		if auditErr := s.appendAudit(ctx, sizes, recs); auditErr != nil {
			// The degraded path never fails the caller.
			slog.Error("audit append failed on degraded path", "error", auditErr)
		}

		return recs, nil
	}

	if err := s.appendAudit(ctx, sizes, recs); err != nil {
		return recs, fmt.Errorf("appending audit record: %w", err)
	}

	return recs, nil
}

func (s *Service) compute(ctx context.Context) ([]Recommendation, inputSizes, error) {
	var sizes inputSizes

	active := true

	lowStock, err := s.products.ListProducts(ctx, catalog.ListFilter{
		Active:  &active,
		OrderBy: catalog.OrderQuantityAsc,
		Limit:   s.cfg.CandidatePool,
	})
	if err != nil {
		return nil, sizes, fmt.Errorf("listing low-stock candidates: %w", err)
	}

	sizes.LowStockCandidates = len(lowStock)

	minQuantity := 1

	oldest, err := s.products.ListProducts(ctx, catalog.ListFilter{
		Active:      &active,
		MinQuantity: &minQuantity,
		OrderBy:     catalog.OrderAddedAtAsc,
		Limit:       s.cfg.CandidatePool,
	})
	if err != nil {
		return nil, sizes, fmt.Errorf("listing aging candidates: %w", err)
	}

	sizes.AgingCandidates = len(oldest)

	var recs []Recommendation

	if rec, ok := s.restock(lowStock); ok {
		recs = append(recs, rec)
	}

	now := s.cfg.Clock()

	oldStock := make([]*catalog.Product, 0, len(oldest))

	for _, p := range oldest {
		if rotation.Detect(p, now) == rotation.LabelDead {
			oldStock = append(oldStock, p)
		}
	}

	if rec, ok := s.slowMover(oldStock); ok {
		recs = append(recs, rec)
	}

	if rec, ok := s.priceReduction(oldStock); ok {
		recs = append(recs, rec)
	}

	return recs, sizes, nil
}

func (s *Service) restock(candidates []*catalog.Product) (Recommendation, bool) {
	var needs []*catalog.Product

	for _, p := range candidates {
		if p.Quantity <= p.LowStockAt {
			needs = append(needs, p)
		}
	}

	if len(needs) == 0 {
		return Recommendation{}, false
	}

	named := needs
	if len(named) > s.cfg.NamedProducts {
		named = named[:s.cfg.NamedProducts]
	}

	return Recommendation{
		Kind:        KindRestock,
		Title:       fmt.Sprintf("%d products need restocking", len(needs)),
		Description: fmt.Sprintf("Stock at or below threshold: %s", productNames(named)),
		Action:      "Create purchase order",
		Confidence:  confidenceRestock,
		Payload: map[string]any{
			"product_ids": productIDs(needs),
		},
	}, true
}

func (s *Service) slowMover(oldStock []*catalog.Product) (Recommendation, bool) {
	if len(oldStock) == 0 {
		return Recommendation{}, false
	}

	var stockValue int64
	for _, p := range oldStock {
		stockValue += p.SellingPrice * int64(p.Quantity)
	}

	return Recommendation{
		Kind:        KindSlowMover,
		Title:       fmt.Sprintf("%d products are not moving", len(oldStock)),
		Description: fmt.Sprintf("Dead-rotation stock ties up %.2f in selling value", float64(stockValue)/100),
		Action:      "Review slow movers",
		Confidence:  confidenceSlowMover,
		Payload: map[string]any{
			"product_ids": productIDs(oldStock),
			"stock_value": stockValue,
		},
	}, true
}

func (s *Service) priceReduction(oldStock []*catalog.Product) (Recommendation, bool) {
	if len(oldStock) <= 2 {
		return Recommendation{}, false
	}

	named := oldStock
	if len(named) > s.cfg.ReducedProducts {
		named = named[:s.cfg.ReducedProducts]
	}

	return Recommendation{
		Kind:        KindPriceReduction,
		Title:       "Consider a price reduction",
		Description: fmt.Sprintf("A 10-15%% discount could move: %s", productNames(named)),
		Action:      "Apply discount",
		Confidence:  confidencePriceReduction,
		Payload: map[string]any{
			"product_ids":      productIDs(named),
			"discount_min_pct": 10,
			"discount_max_pct": 15,
		},
	}, true
}

func degraded() Recommendation {
	return Recommendation{
		Kind:        KindDegraded,
		Title:       "Insights temporarily unavailable",
		Description: "The catalog could not be read; try again later",
		Action:      "Retry",
		Confidence:  0,
	}
}

// appendAudit writes the per-invocation audit line. It runs whether or not
// any recommendation was produced; silence is also a finding.
func (s *Service) appendAudit(ctx context.Context, sizes inputSizes, recs []Recommendation) error {
	snapshot, err := json.Marshal(sizes)
	if err != nil {
		return fmt.Errorf("marshaling input snapshot: %w", err)
	}

	var maxConfidence float64

	kinds := make([]string, len(recs))

	for i, rec := range recs {
		kinds[i] = string(rec.Kind)
		if rec.Confidence > maxConfidence {
			maxConfidence = rec.Confidence
		}
	}

	summary, err := json.Marshal(map[string]any{
		"recommendations": len(recs),
		"kinds":           kinds,
	})
	if err != nil {
		return fmt.Errorf("marshaling output summary: %w", err)
	}

	return s.audits.Append(ctx, &audit.Record{
		Feature:       feature,
		InputHash:     audit.HashInput(string(snapshot)),
		InputSnapshot: string(snapshot),
		OutputSummary: string(summary),
		Confidence:    maxConfidence,
	})
}

func productIDs(products []*catalog.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID.String()
	}

	return ids
}

func productNames(products []*catalog.Product) string {
	out := ""

	for i, p := range products {
		if i > 0 {
			out += ", "
		}

		name := p.Name
		if name == "" {
			name = p.ID.String()
		}

		out += name
	}

	return out
}
