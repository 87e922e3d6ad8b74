package finance

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// DefaultWindowDays is the report window used when the caller does not ask
// for a specific one.
const DefaultWindowDays = 30

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=finance
type Repository interface {
	// ListSince returns entries with date >= from, newest first,
	// optionally restricted to one type.
	ListSince(ctx context.Context, from time.Time, typ *Type) ([]*Entry, error)

	CreateEntry(ctx context.Context, e *Entry) error
	CreateEntries(ctx context.Context, entries []*Entry) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateParams struct {
	Type     Type
	Amount   int64
	Category string
	Date     time.Time
}

func (p CreateParams) validate() error {
	switch p.Type {
	case TypeRevenue, TypeExpense, TypePurchase, TypePayroll:
	default:
		return fmt.Errorf("unknown entry type %q", p.Type)
	}

	if p.Amount < 0 {
		return fmt.Errorf("amount must be a non-negative magnitude, got %d", p.Amount)
	}

	return nil
}

func (s *Service) Record(ctx context.Context, params CreateParams) (*Entry, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	e := s.toEntry(params)
	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// RecordBatch validates and inserts a batch of entries, typically from a
// ledger file import. The whole batch is rejected on the first bad row.
func (s *Service) RecordBatch(ctx context.Context, params []CreateParams) ([]*Entry, error) {
	if len(params) == 0 {
		return nil, nil
	}

	entries := make([]*Entry, len(params))

	for i, p := range params {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		entries[i] = s.toEntry(p)
	}

	if err := s.repo.CreateEntries(ctx, entries); err != nil {
		return nil, fmt.Errorf("creating entries: %w", err)
	}

	return entries, nil
}

func (s *Service) toEntry(p CreateParams) *Entry {
	category := p.Category
	if category == "" {
		category = string(p.Type)
	}

	date := p.Date
	if date.IsZero() {
		date = s.now()
	}

	return &Entry{
		Type:     p.Type,
		Amount:   p.Amount,
		Category: category,
		Date:     date,
	}
}

// Entries returns ledger entries from the last days days, newest first,
// optionally filtered by type. days <= 0 means the default window.
func (s *Service) Entries(ctx context.Context, typ *Type, days int) ([]*Entry, error) {
	return s.repo.ListSince(ctx, s.windowStart(days), typ)
}

// ComputePnL sums the window's entries into revenue, expenses and net
// profit. Expenses cover every non-revenue type.
func (s *Service) ComputePnL(ctx context.Context, days int) (*PnL, error) {
	entries, err := s.repo.ListSince(ctx, s.windowStart(days), nil)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	pnl := &PnL{}
	byCategory := make(map[string]int64)

	for _, e := range entries {
		category := e.Category
		if category == "" {
			category = string(e.Type)
		}

		if e.Inflow() {
			pnl.Revenue += e.Amount
			byCategory[category] += e.Amount
		} else {
			pnl.Expenses += e.Amount
			byCategory[category] -= e.Amount
		}
	}

	pnl.NetProfit = pnl.Revenue - pnl.Expenses

	pnl.ByCategory = make([]CategoryTotal, 0, len(byCategory))
	for category, amount := range byCategory {
		pnl.ByCategory = append(pnl.ByCategory, CategoryTotal{Category: category, Amount: amount})
	}

	sort.Slice(pnl.ByCategory, func(i, j int) bool {
		return pnl.ByCategory[i].Category < pnl.ByCategory[j].Category
	})

	return pnl, nil
}

// CashFlow buckets the window's entries by calendar day, ascending. Days
// without entries are absent; callers wanting a dense series fill the gaps
// themselves.
func (s *Service) CashFlow(ctx context.Context, days int) ([]DayFlow, error) {
	entries, err := s.repo.ListSince(ctx, s.windowStart(days), nil)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	buckets := make(map[string]*DayFlow)

	for _, e := range entries {
		day := e.Date.Format(time.DateOnly)

		flow, ok := buckets[day]
		if !ok {
			flow = &DayFlow{Date: day}
			buckets[day] = flow
		}

		if e.Inflow() {
			flow.Inflow += e.Amount
		} else {
			flow.Outflow += e.Amount
		}
	}

	flows := make([]DayFlow, 0, len(buckets))
	for _, flow := range buckets {
		flows = append(flows, *flow)
	}

	sort.Slice(flows, func(i, j int) bool { return flows[i].Date < flows[j].Date })

	return flows, nil
}

func (s *Service) windowStart(days int) time.Time {
	if days <= 0 {
		days = DefaultWindowDays
	}

	return s.now().AddDate(0, 0, -days)
}
