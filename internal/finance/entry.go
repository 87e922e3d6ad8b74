package finance

import (
	"time"

	"github.com/google/uuid"
)

// Type labels a ledger entry. The sign of an entry's cash movement is
// derived from its type: revenue flows in, everything else flows out. The
// stored amount is always a non-negative magnitude.
type Type string

const (
	TypeRevenue  Type = "revenue"
	TypeExpense  Type = "expense"
	TypePurchase Type = "purchase"
	TypePayroll  Type = "payroll"
)

// Entry is one immutable ledger line. Entries come from manual bookkeeping
// or from downstream sale/purchase events; nothing updates them afterwards.
type Entry struct {
	ID        uuid.UUID
	Type      Type
	Amount    int64 // Amount in cents, always >= 0
	Category  string
	Date      time.Time
	CreatedAt time.Time
}

// Inflow reports whether the entry moves money into the business.
func (e *Entry) Inflow() bool {
	return e.Type == TypeRevenue
}

// PnL is a profit-and-loss rollup over a period. ByCategory nets every
// entry into its category with revenue positive and everything else
// negative, so a category total can be below zero.
type PnL struct {
	Revenue    int64
	Expenses   int64
	NetProfit  int64
	ByCategory []CategoryTotal
}

type CategoryTotal struct {
	Category string
	Amount   int64
}

// DayFlow is one calendar day of cash movement. Date is the day portion
// only, formatted as 2006-01-02.
type DayFlow struct {
	Date    string
	Inflow  int64
	Outflow int64
}
