// Package importer parses ledger statement CSV files into finance entries.
// The expected shape is semicolon-delimited with a Date;Type;Category;Amount
// header somewhere near the top; exports tend to prepend account metadata
// rows, so the header is searched for rather than assumed at line one.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/mfontes/ohm/internal/encoding"
	"github.com/mfontes/ohm/internal/finance"
)

const (
	colDate     = "date"
	colType     = "type"
	colCategory = "category"
	colAmount   = "amount"
)

const dateLayout = "02-01-2006"

// typeAliases maps statement type labels to ledger entry types. Tools are
// not consistent about naming income.
var typeAliases = map[string]finance.Type{
	"revenue":  finance.TypeRevenue,
	"income":   finance.TypeRevenue,
	"sale":     finance.TypeRevenue,
	"expense":  finance.TypeExpense,
	"purchase": finance.TypePurchase,
	"payroll":  finance.TypePayroll,
	"salary":   finance.TypePayroll,
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Import reads a ledger CSV and returns entry params ready for
// finance.Service.RecordBatch. Rows that do not parse as ledger lines
// (footers, metadata, malformed dates) are skipped rather than failing the
// whole file.
func (s *Service) Import(r io.Reader) ([]finance.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	cols, headerIdx := findHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no ledger header found: expected date, type and amount columns")
	}

	var params []finance.CreateParams

	for _, row := range rows[headerIdx+1:] {
		p, ok := parseRow(cols, row)
		if !ok {
			continue
		}

		params = append(params, p)
	}

	return params, nil
}

// colIndex maps lowercased column names to their position in the row.
type colIndex map[string]int

// findHeader scans for the first row carrying at least the date, type and
// amount columns. Category is optional; missing categories default to the
// entry type downstream.
func findHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		_, hasDate := cols[colDate]
		_, hasType := cols[colType]
		_, hasAmount := cols[colAmount]

		if hasDate && hasType && hasAmount {
			return cols, rowIdx
		}
	}

	return nil, 0
}

func parseRow(cols colIndex, row []string) (finance.CreateParams, bool) {
	cell := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[idx])
	}

	date, err := time.Parse(dateLayout, cell(colDate))
	if err != nil {
		// Footer or metadata row.
		return finance.CreateParams{}, false
	}

	typ, ok := typeAliases[strings.ToLower(cell(colType))]
	if !ok {
		return finance.CreateParams{}, false
	}

	amount, err := parseAmount(cell(colAmount))
	if err != nil {
		return finance.CreateParams{}, false
	}

	// The ledger stores magnitudes; the sign belongs to the type.
	if amount < 0 {
		amount = -amount
	}

	return finance.CreateParams{
		Type:     typ,
		Amount:   amount,
		Category: cell(colCategory),
		Date:     date,
	}, true
}
