package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mfontes/ohm/internal/finance"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectEntryColumns = `id, type, amount, category, date, created_at`

func (s *Store) ListSince(ctx context.Context, from time.Time, typ *finance.Type) ([]*finance.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM finance_entries
		WHERE date >= $1`

	args := []any{from}

	if typ != nil {
		query += " AND type = $2"

		args = append(args, string(*typ))
	}

	query += " ORDER BY date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing finance entries: %w", err)
	}
	defer rows.Close()

	var entries []*finance.Entry

	for rows.Next() {
		var e finance.Entry

		var typeStr string

		if err := rows.Scan(&e.ID, &typeStr, &e.Amount, &e.Category, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning finance entry: %w", err)
		}

		e.Type = finance.Type(typeStr)

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating finance entry rows: %w", err)
	}

	return entries, nil
}

func (s *Store) CreateEntry(ctx context.Context, e *finance.Entry) error {
	query := `
		INSERT INTO finance_entries (type, amount, category, date, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		string(e.Type),
		e.Amount,
		e.Category,
		e.Date,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating finance entry: %w", err)
	}

	return nil
}

// CreateEntries inserts a batch inside one database transaction so a partial
// import never lands in the ledger.
func (s *Store) CreateEntries(ctx context.Context, entries []*finance.Entry) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO finance_entries (type, amount, category, date, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	for _, e := range entries {
		err := dbTx.QueryRowContext(ctx, query,
			string(e.Type),
			e.Amount,
			e.Category,
			e.Date,
		).Scan(&e.ID, &e.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating finance entry: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
