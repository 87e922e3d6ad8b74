package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mfontes/ohm/internal/audit"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, rec *audit.Record) error {
	query := `
		INSERT INTO audit_records (feature, input_hash, input_snapshot, output_summary, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		rec.Feature,
		rec.InputHash,
		rec.InputSnapshot,
		rec.OutputSummary,
		rec.Confidence,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending audit record: %w", err)
	}

	return nil
}
