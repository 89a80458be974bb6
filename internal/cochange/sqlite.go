package cochange

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/huangsam/cogload/schema"
	_ "modernc.org/sqlite" // CGo-free SQLite driver
)

// cochangeQuery reads every record in a stable order. The table shape matches
// what the exporter side writes: one row per unit per coordinated edit.
const cochangeQuery = `SELECT unit, timestamp FROM cochange ORDER BY timestamp, unit`

// SQLiteSource reads co-change records from a SQLite database produced by a
// VCS history exporter.
type SQLiteSource struct {
	Path string
}

// Fetch implements contract.CoChangeSource.
func (s *SQLiteSource) Fetch(ctx context.Context) ([]schema.CoChangeRecord, error) {
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot open co-change database: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, cochangeQuery)
	if err != nil {
		return nil, fmt.Errorf("querying co-change database %s: %w", s.Path, err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.CoChangeRecord
	for rows.Next() {
		var rec schema.CoChangeRecord
		if err := rows.Scan(&rec.Unit, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning co-change row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading co-change database %s: %w", s.Path, err)
	}
	return records, nil
}
