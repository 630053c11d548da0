package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/stringvault/internal/filter"
	"github.com/roach88/stringvault/internal/record"
)

// Get retrieves a single record by ID.
// Returns a NotFound error if absent.
func (s *Store) Get(ctx context.Context, id string) (record.StringRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, value, properties, created_at
		FROM strings
		WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return record.StringRecord{}, record.NewNotFoundError(id)
	}
	if err != nil {
		return record.StringRecord{}, fmt.Errorf("get: %w", err)
	}
	return rec, nil
}

// ListAll returns every record in insertion order.
// Returns an empty slice (not nil) if the store is empty.
func (s *Store) ListAll(ctx context.Context) ([]record.StringRecord, error) {
	return s.ListMatching(ctx, filter.Set{})
}

// ListMatching returns the records satisfying set in insertion order.
// The filter is evaluated by SQLite; the result equals
// filter.FilterAll(ListAll, set).Data.
func (s *Store) ListMatching(ctx context.Context, set filter.Set) ([]record.StringRecord, error) {
	query, params, err := s.compiler.Compile(set)
	if err != nil {
		return nil, fmt.Errorf("compile filter: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query strings: %w", err)
	}
	defer rows.Close()

	records := []record.StringRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate strings: %w", err)
	}

	return records, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord scans id, value, properties, created_at into a StringRecord.
func scanRecord(row rowScanner) (record.StringRecord, error) {
	var rec record.StringRecord
	var propsJSON string

	if err := row.Scan(&rec.ID, &rec.Value, &propsJSON, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record.StringRecord{}, err
		}
		return record.StringRecord{}, fmt.Errorf("scan record: %w", err)
	}

	props, err := unmarshalProperties(propsJSON)
	if err != nil {
		return record.StringRecord{}, fmt.Errorf("scan record %s: %w", rec.ID, err)
	}
	rec.Properties = props

	return rec, nil
}
