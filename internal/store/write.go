package store

import (
	"context"
	"fmt"

	"github.com/roach88/stringvault/internal/record"
)

// Put inserts a record if no record with the same ID exists.
// Uses ON CONFLICT(id) DO NOTHING so the existence check and the insert are
// one statement; a conflict returns a DuplicateIdentity error.
func (s *Store) Put(ctx context.Context, rec record.StringRecord) error {
	propsJSON, err := marshalProperties(rec.Properties)
	if err != nil {
		return fmt.Errorf("put: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO strings
		(id, value, length, is_palindrome, unique_characters, word_count, properties, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.Value,
		rec.Properties.Length,
		rec.Properties.IsPalindrome,
		rec.Properties.UniqueCharacters,
		rec.Properties.WordCount,
		propsJSON,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("put: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("put: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return record.NewDuplicateError(rec.ID)
	}

	return nil
}

// Delete removes the record with the given ID.
// Returns a NotFound error if no row was deleted.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM strings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return record.NewNotFoundError(id)
	}

	return nil
}
