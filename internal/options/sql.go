// internal/options/sql.go
//
// SQL-backed option store.
//
// Schema reference
//
//	CREATE TABLE options (
//	    option_name   VARCHAR(191) NOT NULL PRIMARY KEY,
//	    option_value  LONGTEXT     NOT NULL
//	);
//
// Notes
// -----
//   - Keys are case-sensitive.
//   - Errors are returned verbatim apart from sql.ErrNoRows → ErrNotFound;
//     callers wrap or log them.
package options

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLStore reads and writes the `options` table.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps an open pool.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Get returns the value stored for key.
func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT option_value FROM options WHERE option_name = ? LIMIT 1`

	var val string
	err := s.db.GetContext(ctx, &val, q, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("options get %s: %w", key, err)
	}
	return val, nil
}

// Set upserts key.
func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	const q = `INSERT INTO options (option_name, option_value) VALUES (?, ?)
	           ON DUPLICATE KEY UPDATE option_value = VALUES(option_value)`

	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("options set %s: %w", key, err)
	}
	return nil
}
