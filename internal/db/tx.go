package db

import "database/sql"

// WithTx runs fn in a transaction, committing if fn succeeds and rolling back
// otherwise. fn must only use tx since the pool holds a single connection.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// NullInt64Value returns n, or 0 for NULL (e.g. MAX over no rows).
func NullInt64Value(n sql.NullInt64) int64 {
	if n.Valid {
		return n.Int64
	}
	return 0
}

// NullStringValue returns n, or "" for NULL.
func NullStringValue(n sql.NullString) string {
	if n.Valid {
		return n.String
	}
	return ""
}
