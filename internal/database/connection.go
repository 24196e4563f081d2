package database

import (
	"context"
	"database/sql"
)

func (db *DB) exec(ctx context.Context, op, query string, args ...any) (sql.Result, error) {
	res, err := db.handle().ExecContext(ctx, query, args...)
	if err != nil {
		return nil, db.observe(op, err)
	}
	return res, nil
}

func (db *DB) query(ctx context.Context, op, query string, args ...any) (*sql.Rows, error) {
	rows, err := db.handle().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, db.observe(op, err)
	}
	return rows, nil
}

// queryRow defers errors to Scan; callers route non-ErrNoRows scan
// failures through observe.
func (db *DB) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.handle().QueryRowContext(ctx, query, args...)
}
