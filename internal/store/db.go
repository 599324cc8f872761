package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
	"go.uber.org/zap"
)

// NewDB opens a DuckDB database. Use ":memory:" for an in-memory database.
func NewDB(path string) (*sql.DB, error) {
	dsn := path
	if path == ":memory:" {
		dsn = ""
	}
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open database %q: %w", path, err)
	}
	return db, nil
}

// QueryInterceptor wraps *sql.DB and logs every statement at debug level.
type QueryInterceptor struct {
	db *sql.DB
}

func NewQueryInterceptor(db *sql.DB) QueryInterceptor {
	return QueryInterceptor{db: db}
}

func (q QueryInterceptor) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	logQuery("QueryRowContext", query, args)
	return q.db.QueryRowContext(ctx, query, args...)
}

func (q QueryInterceptor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	logQuery("QueryContext", query, args)
	return q.db.QueryContext(ctx, query, args...)
}

func (q QueryInterceptor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	logQuery("ExecContext", query, args)
	return q.db.ExecContext(ctx, query, args...)
}

// WithTx runs fn in a transaction, committed when fn returns nil.
func (q QueryInterceptor) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	sqlTx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(Tx{tx: sqlTx}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	return sqlTx.Commit()
}

// Tx is a logged transaction.
type Tx struct {
	tx *sql.Tx
}

func (t Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	logQuery("Tx.ExecContext", query, args)
	return t.tx.ExecContext(ctx, query, args...)
}

func logQuery(op, query string, args []any) {
	zap.S().Named("store").Debugw(op, "query", query, "args", args)
}
