package repositories

import (
	"context"
	"database/sql"
)

type txKey struct{}

// sqlTx is satisfied by both *sql.DB and *sql.Tx.
type sqlTx interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func injectTx(ctx context.Context, db sqlTx) context.Context {
	return context.WithValue(ctx, txKey{}, db)
}

func (r *Repository) extractTxWrite(ctx context.Context) sqlTx {
	if db, ok := ctx.Value(txKey{}).(sqlTx); ok {
		return db
	}
	return r.dbWrite
}

// extractTxRead prefers the running transaction so reads inside Atomic see
// their own writes.
func (r *Repository) extractTxRead(ctx context.Context) sqlTx {
	if db, ok := ctx.Value(txKey{}).(sqlTx); ok {
		return db
	}
	return r.dbRead
}
