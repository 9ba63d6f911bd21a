// Package database is the storage collaborator: the FlexiMart relational
// schema on PostgreSQL, dependency-ordered truncation, per-stream
// transactional inserts, and the natural-key -> surrogate-key lookups the
// reconciler depends on.
package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Queries exposes the individual SQL statements against any DBTX.
type Queries struct {
	db DBTX
}

// New creates a Queries bound to the given connection, pool, or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}
