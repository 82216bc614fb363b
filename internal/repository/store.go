// Package repository is the MySQL-backed implementation of the service
// Store. Every method runs on a queryer that is either the connection
// pool or an open transaction, so the same code serves both paths.
package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/movie-catalog/internal/service"
)

// dbtx is the subset of *sql.DB and *sql.Tx the repositories need.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store holds the database handle. A pool-bound Store begins transactions
// in InTx; a tx-bound Store runs nested InTx calls on the same
// transaction.
type Store struct {
	db *sql.DB
	q  dbtx
}

var _ service.Store = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

// InTx runs fn against a transaction-bound Store. The transaction is
// rolled back on any error from fn and committed otherwise. Calls made
// while already inside a transaction join it instead of nesting.
func (s *Store) InTx(ctx context.Context, fn func(service.Store) error) error {
	if _, ok := s.q.(*sql.Tx); ok {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&Store{db: s.db, q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062), used to back the application-level uniqueness pre-checks.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// mapNoRows converts the driver's empty-result sentinel into the
// service-level not-found error.
func mapNoRows(err error) error {
	if err == sql.ErrNoRows {
		return service.ErrNotFound
	}
	return err
}
