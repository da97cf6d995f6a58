package postgres

import (
	"context"
	"fmt"

	"github.com/efreitasn/tradeops/internal/store"
	"github.com/jackc/pgx/v5"
)

// Store implements store.Store using PostgreSQL.
type Store struct {
	pool *Pool
}

// NewStore creates a new Store on the given pool.
func NewStore(pool *Pool) *Store {
	return &Store{pool: pool}
}

// Compile-time interface checks.
var (
	_ store.Store = (*Store)(nil)
	_ store.Tx    = (*pgTx)(nil)
)

// InTx runs fn in a READ COMMITTED transaction. Row locks taken by
// LockClient and GetHolding serialise concurrent uploads that touch the same
// client.
func (s *Store) InTx(ctx context.Context, fn func(store.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// pgTx implements store.Tx on a pgx transaction.
type pgTx struct {
	tx pgx.Tx
}
