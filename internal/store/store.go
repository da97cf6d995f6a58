// Package store persists clients, holdings and the trade ledger.
//
// The Store and Tx interfaces are implemented by MemoryStore in this package
// and by the pgx-backed store in store/postgres.
package store

import (
	"context"

	"github.com/efreitasn/tradeops/internal/domain"
	"github.com/shopspring/decimal"
)

// Store is the data-access handle injected into services and handlers.
type Store interface {
	// InTx runs fn inside one atomic unit of work. If fn returns an error
	// every write made through the Tx is discarded.
	InTx(ctx context.Context, fn func(Tx) error) error

	CreateClient(ctx context.Context, name string, cash decimal.Decimal) (*domain.Client, error)
	GetClient(ctx context.Context, id int64) (*domain.Client, error)
	ListHoldings(ctx context.Context, clientID int64) ([]domain.Holding, error)

	// ListTrades returns ledger rows newest first, with ClientName filled in
	// when the client exists.
	ListTrades(ctx context.Context, filter TradeFilter) ([]*domain.Trade, error)
	Stats(ctx context.Context) (domain.Stats, error)

	Ping(ctx context.Context) error
}

// Tx is the set of operations available to one settlement unit of work.
type Tx interface {
	// LockClient loads a client and holds it for the rest of the Tx.
	// Returns domain.ErrClientNotFound if the client does not exist.
	LockClient(ctx context.Context, id int64) (*domain.Client, error)

	// AdjustCash adds delta (which may be negative) to the client's balance.
	AdjustCash(ctx context.Context, clientID int64, delta decimal.Decimal) error

	// GetHolding returns domain.ErrHoldingNotFound if the client has never
	// held the symbol.
	GetHolding(ctx context.Context, clientID int64, symbol string) (*domain.Holding, error)

	// AddHolding creates the holding with qty or increments an existing one.
	AddHolding(ctx context.Context, clientID int64, symbol string, qty int64) error

	// RemoveHolding decrements a holding by qty. Returns
	// domain.ErrInsufficientHoldings instead of going below zero.
	RemoveHolding(ctx context.Context, clientID int64, symbol string, qty int64) error

	// InsertTrade appends a ledger row and sets t.ID and t.CreatedAt.
	InsertTrade(ctx context.Context, t *domain.Trade) error
}

// TradeFilter narrows ListTrades. Zero values match everything.
type TradeFilter struct {
	Status   domain.Status
	ClientID *int64
	BatchID  string
}

// Match reports whether t passes the filter.
func (f TradeFilter) Match(t *domain.Trade) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.ClientID != nil && (t.ClientID == nil || *t.ClientID != *f.ClientID) {
		return false
	}
	if f.BatchID != "" && t.BatchID != f.BatchID {
		return false
	}
	return true
}
