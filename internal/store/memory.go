package store

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/efreitasn/tradeops/internal/domain"
	"github.com/google/btree"
)

const btreeDegree = 32

// holdingLess orders holdings by client then symbol, so one client's
// holdings are contiguous.
func holdingLess(a, b domain.Holding) bool {
	if a.ClientID != b.ClientID {
		return a.ClientID < b.ClientID
	}
	return a.StockSymbol < b.StockSymbol
}

// tradeLess orders the ledger newest first: created_at descending, then
// id descending.
func tradeLess(a, b *domain.Trade) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// MemoryStore is a thread-safe in-memory Store. Transactions are serialised
// by a single mutex and work on copy-on-write clones of the B-trees, which
// are swapped in only when the transaction function succeeds.
type MemoryStore struct {
	mu           sync.Mutex
	now          func() time.Time
	clients      map[int64]domain.Client
	holdings     *btree.BTreeG[domain.Holding]
	trades       *btree.BTreeG[*domain.Trade]
	nextClientID int64
	nextTradeID  int64
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:          time.Now,
		clients:      make(map[int64]domain.Client),
		holdings:     btree.NewG[domain.Holding](btreeDegree, holdingLess),
		trades:       btree.NewG[*domain.Trade](btreeDegree, tradeLess),
		nextClientID: 1,
		nextTradeID:  1,
	}
}

// InTx runs fn against a private snapshot and commits it on success.
func (s *MemoryStore) InTx(ctx context.Context, fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{
		now:         s.now,
		clients:     maps.Clone(s.clients),
		holdings:    s.holdings.Clone(),
		trades:      s.trades.Clone(),
		nextTradeID: s.nextTradeID,
	}
	if err := fn(tx); err != nil {
		return err
	}

	s.clients = tx.clients
	s.holdings = tx.holdings
	s.trades = tx.trades
	s.nextTradeID = tx.nextTradeID
	return nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// memTx is the Tx handed to InTx callbacks. It is only used while the
// store mutex is held.
type memTx struct {
	now         func() time.Time
	clients     map[int64]domain.Client
	holdings    *btree.BTreeG[domain.Holding]
	trades      *btree.BTreeG[*domain.Trade]
	nextTradeID int64
}

var _ Tx = (*memTx)(nil)
