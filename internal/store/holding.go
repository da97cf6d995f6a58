package store

import (
	"context"
	"fmt"
	"math"

	"github.com/efreitasn/tradeops/internal/domain"
)

// ListHoldings returns the client's holdings ordered by symbol.
func (s *MemoryStore) ListHoldings(ctx context.Context, clientID int64) ([]domain.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []domain.Holding{}
	s.holdings.AscendRange(
		domain.Holding{ClientID: clientID},
		domain.Holding{ClientID: clientID + 1},
		func(h domain.Holding) bool {
			result = append(result, h)
			return true
		},
	)
	return result, nil
}

func (tx *memTx) GetHolding(ctx context.Context, clientID int64, symbol string) (*domain.Holding, error) {
	h, ok := tx.holdings.Get(domain.Holding{ClientID: clientID, StockSymbol: symbol})
	if !ok {
		return nil, domain.ErrHoldingNotFound
	}
	return &h, nil
}

func (tx *memTx) AddHolding(ctx context.Context, clientID int64, symbol string, qty int64) error {
	key := domain.Holding{ClientID: clientID, StockSymbol: symbol}
	h, ok := tx.holdings.Get(key)
	if !ok {
		h = key
	}
	if qty > math.MaxInt64-h.Quantity {
		return fmt.Errorf("add %d %s to client %d: holding quantity overflows", qty, symbol, clientID)
	}
	h.Quantity += qty
	h.UpdatedAt = tx.now().UTC()
	tx.holdings.ReplaceOrInsert(h)
	return nil
}

func (tx *memTx) RemoveHolding(ctx context.Context, clientID int64, symbol string, qty int64) error {
	h, ok := tx.holdings.Get(domain.Holding{ClientID: clientID, StockSymbol: symbol})
	if !ok || h.Quantity < qty {
		return fmt.Errorf("remove %d %s from client %d: %w", qty, symbol, clientID, domain.ErrInsufficientHoldings)
	}
	h.Quantity -= qty
	h.UpdatedAt = tx.now().UTC()
	tx.holdings.ReplaceOrInsert(h)
	return nil
}
