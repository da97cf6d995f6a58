package store

import (
	"context"
	"fmt"

	"github.com/efreitasn/tradeops/internal/domain"
	"github.com/shopspring/decimal"
)

// CreateClient adds a client with the given opening balance.
func (s *MemoryStore) CreateClient(ctx context.Context, name string, cash decimal.Decimal) (*domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cash.IsNegative() {
		return nil, &domain.ValidationError{Message: "cash_balance must be >= 0"}
	}

	c := domain.Client{
		ID:          s.nextClientID,
		Name:        name,
		CashBalance: cash,
		CreatedAt:   s.now().UTC(),
	}
	s.clients[c.ID] = c
	s.nextClientID++
	return &c, nil
}

// GetClient returns a copy of the client, or domain.ErrClientNotFound.
func (s *MemoryStore) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return &c, nil
}

func (tx *memTx) LockClient(ctx context.Context, id int64) (*domain.Client, error) {
	c, ok := tx.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return &c, nil
}

func (tx *memTx) AdjustCash(ctx context.Context, clientID int64, delta decimal.Decimal) error {
	c, ok := tx.clients[clientID]
	if !ok {
		return fmt.Errorf("adjust cash for client %d: %w", clientID, domain.ErrClientNotFound)
	}
	c.CashBalance = c.CashBalance.Add(delta)
	tx.clients[clientID] = c
	return nil
}
