package postgres

import (
	"context"
	"fmt"

	"github.com/efreitasn/tradeops/internal/domain"
	"github.com/shopspring/decimal"
)

const clientColumns = `id, name, cash_balance, created_at`

// CreateClient inserts a client with an opening balance.
func (s *Store) CreateClient(ctx context.Context, name string, cash decimal.Decimal) (*domain.Client, error) {
	if cash.IsNegative() {
		return nil, &domain.ValidationError{Message: "cash_balance must be >= 0"}
	}

	var c domain.Client
	err := s.pool.QueryRow(ctx,
		`INSERT INTO clients (name, cash_balance) VALUES ($1, $2) RETURNING `+clientColumns,
		name, cash,
	).Scan(&c.ID, &c.Name, &c.CashBalance, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return &c, nil
}

// GetClient returns domain.ErrClientNotFound if no row matches.
func (s *Store) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	var c domain.Client
	err := s.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.CashBalance, &c.CreatedAt)
	if err != nil {
		if isNotFoundError(err) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("get client %d: %w", id, err)
	}
	return &c, nil
}

func (t *pgTx) LockClient(ctx context.Context, id int64) (*domain.Client, error) {
	var c domain.Client
	err := t.tx.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1 FOR UPDATE`, id,
	).Scan(&c.ID, &c.Name, &c.CashBalance, &c.CreatedAt)
	if err != nil {
		if isNotFoundError(err) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("lock client %d: %w", id, err)
	}
	return &c, nil
}

func (t *pgTx) AdjustCash(ctx context.Context, clientID int64, delta decimal.Decimal) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE clients SET cash_balance = cash_balance + $1 WHERE id = $2`,
		delta, clientID,
	)
	if err != nil {
		return fmt.Errorf("adjust cash for client %d: %w", clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("adjust cash for client %d: %w", clientID, domain.ErrClientNotFound)
	}
	return nil
}
