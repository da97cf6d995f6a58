package postgres

import (
	"context"
	"fmt"

	"github.com/efreitasn/tradeops/internal/domain"
)

// ListHoldings returns the client's holdings ordered by symbol.
func (s *Store) ListHoldings(ctx context.Context, clientID int64) ([]domain.Holding, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT client_id, stock_symbol, quantity, updated_at
		FROM holdings
		WHERE client_id = $1
		ORDER BY stock_symbol
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("query holdings: %w", err)
	}
	defer rows.Close()

	result := []domain.Holding{}
	for rows.Next() {
		var h domain.Holding
		if err := rows.Scan(&h.ClientID, &h.StockSymbol, &h.Quantity, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate holdings: %w", err)
	}
	return result, nil
}

func (t *pgTx) GetHolding(ctx context.Context, clientID int64, symbol string) (*domain.Holding, error) {
	var h domain.Holding
	err := t.tx.QueryRow(ctx, `
		SELECT client_id, stock_symbol, quantity, updated_at
		FROM holdings
		WHERE client_id = $1 AND stock_symbol = $2
		FOR UPDATE
	`, clientID, symbol).Scan(&h.ClientID, &h.StockSymbol, &h.Quantity, &h.UpdatedAt)
	if err != nil {
		if isNotFoundError(err) {
			return nil, domain.ErrHoldingNotFound
		}
		return nil, fmt.Errorf("get holding %d/%s: %w", clientID, symbol, err)
	}
	return &h, nil
}

func (t *pgTx) AddHolding(ctx context.Context, clientID int64, symbol string, qty int64) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO holdings (client_id, stock_symbol, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (client_id, stock_symbol)
		DO UPDATE SET quantity = holdings.quantity + EXCLUDED.quantity, updated_at = now()
	`, clientID, symbol, qty)
	if err != nil {
		return fmt.Errorf("upsert holding %d/%s: %w", clientID, symbol, err)
	}
	return nil
}

func (t *pgTx) RemoveHolding(ctx context.Context, clientID int64, symbol string, qty int64) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE holdings
		SET quantity = quantity - $1, updated_at = now()
		WHERE client_id = $2 AND stock_symbol = $3 AND quantity >= $1
	`, qty, clientID, symbol)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("remove %d %s from client %d: %w", qty, symbol, clientID, domain.ErrInsufficientHoldings)
		}
		return fmt.Errorf("decrement holding %d/%s: %w", clientID, symbol, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("remove %d %s from client %d: %w", qty, symbol, clientID, domain.ErrInsufficientHoldings)
	}
	return nil
}
