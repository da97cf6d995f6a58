package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/efreitasn/tradeops/internal/domain"
	"github.com/efreitasn/tradeops/internal/store"
	"github.com/jackc/pgx/v5"
)

// ListTrades returns ledger rows joined with the client name, newest first.
func (s *Store) ListTrades(ctx context.Context, filter store.TradeFilter) ([]*domain.Trade, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("t.status = $%d", len(args)))
	}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		conds = append(conds, fmt.Sprintf("t.client_id = $%d", len(args)))
	}
	if filter.BatchID != "" {
		args = append(args, filter.BatchID)
		conds = append(conds, fmt.Sprintf("t.batch_id = $%d", len(args)))
	}

	query := `
		SELECT t.id, t.batch_id::text, t.client_id, c.name, t.stock_symbol, t.type,
		       t.quantity, t.price, t.total_value, t.commission,
		       t.trade_date, t.settlement_date, t.status, t.failure_reason, t.created_at
		FROM trades t
		LEFT JOIN clients c ON c.id = t.client_id
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY t.created_at DESC, t.id DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	result := []*domain.Trade{}
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trades: %w", err)
	}
	return result, nil
}

// Stats aggregates the whole ledger in one query.
func (s *Store) Stats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	err := s.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'SETTLED' THEN total_value ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'SETTLED' THEN commission ELSE 0 END), 0),
			COUNT(*) FILTER (WHERE status = 'FAILED')
		FROM trades
	`).Scan(&stats.TotalVolumeSettled, &stats.TotalCommissionsEarned, &stats.FailedTradeCount)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("query stats: %w", err)
	}
	return stats, nil
}

func (t *pgTx) InsertTrade(ctx context.Context, tr *domain.Trade) error {
	var batchID *string
	if tr.BatchID != "" {
		batchID = &tr.BatchID
	}

	err := t.tx.QueryRow(ctx, `
		INSERT INTO trades (
			batch_id, client_id, stock_symbol, type, quantity, price,
			total_value, commission, trade_date, settlement_date, status, failure_reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`,
		batchID, tr.ClientID, tr.StockSymbol, string(tr.Type), tr.Quantity, tr.Price,
		tr.TotalValue, tr.Commission, tr.TradeDate, tr.SettlementDate, string(tr.Status), tr.FailureReason,
	).Scan(&tr.ID, &tr.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert trade: %w", err)
	}
	return nil
}

func scanTrade(row pgx.Row) (*domain.Trade, error) {
	var (
		t       domain.Trade
		batchID *string
		side    string
		status  string
	)
	err := row.Scan(
		&t.ID, &batchID, &t.ClientID, &t.ClientName, &t.StockSymbol, &side,
		&t.Quantity, &t.Price, &t.TotalValue, &t.Commission,
		&t.TradeDate, &t.SettlementDate, &status, &t.FailureReason, &t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan trade: %w", err)
	}
	if batchID != nil {
		t.BatchID = *batchID
	}
	t.Type = domain.Side(side)
	t.Status = domain.Status(status)
	return &t, nil
}
