package store

import (
	"context"

	"github.com/efreitasn/tradeops/internal/domain"
	"github.com/shopspring/decimal"
)

// ListTrades walks the ledger newest first and returns copies of the rows
// matching filter. Returns an empty slice if nothing matches.
func (s *MemoryStore) ListTrades(ctx context.Context, filter TradeFilter) ([]*domain.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*domain.Trade{}
	s.trades.Ascend(func(t *domain.Trade) bool {
		if !filter.Match(t) {
			return true
		}
		cp := *t
		if t.ClientID != nil {
			if c, ok := s.clients[*t.ClientID]; ok {
				name := c.Name
				cp.ClientName = &name
			}
		}
		result = append(result, &cp)
		return true
	})
	return result, nil
}

// Stats sums settled value and commission and counts failed rows.
func (s *MemoryStore) Stats(ctx context.Context) (domain.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := domain.Stats{
		TotalVolumeSettled:     decimal.Zero,
		TotalCommissionsEarned: decimal.Zero,
	}
	s.trades.Ascend(func(t *domain.Trade) bool {
		switch t.Status {
		case domain.StatusSettled:
			stats.TotalVolumeSettled = stats.TotalVolumeSettled.Add(t.TotalValue)
			stats.TotalCommissionsEarned = stats.TotalCommissionsEarned.Add(t.Commission)
		case domain.StatusFailed:
			stats.FailedTradeCount++
		}
		return true
	})
	return stats, nil
}

func (tx *memTx) InsertTrade(ctx context.Context, t *domain.Trade) error {
	t.ID = tx.nextTradeID
	t.CreatedAt = tx.now().UTC()
	tx.nextTradeID++

	// Store a private copy; the ledger is write-once.
	cp := *t
	cp.ClientName = nil
	tx.trades.ReplaceOrInsert(&cp)
	return nil
}
