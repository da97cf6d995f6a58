package service

import (
	"context"

	"github.com/efreitasn/tradeops/internal/domain"
	"github.com/efreitasn/tradeops/internal/store"
)

// ClientPosition is a client's balance together with its holdings.
type ClientPosition struct {
	Client   *domain.Client
	Holdings []domain.Holding
}

// ReportService answers the dashboard's read queries. Every call goes
// straight to the store; nothing is cached.
type ReportService struct {
	store store.Store
}

// NewReportService creates a new ReportService.
func NewReportService(st store.Store) *ReportService {
	return &ReportService{store: st}
}

// ListTrades returns the ledger newest first.
func (s *ReportService) ListTrades(ctx context.Context, filter store.TradeFilter) ([]*domain.Trade, error) {
	return s.store.ListTrades(ctx, filter)
}

// Stats returns settled volume, commission earned and failed count.
func (s *ReportService) Stats(ctx context.Context) (domain.Stats, error) {
	return s.store.Stats(ctx)
}

// GetClient returns the client's balance and holdings, or
// domain.ErrClientNotFound.
func (s *ReportService) GetClient(ctx context.Context, id int64) (*ClientPosition, error) {
	c, err := s.store.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	holdings, err := s.store.ListHoldings(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ClientPosition{Client: c, Holdings: holdings}, nil
}

// Ping checks the store is reachable.
func (s *ReportService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
