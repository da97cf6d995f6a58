package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/tradeops/internal/domain"
	"github.com/efreitasn/tradeops/internal/engine"
	"github.com/efreitasn/tradeops/internal/feed"
	"github.com/efreitasn/tradeops/internal/observability"
)

// BatchResult summarises one uploaded batch.
type BatchResult struct {
	BatchID   string
	Total     int
	Processed int
	Failed    int
	Trades    []*domain.Trade // in upload order
}

// Message is the human-readable summary returned to the uploader.
func (r *BatchResult) Message() string {
	return fmt.Sprintf("Processed %d trade orders. %d settled, %d failed.", r.Total, r.Processed, r.Failed)
}

// SettlementService drives the settlement pipeline over an uploaded batch.
type SettlementService struct {
	settler  *engine.Settler
	notifier *Notifier
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewSettlementService creates a new SettlementService. notifier may be nil.
func NewSettlementService(
	settler *engine.Settler,
	notifier *Notifier,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *SettlementService {
	return &SettlementService{
		settler:  settler,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

// ProcessFile decodes an XML trades document and settles its orders.
// Returns domain.ErrNoOrders if the document holds no orders.
func (s *SettlementService) ProcessFile(ctx context.Context, r io.Reader) (*BatchResult, error) {
	raws, err := feed.Decode(r)
	if err != nil {
		return nil, err
	}
	return s.ProcessOrders(ctx, raws)
}

// ProcessOrders settles raws strictly in order, one transaction per order,
// so each order sees the committed effects of the ones before it. A
// per-order failure never stops the batch; an error is returned only when
// the store can no longer record outcomes, and orders already committed
// stay committed.
func (s *SettlementService) ProcessOrders(ctx context.Context, raws []feed.RawOrder) (*BatchResult, error) {
	if len(raws) == 0 {
		return nil, domain.ErrNoOrders
	}

	start := time.Now()
	result := &BatchResult{
		BatchID: uuid.New().String(),
		Total:   len(raws),
		Trades:  make([]*domain.Trade, 0, len(raws)),
	}

	for _, o := range feed.NormalizeAll(raws) {
		out, err := s.settler.Settle(ctx, result.BatchID, o)
		if err != nil {
			return nil, fmt.Errorf("settle batch %s: %w", result.BatchID, err)
		}
		result.Trades = append(result.Trades, out.Trade)
		s.observe(out)

		if out.Settled() {
			result.Processed++
		} else {
			result.Failed++
		}
	}

	s.metrics.BatchesTotal.Inc()
	s.metrics.BatchSize.Observe(float64(result.Total))
	s.metrics.BatchDuration.Observe(time.Since(start).Seconds())

	s.logger.Info("batch settled",
		slog.String("batch_id", result.BatchID),
		slog.Int("total", result.Total),
		slog.Int("processed", result.Processed),
		slog.Int("failed", result.Failed),
		slog.Duration("duration", time.Since(start)),
	)

	s.notifier.BatchCompleted(result)
	return result, nil
}

func (s *SettlementService) observe(out engine.Result) {
	if out.Err != nil {
		s.metrics.ProcessingErrs.Inc()
	}
	if out.Settled() {
		s.metrics.OrdersSettled.Inc()
		s.metrics.SettledVolume.Add(out.Trade.TotalValue.InexactFloat64())
		s.metrics.CommissionTotal.Add(out.Trade.Commission.InexactFloat64())
		return
	}
	reason := ""
	if out.Trade.FailureReason != nil {
		reason = *out.Trade.FailureReason
	}
	s.metrics.OrdersFailed.WithLabelValues(reason).Inc()
}
