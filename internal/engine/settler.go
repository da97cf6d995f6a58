// Package engine applies normalized trade orders to client accounts.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/efreitasn/tradeops/internal/domain"
	"github.com/efreitasn/tradeops/internal/feed"
	"github.com/efreitasn/tradeops/internal/store"
	"github.com/shopspring/decimal"
)

// Result is the outcome of settling one order.
type Result struct {
	// Trade is the ledger row that was written. Its Status tells whether the
	// order settled.
	Trade *domain.Trade
	// Err is the unexpected error that rolled back the order's transaction,
	// if any. Trade is then FAILED with domain.ReasonProcessingError.
	Err error
}

// Settled reports whether the order's balance and holding mutations committed.
func (r Result) Settled() bool {
	return r.Trade != nil && r.Trade.Status == domain.StatusSettled
}

// Settler runs the per-order settlement pipeline: validate against current
// account state, mutate cash and holdings, and append the ledger row, all in
// one transaction.
type Settler struct {
	store  store.Store
	logger *slog.Logger
}

// NewSettler creates a new Settler with the given dependencies.
func NewSettler(st store.Store, logger *slog.Logger) *Settler {
	return &Settler{
		store:  st,
		logger: logger,
	}
}

// Settle processes one order under its own transaction.
//
// Business failures (unknown client, insufficient funds or holdings, bad
// side, unparseable fields) are recorded on a FAILED row in the same
// transaction. An unexpected error rolls the transaction back in full and a
// FAILED "Processing error" row is then written in a second transaction, so
// every order leaves exactly one row. Settle only returns an error when that
// second write fails too; the caller should treat the store as unusable.
func (s *Settler) Settle(ctx context.Context, batchID string, o feed.Order) (Result, error) {
	trade := newTrade(batchID, o)

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		return s.apply(ctx, tx, o, trade)
	})
	if err == nil {
		s.logger.Debug("order recorded",
			slog.Int("order", o.Index),
			slog.Int64("trade_id", trade.ID),
			slog.String("status", string(trade.Status)),
		)
		return Result{Trade: trade}, nil
	}

	s.logger.Error("order processing error",
		slog.String("batch_id", batchID),
		slog.Int("order", o.Index),
		clientAttr(o),
		slog.String("error", err.Error()),
	)

	// The audit row must be writable whatever broke the first attempt, so
	// it carries no amounts.
	trade.ID = 0
	trade.Price = decimal.Zero
	trade.TotalValue = decimal.Zero
	trade.Commission = decimal.Zero
	trade.Fail(domain.ReasonProcessingError)
	werr := s.store.InTx(ctx, func(tx store.Tx) error {
		return tx.InsertTrade(ctx, trade)
	})
	if werr != nil {
		return Result{Trade: trade, Err: err}, fmt.Errorf("record failed order %d: %w", o.Index, errors.Join(err, werr))
	}
	return Result{Trade: trade, Err: err}, nil
}

// apply validates the order against the locked client and writes the
// mutations and the ledger row through tx.
func (s *Settler) apply(ctx context.Context, tx store.Tx, o feed.Order, trade *domain.Trade) error {
	if !o.Valid() {
		trade.Fail(domain.ReasonInvalidOrder)
		return tx.InsertTrade(ctx, trade)
	}

	client, err := tx.LockClient(ctx, *o.ClientID)
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		trade.Fail(domain.ReasonClientNotFound)
	case err != nil:
		return err
	default:
		if err := s.route(ctx, tx, client, o, trade); err != nil {
			return err
		}
	}

	return tx.InsertTrade(ctx, trade)
}

// route dispatches on side. BUY debits value plus commission and adds to the
// holding; SELL checks the holding, credits value less commission and
// decrements it.
func (s *Settler) route(ctx context.Context, tx store.Tx, client *domain.Client, o feed.Order, trade *domain.Trade) error {
	switch o.Side {
	case domain.SideBuy:
		cost := domain.BuyCost(trade.TotalValue)
		if client.CashBalance.LessThan(cost) {
			trade.Fail(domain.ReasonInsufficientFunds)
			return nil
		}
		if err := tx.AdjustCash(ctx, client.ID, cost.Neg()); err != nil {
			return err
		}
		if err := tx.AddHolding(ctx, client.ID, o.StockSymbol, o.Quantity); err != nil {
			return err
		}

	case domain.SideSell:
		h, err := tx.GetHolding(ctx, client.ID, o.StockSymbol)
		if errors.Is(err, domain.ErrHoldingNotFound) || (err == nil && h.Quantity < o.Quantity) {
			trade.Fail(domain.ReasonInsufficientHoldings)
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.AdjustCash(ctx, client.ID, domain.SellProceeds(trade.TotalValue)); err != nil {
			return err
		}
		if err := tx.RemoveHolding(ctx, client.ID, o.StockSymbol, o.Quantity); err != nil {
			return err
		}

	default:
		trade.Fail(domain.ReasonInvalidSide)
		return nil
	}

	trade.Settle()
	return nil
}

func clientAttr(o feed.Order) slog.Attr {
	if o.ClientID == nil {
		return slog.Any("client_id", nil)
	}
	return slog.Int64("client_id", *o.ClientID)
}

// newTrade builds the ledger row for o with computed value, commission and
// settlement date. Fields that did not parse stay zero or nil.
func newTrade(batchID string, o feed.Order) *domain.Trade {
	total := domain.TotalValue(o.Price, o.Quantity)
	t := &domain.Trade{
		BatchID:     batchID,
		ClientID:    o.ClientID,
		StockSymbol: o.StockSymbol,
		Type:        o.Side,
		Quantity:    o.Quantity,
		Price:       o.Price,
		TotalValue:  total,
		Commission:  domain.Commission(total),
		TradeDate:   o.TradeDate,
		Status:      domain.StatusSettled,
	}
	if o.TradeDate != nil {
		sd := domain.SettlementDate(*o.TradeDate)
		t.SettlementDate = &sd
	}
	return t
}
