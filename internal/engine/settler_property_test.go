package engine

import (
	"context"
	"strconv"
	"testing"

	"github.com/efreitasn/tradeops/internal/domain"
	"github.com/efreitasn/tradeops/internal/feed"
	"github.com/efreitasn/tradeops/internal/store"
	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

// genRawOrder draws an order for client 1 over a small symbol set so that
// buys and sells collide on the same holding.
func genRawOrder() *rapid.Generator[feed.RawOrder] {
	return rapid.Custom(func(t *rapid.T) feed.RawOrder {
		cents := rapid.Int64Range(1, 50_000).Draw(t, "priceCents")
		return feed.RawOrder{
			ClientID:    "1",
			StockSymbol: rapid.SampledFrom([]string{"AAPL", "MSFT"}).Draw(t, "symbol"),
			Type:        rapid.SampledFrom([]string{"BUY", "SELL"}).Draw(t, "side"),
			Quantity:    strconv.Itoa(rapid.IntRange(1, 50).Draw(t, "qty")),
			Price:       decimal.New(cents, -2).String(),
			TradeDate:   "2024-03-01",
		}
	})
}

func TestProperty_SettlementConservesCashAndHoldings(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		st := store.NewMemoryStore()
		startCash := decimal.New(rapid.Int64Range(0, 5_000_000).Draw(t, "startCents"), -2)
		if _, err := st.CreateClient(ctx, "Prop", startCash); err != nil {
			t.Fatalf("create client: %v", err)
		}
		settler := NewSettler(st, discardLogger())

		raws := rapid.SliceOfN(genRawOrder(), 1, 30).Draw(t, "orders")

		wantCash := startCash
		wantHoldings := map[string]int64{}
		for i, raw := range raws {
			o := feed.Normalize(i, raw)
			cashBefore := wantCash

			res, err := settler.Settle(ctx, "prop", o)
			if err != nil {
				t.Fatalf("order %d: fatal error: %v", i, err)
			}

			total := domain.TotalValue(o.Price, o.Quantity)
			switch {
			case !res.Settled():
				// no mutation expected
			case o.Side == domain.SideBuy:
				wantCash = wantCash.Sub(domain.BuyCost(total))
				wantHoldings[o.StockSymbol] += o.Quantity
			case o.Side == domain.SideSell:
				wantCash = wantCash.Add(domain.SellProceeds(total))
				wantHoldings[o.StockSymbol] -= o.Quantity
			}

			if o.Side == domain.SideBuy && !res.Settled() && !cashBefore.LessThan(domain.BuyCost(total)) {
				t.Fatalf("order %d: BUY failed with enough cash (%s >= %s)", i, cashBefore, domain.BuyCost(total))
			}
		}

		c, _ := st.GetClient(ctx, 1)
		if !c.CashBalance.Equal(wantCash) {
			t.Fatalf("cash = %s, want %s", c.CashBalance, wantCash)
		}
		if c.CashBalance.IsNegative() {
			t.Fatalf("cash went negative: %s", c.CashBalance)
		}

		holdings, _ := st.ListHoldings(ctx, 1)
		for _, h := range holdings {
			if h.Quantity < 0 {
				t.Fatalf("holding %s went negative: %d", h.StockSymbol, h.Quantity)
			}
			if h.Quantity != wantHoldings[h.StockSymbol] {
				t.Fatalf("holding %s = %d, want %d", h.StockSymbol, h.Quantity, wantHoldings[h.StockSymbol])
			}
		}

		trades, _ := st.ListTrades(ctx, store.TradeFilter{})
		if len(trades) != len(raws) {
			t.Fatalf("got %d trade rows for %d orders", len(trades), len(raws))
		}
	})
}
