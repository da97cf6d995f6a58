package service

import (
	"context"
	"errors"
	"testing"

	"github.com/efreitasn/tradeops/internal/domain"
	"github.com/efreitasn/tradeops/internal/feed"
	"github.com/efreitasn/tradeops/internal/store"
)

func TestReportService_GetClient(t *testing.T) {
	env := newTestEnv(nil)
	alice := env.createClient(t, "Alice", "10000")

	_, err := env.settlement.ProcessOrders(context.Background(), []feed.RawOrder{
		raw("1", "BUY", "MSFT", "3", "10"),
		raw("1", "BUY", "AAPL", "2", "10"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pos, err := env.report.GetClient(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.Client.Name != "Alice" {
		t.Errorf("Name = %q, want Alice", pos.Client.Name)
	}
	// 10000 - 30.15 - 20.10
	if !pos.Client.CashBalance.Equal(dec("9949.75")) {
		t.Errorf("CashBalance = %s, want 9949.75", pos.Client.CashBalance)
	}
	if len(pos.Holdings) != 2 {
		t.Fatalf("got %d holdings, want 2", len(pos.Holdings))
	}
	if pos.Holdings[0].StockSymbol != "AAPL" || pos.Holdings[0].Quantity != 2 {
		t.Errorf("holding[0] = %+v, want AAPL x2", pos.Holdings[0])
	}
	if pos.Holdings[1].StockSymbol != "MSFT" || pos.Holdings[1].Quantity != 3 {
		t.Errorf("holding[1] = %+v, want MSFT x3", pos.Holdings[1])
	}
}

func TestReportService_GetClientNotFound(t *testing.T) {
	env := newTestEnv(nil)

	_, err := env.report.GetClient(context.Background(), 42)
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("error = %v, want ErrClientNotFound", err)
	}
}

func TestReportService_ListTradesFilters(t *testing.T) {
	env := newTestEnv(nil)
	env.createClient(t, "Alice", "100")
	env.createClient(t, "Bob", "100")

	first, err := env.settlement.ProcessOrders(context.Background(), []feed.RawOrder{
		raw("1", "BUY", "AAPL", "1", "10"),
		raw("2", "SELL", "AAPL", "1", "10"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := env.settlement.ProcessOrders(context.Background(), []feed.RawOrder{
		raw("2", "BUY", "AAPL", "1", "10"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	all, _ := env.report.ListTrades(ctx, store.TradeFilter{})
	if len(all) != 3 {
		t.Fatalf("got %d trades, want 3", len(all))
	}
	if all[0].ID < all[1].ID || all[1].ID < all[2].ID {
		t.Errorf("trades not newest first: %d, %d, %d", all[0].ID, all[1].ID, all[2].ID)
	}

	failed, _ := env.report.ListTrades(ctx, store.TradeFilter{Status: domain.StatusFailed})
	if len(failed) != 1 || *failed[0].FailureReason != domain.ReasonInsufficientHoldings {
		t.Errorf("failed filter = %+v, want the one insufficient-holdings row", failed)
	}

	bob := int64(2)
	bobs, _ := env.report.ListTrades(ctx, store.TradeFilter{ClientID: &bob})
	if len(bobs) != 2 {
		t.Errorf("client filter returned %d rows, want 2", len(bobs))
	}
	for _, tr := range bobs {
		if tr.ClientName == nil || *tr.ClientName != "Bob" {
			t.Errorf("ClientName = %v, want Bob", tr.ClientName)
		}
	}

	batch, _ := env.report.ListTrades(ctx, store.TradeFilter{BatchID: first.BatchID})
	if len(batch) != 2 {
		t.Errorf("batch filter returned %d rows, want 2", len(batch))
	}
}

func TestReportService_Stats(t *testing.T) {
	env := newTestEnv(nil)
	env.createClient(t, "Alice", "1000")

	if _, err := env.settlement.ProcessOrders(context.Background(), []feed.RawOrder{
		raw("1", "BUY", "AAPL", "10", "50"),    // 500.00, commission 2.50
		raw("1", "SELL", "AAPL", "4", "60.10"), // 240.40, commission 1.20
		raw("1", "BUY", "AAPL", "100", "50"),   // insufficient funds
		raw("7", "BUY", "AAPL", "1", "1"),      // client does not exist
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats, err := env.report.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stats.TotalVolumeSettled.Equal(dec("740.40")) {
		t.Errorf("TotalVolumeSettled = %s, want 740.40", stats.TotalVolumeSettled)
	}
	if !stats.TotalCommissionsEarned.Equal(dec("3.70")) {
		t.Errorf("TotalCommissionsEarned = %s, want 3.70", stats.TotalCommissionsEarned)
	}
	if stats.FailedTradeCount != 2 {
		t.Errorf("FailedTradeCount = %d, want 2", stats.FailedTradeCount)
	}
}

func TestReportService_Ping(t *testing.T) {
	env := newTestEnv(nil)
	if err := env.report.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
