package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/efreitasn/tradeops/internal/domain"
	"github.com/shopspring/decimal"
)

// Order is a typed trade instruction. Fields that failed conversion are left
// at their zero value (nil for ClientID and TradeDate) and described in
// Problems; such an order is recorded as FAILED without touching balances.
type Order struct {
	Index       int
	ClientID    *int64
	StockSymbol string
	Side        domain.Side
	Quantity    int64
	Price       decimal.Decimal
	TradeDate   *time.Time
	Problems    []string
}

// Valid reports whether every field converted cleanly.
func (o Order) Valid() bool {
	return len(o.Problems) == 0
}

// Normalize converts a raw order into an Order. The side is upper-cased but
// not checked here; routing on it is the settlement pipeline's job.
func Normalize(index int, raw RawOrder) Order {
	o := Order{
		Index: index,
		Side:  domain.Side(strings.ToUpper(strings.TrimSpace(raw.Type))),
	}

	if id, err := strconv.ParseInt(strings.TrimSpace(raw.ClientID), 10, 64); err != nil {
		o.problem("client_id must be an integer, got %q", raw.ClientID)
	} else {
		o.ClientID = &id
	}

	sym, ok := domain.NormalizeSymbol(raw.StockSymbol)
	o.StockSymbol = sym
	if !ok {
		o.problem("stock_symbol is invalid: %q", raw.StockSymbol)
	}

	if qty, err := strconv.ParseInt(strings.TrimSpace(raw.Quantity), 10, 64); err != nil {
		o.problem("quantity must be an integer, got %q", raw.Quantity)
	} else if qty <= 0 {
		o.problem("quantity must be > 0, got %d", qty)
	} else {
		o.Quantity = qty
	}

	if price, err := decimal.NewFromString(strings.TrimSpace(raw.Price)); err != nil {
		o.problem("price must be a number, got %q", raw.Price)
	} else if price.IsNegative() {
		o.problem("price must be >= 0, got %s", price)
	} else if price.GreaterThanOrEqual(domain.MaxPrice) {
		o.problem("price must be < %s, got %s", domain.MaxPrice, price)
	} else if !price.Equal(price.Round(domain.PriceScale)) {
		o.problem("price must have at most %d decimals, got %s", domain.PriceScale, price)
	} else {
		o.Price = price
	}

	if o.Quantity > 0 && !o.Price.IsZero() {
		if total := domain.TotalValue(o.Price, o.Quantity); total.GreaterThanOrEqual(domain.MaxTotalValue) {
			o.problem("price * quantity must be < %s, got %s", domain.MaxTotalValue, total)
		}
	}

	if td, err := domain.ParseTradeDate(raw.TradeDate); err != nil {
		o.problem("%s", err.Error())
	} else {
		o.TradeDate = &td
	}

	return o
}

// NormalizeAll converts every raw order, preserving upload order.
func NormalizeAll(raws []RawOrder) []Order {
	orders := make([]Order, len(raws))
	for i, raw := range raws {
		orders[i] = Normalize(i, raw)
	}
	return orders
}

func (o *Order) problem(format string, args ...any) {
	o.Problems = append(o.Problems, fmt.Sprintf(format, args...))
}
