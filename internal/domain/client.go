package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is an account holder whose cash balance is debited by BUY orders
// and credited by SELL orders. Clients are never created by settlement.
type Client struct {
	ID          int64
	Name        string
	CashBalance decimal.Decimal
	CreatedAt   time.Time
}

// Holding is a client's position in a single stock symbol, keyed by
// (ClientID, StockSymbol).
type Holding struct {
	ClientID    int64
	StockSymbol string
	Quantity    int64
	UpdatedAt   time.Time
}
