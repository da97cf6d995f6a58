package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of a trade order as received in the upload.
// Values other than SideBuy and SideSell are kept verbatim so the audit row
// shows what was submitted.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Valid reports whether the side routes to a settlement branch.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Status is the outcome recorded on a trade row.
type Status string

const (
	StatusSettled Status = "SETTLED"
	StatusFailed  Status = "FAILED"
)

// Failure reasons stored on FAILED trade rows.
const (
	ReasonClientNotFound       = "Client does not exist"
	ReasonInsufficientFunds    = "Insufficient funds"
	ReasonInsufficientHoldings = "Insufficient holdings"
	ReasonInvalidSide          = "Invalid trade type"
	ReasonInvalidOrder         = "Invalid order data"
	ReasonProcessingError      = "Processing error"
)

// Trade is an append-only ledger row. One is written per uploaded order,
// whatever its outcome.
type Trade struct {
	ID             int64
	BatchID        string
	ClientID       *int64 // nil when the uploaded client id was not numeric
	ClientName     *string
	StockSymbol    string
	Type           Side
	Quantity       int64
	Price          decimal.Decimal
	TotalValue     decimal.Decimal
	Commission     decimal.Decimal
	TradeDate      *time.Time
	SettlementDate *time.Time
	Status         Status
	FailureReason  *string
	CreatedAt      time.Time
}

// Fail marks the trade FAILED with the given reason.
func (t *Trade) Fail(reason string) {
	t.Status = StatusFailed
	t.FailureReason = &reason
}

// Settle marks the trade SETTLED and clears any failure reason.
func (t *Trade) Settle() {
	t.Status = StatusSettled
	t.FailureReason = nil
}

// Stats aggregates the trade ledger for the dashboard.
type Stats struct {
	TotalVolumeSettled     decimal.Decimal
	TotalCommissionsEarned decimal.Decimal
	FailedTradeCount       int64
}
