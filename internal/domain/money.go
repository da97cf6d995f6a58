package domain

import "github.com/shopspring/decimal"

// CommissionRate is the flat brokerage fee applied to gross trade value.
var CommissionRate = decimal.RequireFromString("0.005")

// Column limits of the ledger. Prices carry at most PriceScale decimals and
// stay below MaxPrice; gross values stay below MaxTotalValue.
const PriceScale = 4

var (
	MaxPrice      = decimal.New(1, 16)
	MaxTotalValue = decimal.New(1, 18)
)

// TotalValue returns price × quantity rounded to cents.
func TotalValue(price decimal.Decimal, quantity int64) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(quantity)).Round(2)
}

// Commission returns totalValue × CommissionRate rounded half away from
// zero to 2 decimal places.
func Commission(totalValue decimal.Decimal) decimal.Decimal {
	return totalValue.Mul(CommissionRate).Round(2)
}

// BuyCost is the cash a BUY debits: gross value plus commission.
func BuyCost(totalValue decimal.Decimal) decimal.Decimal {
	return totalValue.Add(Commission(totalValue))
}

// SellProceeds is the cash a SELL credits: gross value less commission.
func SellProceeds(totalValue decimal.Decimal) decimal.Decimal {
	return totalValue.Sub(Commission(totalValue))
}
