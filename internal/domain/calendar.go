package domain

import (
	"fmt"
	"strings"
	"time"
)

// SettlementLag is the number of business days between trade date and
// settlement date (T+2).
const SettlementLag = 2

// DateLayout is the wire and storage format for trade and settlement dates.
const DateLayout = "2006-01-02"

// IsBusinessDay reports whether t falls on Monday through Friday.
// No holiday calendar is applied.
func IsBusinessDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

// SettlementDate returns the calendar date SettlementLag business days
// after tradeDate. The time of day is dropped.
func SettlementDate(tradeDate time.Time) time.Time {
	d := time.Date(tradeDate.Year(), tradeDate.Month(), tradeDate.Day(), 0, 0, 0, 0, time.UTC)
	for added := 0; added < SettlementLag; {
		d = d.AddDate(0, 0, 1)
		if IsBusinessDay(d) {
			added++
		}
	}
	return d
}

// ParseTradeDate accepts a YYYY-MM-DD date or an RFC 3339 timestamp and
// returns the calendar date at UTC midnight.
func ParseTradeDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("trade_date must be YYYY-MM-DD, got %q", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
