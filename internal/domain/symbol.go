package domain

import (
	"regexp"
	"strings"
)

var symbolRegex = regexp.MustCompile(`^[A-Z0-9.]{1,10}$`)

// NormalizeSymbol upper-cases and trims a ticker symbol. The second return
// value is false when the result is not a valid symbol.
func NormalizeSymbol(s string) (string, bool) {
	sym := strings.ToUpper(strings.TrimSpace(s))
	return sym, symbolRegex.MatchString(sym)
}
