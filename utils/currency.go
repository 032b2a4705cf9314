package utils

import (
	"fmt"
	"math"
)

// RoundToCents rounds an amount to currency precision. Cart math keeps full
// floating precision between mutations; rounding happens only here, at the
// edge, so rounding error never compounds across lines.
func RoundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatAmount renders an amount with two decimals for wire payloads
// (the payments endpoint takes the amount as a string).
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", RoundToCents(amount))
}

// FormatCurrency renders an amount for display, e.g. "$1250.50".
func FormatCurrency(amount float64) string {
	return "$" + FormatAmount(amount)
}
