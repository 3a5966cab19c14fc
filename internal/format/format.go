// Package format renders engine output for display using Turkish number
// conventions: dot for thousands grouping, comma for decimals. Presentation
// only; nothing here feeds back into a calculation.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Turkish)

// TL renders a TRY amount with either 0 or 2 fraction digits.
// Non-finite values render as "-".
func TL(v float64, fraction int) string {
	if !isFinite(v) {
		return "-"
	}
	return printer.Sprintf("%v TL", number.Decimal(v,
		number.MinFractionDigits(fraction),
		number.MaxFractionDigits(fraction),
	))
}

// Percent renders a rate rounded to one decimal with a trailing percent
// sign, e.g. "10,2%".
func Percent(v float64) string {
	if !isFinite(v) {
		return "-"
	}
	rounded := math.Round(v*10) / 10
	return printer.Sprintf("%v%%", number.Decimal(rounded,
		number.MinFractionDigits(1),
		number.MaxFractionDigits(1),
	))
}

// Number renders a plain grouped integer amount.
func Number(v float64) string {
	if !isFinite(v) {
		return "-"
	}
	return printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(0)))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
