package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// Rupiah renders an amount as whole rupiah with id-ID digit grouping,
// e.g. "Rp 2.500.000". Fractions are rounded half away from zero.
func Rupiah(amount decimal.Decimal) string {
	whole := amount.Round(0).IntPart()
	if whole < 0 {
		return idPrinter.Sprintf("-Rp %d", -whole)
	}
	return idPrinter.Sprintf("Rp %d", whole)
}

// Kilograms renders a weight with up to two decimals and the id-ID decimal comma.
func Kilograms(weight decimal.Decimal) string {
	return idPrinter.Sprintf("%v kg", weight.Round(2).InexactFloat64())
}
