package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brlPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount in Brazilian real notation with locale separators, e.g. "R$ 1.234,50".
func FormatBRL(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	if f < 0 {
		return brlPrinter.Sprintf("-R$ %.2f", -f)
	}
	return brlPrinter.Sprintf("R$ %.2f", f)
}
