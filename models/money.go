package models

import "github.com/shopspring/decimal"

func init() {
	// The backend reads and writes amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Hundred is used for percentage arithmetic.
var Hundred = decimal.NewFromInt(100)

// Round2 rounds an amount half-up to cents.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
