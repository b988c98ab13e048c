package models

import "github.com/shopspring/decimal"

func init() {
	// Amounts go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// MaxMoney is the largest amount a decimal(12,2) column holds.
var MaxMoney = decimal.RequireFromString("9999999999.99")

// Money rounds half-up to cents.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
