package entity

import "github.com/shopspring/decimal"

// Monetary amounts are stored and computed at full precision; they are
// rounded to two fractional digits only when they leave the API.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func nullMoney(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(2)
	return &s
}
