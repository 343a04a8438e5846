package domain

import "strconv"

// DefaultCurrency is the store's operating currency. The catalog backend
// reports prices without a currency code and an empty cart has no line to
// take one from, so both fall back to this.
const DefaultCurrency = "USD"

// Money carries a monetary amount as a decimal string so it survives
// serialization without floating-point drift. Arithmetic goes through
// float64 and back; repeated round trips may accumulate rounding error,
// callers must not rely on exact equality across many operations.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Float parses the amount for arithmetic. A malformed amount reads as zero.
func (m Money) Float() float64 {
	v, _ := strconv.ParseFloat(m.Amount, 64)
	return v
}

// FormatAmount renders a numeric amount with minimal digits, the way the
// storefront wire format carries it ("25", not "25.00").
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
