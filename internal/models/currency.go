package models

// Currency is the closed set of currencies a group can be denominated in.
type Currency string

const (
	CurrencyPLN Currency = "PLN"
	CurrencyGBP Currency = "GBP"
	CurrencyEUR Currency = "EUR"
)

// Currencies lists all supported currencies, for form rendering and validation.
var Currencies = []Currency{CurrencyPLN, CurrencyGBP, CurrencyEUR}

// ParseCurrency maps a form value to a Currency.
// An empty or unrecognized value falls back to PLN, the default currency.
func ParseCurrency(s string) Currency {
	switch Currency(s) {
	case CurrencyPLN, CurrencyGBP, CurrencyEUR:
		return Currency(s)
	default:
		return CurrencyPLN
	}
}
