package types

import "strings"

// DefaultCurrency is the currency the product transacts in
const DefaultCurrency = "GBP"

var currencySymbols = map[string]string{
	"GBP": "£",
	"USD": "$",
	"EUR": "€",
}

// CurrencySymbol returns the display symbol for an ISO currency code,
// falling back to the code itself for unknown currencies.
func CurrencySymbol(code string) string {
	if code == "" {
		code = DefaultCurrency
	}
	if sym, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return sym
	}
	return strings.ToUpper(code) + " "
}
