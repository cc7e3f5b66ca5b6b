package portfolio

import "strings"

var currencySymbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
	"inr": "₹",
	"jpy": "¥",
	"aud": "A$",
	"cad": "C$",
}

// SymbolFor returns the display glyph for a currency code, falling back to
// the upper-cased code for currencies without one.
func SymbolFor(currency string) string {
	c := trimLower(currency)
	if sym, ok := currencySymbols[c]; ok {
		return sym
	}
	return strings.ToUpper(c) + " "
}

func trimLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
