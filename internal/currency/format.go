package currency

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	SymbolBefore Position = "before"
	SymbolAfter  Position = "after"
)

type (
	Position string

	// FormatSpec describes how amounts in one currency are displayed.
	FormatSpec struct {
		Symbol   string
		Locale   string // BCP 47 tag driving digit grouping and separators
		Decimals int
		Position Position
	}
)

var defaultFormats = map[string]FormatSpec{
	"INR": {Symbol: "₹", Locale: "en-IN", Decimals: 2, Position: SymbolBefore},
	"USD": {Symbol: "$", Locale: "en-US", Decimals: 2, Position: SymbolBefore},
	"EUR": {Symbol: "€", Locale: "de-DE", Decimals: 2, Position: SymbolAfter},
	"GBP": {Symbol: "£", Locale: "en-GB", Decimals: 2, Position: SymbolBefore},
	"JPY": {Symbol: "¥", Locale: "ja-JP", Decimals: 0, Position: SymbolBefore},
	"AUD": {Symbol: "A$", Locale: "en-AU", Decimals: 2, Position: SymbolBefore},
	"CAD": {Symbol: "C$", Locale: "en-CA", Decimals: 2, Position: SymbolBefore},
	"CHF": {Symbol: "₣", Locale: "de-CH", Decimals: 2, Position: SymbolBefore},
	"CNY": {Symbol: "¥", Locale: "zh-CN", Decimals: 2, Position: SymbolBefore},
	"SGD": {Symbol: "S$", Locale: "en-SG", Decimals: 2, Position: SymbolBefore},
	"BRL": {Symbol: "R$", Locale: "pt-BR", Decimals: 2, Position: SymbolBefore},
	"MXN": {Symbol: "$", Locale: "es-MX", Decimals: 2, Position: SymbolBefore},
	"KRW": {Symbol: "₩", Locale: "ko-KR", Decimals: 0, Position: SymbolBefore},
	"THB": {Symbol: "฿", Locale: "th-TH", Decimals: 2, Position: SymbolBefore},
	"ZAR": {Symbol: "R", Locale: "en-ZA", Decimals: 2, Position: SymbolBefore},
	"RUB": {Symbol: "₽", Locale: "ru-RU", Decimals: 2, Position: SymbolAfter},
	"TRY": {Symbol: "₺", Locale: "tr-TR", Decimals: 2, Position: SymbolAfter},
	"PLN": {Symbol: "zł", Locale: "pl-PL", Decimals: 2, Position: SymbolAfter},
	"SEK": {Symbol: "kr", Locale: "sv-SE", Decimals: 2, Position: SymbolAfter},
	"NOK": {Symbol: "kr", Locale: "nb-NO", Decimals: 2, Position: SymbolAfter},
	"DKK": {Symbol: "kr", Locale: "da-DK", Decimals: 2, Position: SymbolAfter},
	"HUF": {Symbol: "Ft", Locale: "hu-HU", Decimals: 0, Position: SymbolAfter},
	"CZK": {Symbol: "Kč", Locale: "cs-CZ", Decimals: 2, Position: SymbolAfter},
	"ILS": {Symbol: "₪", Locale: "he-IL", Decimals: 2, Position: SymbolBefore},
	"AED": {Symbol: "د.إ", Locale: "ar-AE", Decimals: 2, Position: SymbolBefore},
}

// fallbackSpec is used for codes without an entry: the code itself is the
// symbol.
func fallbackSpec(code string) FormatSpec {
	return FormatSpec{Symbol: code, Locale: "en-US", Decimals: 2, Position: SymbolBefore}
}

// Spec returns the display metadata for code.
func (c *Converter) Spec(code string) FormatSpec {
	if spec, ok := c.formats[normalize(code)]; ok {
		return spec
	}
	return fallbackSpec(code)
}

// Format renders amount in code, e.g. "$1,234.50" or "1.234,50 €".
func (c *Converter) Format(amount float64, code string) string {
	return c.Spec(code).Format(amount)
}

// Format renders amount with the symbol, grouping and decimals of s.
func (s FormatSpec) Format(amount float64) string {
	decimals := s.Decimals
	if decimals < 0 {
		decimals = 0
	}
	sign := ""
	scale := math.Pow(10, float64(decimals))
	if math.Round(math.Abs(amount)*scale) != 0 && amount < 0 {
		sign = "-"
	}

	p := message.NewPrinter(language.Make(s.Locale))
	digits := p.Sprintf("%v", number.Decimal(math.Abs(amount), number.Scale(decimals)))

	if s.Position == SymbolAfter {
		return sign + digits + " " + s.Symbol
	}
	return sign + s.Symbol + digits
}
