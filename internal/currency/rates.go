// Package currency converts amounts between a base currency and other
// currencies using a fixed rate table, and formats amounts for display.
package currency

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultBase is the base currency of the built-in rate table.
const DefaultBase = "INR"

var ErrInvalidRate = errors.New("rate must be positive and finite")

// defaultRates are units of the base currency per unit of each currency.
var defaultRates = map[string]float64{
	"INR": 1, "USD": 83.5, "EUR": 91.2, "GBP": 105.8, "JPY": 0.56,
	"AUD": 54.2, "CAD": 61.3, "CHF": 92.1, "CNY": 11.5, "SGD": 62.4,
	"BRL": 16.8, "MXN": 4.9, "KRW": 0.063, "THB": 2.4, "ZAR": 4.5,
	"RUB": 0.91, "TRY": 2.4, "PLN": 20.1, "SEK": 7.6, "NOK": 7.8,
	"DKK": 12.2, "HUF": 0.23, "CZK": 3.6, "ILS": 22.4, "AED": 22.7,
}

// Table is an immutable snapshot of exchange rates relative to a base
// currency. The base always maps to 1.
type Table struct {
	base  string
	rates map[string]float64
}

// NewTable validates and copies rates. Codes are upper-cased; the base
// entry is forced to 1.
func NewTable(base string, rates map[string]float64) (*Table, error) {
	base = normalize(base)
	if base == "" {
		return nil, errors.New("base currency is required")
	}
	t := &Table{base: base, rates: make(map[string]float64, len(rates)+1)}
	for code, rate := range rates {
		code = normalize(code)
		if code == "" {
			return nil, errors.New("empty currency code in rate table")
		}
		if code == base {
			continue
		}
		if !(rate > 0) || math.IsInf(rate, 0) {
			return nil, fmt.Errorf("%s: %w", code, ErrInvalidRate)
		}
		t.rates[code] = rate
	}
	t.rates[base] = 1
	return t, nil
}

// DefaultTable returns the built-in INR-based table.
func DefaultTable() *Table {
	t, err := NewTable(DefaultBase, defaultRates)
	if err != nil {
		panic(err)
	}
	return t
}

// Base returns the base currency code.
func (t *Table) Base() string {
	return t.base
}

// Rate returns the rate for code and whether it is in the table.
func (t *Table) Rate(code string) (float64, bool) {
	r, ok := t.rates[normalize(code)]
	return r, ok
}

// Codes lists the table's currencies, base first, then alphabetical.
func (t *Table) Codes() []string {
	codes := make([]string, 0, len(t.rates))
	for code := range t.rates {
		if code != t.base {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return append([]string{t.base}, codes...)
}

type rateFile struct {
	Base  string             `yaml:"base"`
	Rates map[string]float64 `yaml:"rates"`
}

// LoadTable reads a YAML rate file of the form
//
//	base: INR
//	rates:
//	  USD: 83.5
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rate file: %w", err)
	}
	return ParseTable(data)
}

// ParseTable decodes a YAML rate document.
func ParseTable(data []byte) (*Table, error) {
	var f rateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode rate file: %w", err)
	}
	if f.Base == "" {
		f.Base = DefaultBase
	}
	t, err := NewTable(f.Base, f.Rates)
	if err != nil {
		return nil, fmt.Errorf("rate file: %w", err)
	}
	return t, nil
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
