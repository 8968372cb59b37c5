package currency

import (
	"testing"
)

func TestConverter_Format(t *testing.T) {
	c := Default()

	tests := []struct {
		name   string
		amount float64
		code   string
		want   string
	}{
		{"dollar before", 1234.5, "USD", "$1,234.50"},
		{"pound before", 99.999, "GBP", "£100.00"},
		{"yen has no decimals", 1234.56, "JPY", "¥1,235"},
		{"euro after with german separators", 1234.5, "EUR", "1.234,50 €"},
		{"unknown code is its own symbol", 1234.5, "XYZ", "XYZ1,234.50"},
		{"negative amount", -5, "USD", "-$5.00"},
		{"negative rounding to zero drops the sign", -0.001, "USD", "$0.00"},
		{"zero", 0, "USD", "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Format(tt.amount, tt.code)
			if got != tt.want {
				t.Errorf("Format(%v, %s) = %q, want %q", tt.amount, tt.code, got, tt.want)
			}
		})
	}
}

func TestConverter_Spec(t *testing.T) {
	c := Default()

	if spec := c.Spec("eur"); spec.Position != SymbolAfter || spec.Symbol != "€" {
		t.Errorf("Spec(eur) = %+v, want symbol € after", spec)
	}

	spec := c.Spec("ABC")
	if spec.Symbol != "ABC" || spec.Decimals != 2 || spec.Position != SymbolBefore || spec.Locale != "en-US" {
		t.Errorf("Spec(ABC) = %+v, want generic fallback", spec)
	}
}
