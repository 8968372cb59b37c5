package currency

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_ToBaseFromBase(t *testing.T) {
	table, err := NewTable("BASE", map[string]float64{"BASE": 1, "USD": 83.5})
	require.NoError(t, err)
	c := NewConverter(table, nil)

	assert.Equal(t, 835.0, c.ToBase(10, "USD"))
	assert.Equal(t, 10.0, c.FromBase(835, "USD"))
	assert.Equal(t, 42.0, c.ToBase(42, "BASE"))
	assert.Equal(t, 42.0, c.FromBase(42, "BASE"))
}

func TestConverter_UnknownCurrencyIsIdentity(t *testing.T) {
	c := Default()

	for _, amount := range []float64{0, 1, 99.99, 123456.789} {
		assert.Equal(t, amount, c.ToBase(amount, "XYZ"))
		assert.Equal(t, amount, c.FromBase(amount, "XYZ"))
	}
	assert.False(t, c.Known("XYZ"))
	assert.True(t, c.Known("usd"))
}

func TestConverter_RoundTrip(t *testing.T) {
	c := Default()
	amounts := []float64{0.01, 1, 10, 123.45, 9999.99, 1e6, 3.14159}

	for _, code := range c.Table().Codes() {
		for _, x := range amounts {
			got := c.FromBase(c.ToBase(x, code), code)
			assert.InEpsilon(t, x, got, 1e-9, "round trip %v %s", x, code)
		}
	}
}

func TestConverter_Convert(t *testing.T) {
	c := Default()

	assert.Equal(t, 10.0, c.Convert(10, "USD", "USD"))
	assert.InEpsilon(t, 10*83.5/91.2, c.Convert(10, "USD", "EUR"), 1e-12)
	assert.Equal(t, 7.0, c.Convert(7, "XYZ", "ABC"))
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()

	assert.Equal(t, "INR", table.Base())
	assert.Len(t, table.Codes(), 25)
	assert.Equal(t, "INR", table.Codes()[0])

	rate, ok := table.Rate("KRW")
	require.True(t, ok)
	assert.Equal(t, 0.063, rate)

	for _, code := range table.Codes() {
		_, ok := defaultFormats[code]
		assert.True(t, ok, "missing format for %s", code)
	}
}

func TestNewTable_Validation(t *testing.T) {
	_, err := NewTable("", map[string]float64{"USD": 1})
	assert.Error(t, err)

	_, err = NewTable("INR", map[string]float64{"USD": 0})
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = NewTable("INR", map[string]float64{"USD": -2})
	assert.ErrorIs(t, err, ErrInvalidRate)

	table, err := NewTable("inr", map[string]float64{"INR": 3, "usd": 83.5})
	require.NoError(t, err)
	rate, _ := table.Rate("INR")
	assert.Equal(t, 1.0, rate, "base rate is always 1")
	rate, ok := table.Rate("USD")
	assert.True(t, ok)
	assert.Equal(t, 83.5, rate)
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base: EUR\nrates:\n  USD: 0.92\n  GBP: 1.16\n"), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "EUR", table.Base())
	assert.Equal(t, []string{"EUR", "GBP", "USD"}, table.Codes())

	_, err = ParseTable([]byte("rates:\n  USD: -1\n"))
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = LoadTable(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
