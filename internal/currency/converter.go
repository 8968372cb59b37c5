package currency

// Converter converts amounts through a rate table and formats them.
// It is safe for concurrent use; nothing in it changes after construction.
type Converter struct {
	table   *Table
	formats map[string]FormatSpec
}

// NewConverter builds a converter over table. A nil formats map uses the
// built-in format table.
func NewConverter(table *Table, formats map[string]FormatSpec) *Converter {
	if table == nil {
		table = DefaultTable()
	}
	if formats == nil {
		formats = defaultFormats
	}
	return &Converter{table: table, formats: formats}
}

// Default returns a converter over the built-in tables.
func Default() *Converter {
	return NewConverter(DefaultTable(), nil)
}

// Base returns the base currency code.
func (c *Converter) Base() string {
	return c.table.base
}

// Table returns the underlying rate table.
func (c *Converter) Table() *Table {
	return c.table
}

// Known reports whether code has an entry in the rate table.
func (c *Converter) Known(code string) bool {
	_, ok := c.table.Rate(code)
	return ok
}

// ToBase converts amount in code to the base currency. Codes without a
// rate are treated as already being in the base currency.
func (c *Converter) ToBase(amount float64, code string) float64 {
	if normalize(code) == c.table.base {
		return amount
	}
	rate, ok := c.table.Rate(code)
	if !ok {
		return amount
	}
	return amount * rate
}

// FromBase converts a base-currency amount to code, with the same identity
// fallback as ToBase.
func (c *Converter) FromBase(amount float64, code string) float64 {
	if normalize(code) == c.table.base {
		return amount
	}
	rate, ok := c.table.Rate(code)
	if !ok {
		return amount
	}
	return amount / rate
}

// Convert moves amount from one currency to another through the base.
func (c *Converter) Convert(amount float64, from, to string) float64 {
	if normalize(from) == normalize(to) {
		return amount
	}
	return c.FromBase(c.ToBase(amount, from), to)
}
