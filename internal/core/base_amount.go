package core

// BaseAmount records how an expense's base-currency value is known.
// It is one of ConvertedAmount or LegacyAmount.
type BaseAmount interface {
	baseAmount()
}

// ConvertedAmount is the base-currency value computed when the expense was
// created or last edited. It is never recomputed when rates change.
type ConvertedAmount struct {
	Value float64
}

// LegacyAmount marks a stored record that carries only its nominal amount.
// The nominal amount is used as the base amount.
type LegacyAmount struct{}

func (ConvertedAmount) baseAmount() {}
func (LegacyAmount) baseAmount()    {}

// ResolveBase picks the tag for a stored record: a present, positive base
// value becomes ConvertedAmount, anything else LegacyAmount.
func ResolveBase(stored *float64) BaseAmount {
	if stored == nil || *stored == 0 {
		return LegacyAmount{}
	}
	return ConvertedAmount{Value: *stored}
}
