package funance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a unit-less exact decimal ratio: 0.05 means 5%.
//
// Yields and annualized returns are derived from exact Money and Quantity
// values, so the ratio itself stays a decimal rather than a float.
type Percent struct {
	value decimal.Decimal
}

func P[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Percent {
	return Percent{value: newDecimal(value)}
}

func (p Percent) Equal(q Percent) bool { return p.value.Equal(q.value) }
func (p Percent) IsZero() bool         { return p.value.IsZero() }
func (p Percent) Add(q Percent) Percent {
	return Percent{value: p.value.Add(q.value)}
}
func (p Percent) Mul(q Percent) Percent {
	return Percent{value: p.value.Mul(q.value)}
}
func (p Percent) Div(q Percent) Percent {
	return Percent{value: p.value.Div(q.value)}
}

// Decimal returns the underlying exact decimal ratio.
func (p Percent) Decimal() decimal.Decimal { return p.value }

// Round returns the ratio rounded to the given number of decimal places.
func (p Percent) Round(places int32) Percent {
	return Percent{value: p.value.Round(places)}
}

// String renders the ratio as a percentage with two decimals.
func (p Percent) String() string {
	return fmt.Sprintf("%s%%", p.value.Mul(decimal.NewFromInt(100)).StringFixed(2))
}

// MarshalJSON implements the json.Marshaler interface for Percent.
func (p Percent) MarshalJSON() ([]byte, error) {
	return p.value.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Percent.
func (p *Percent) UnmarshalJSON(decimalBytes []byte) error {
	return p.value.UnmarshalJSON(decimalBytes)
}
