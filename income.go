package funance

import (
	"encoding/json"
	"fmt"
)

// IncomeKind classifies a non-trade cash event attributable to holding a
// position.
type IncomeKind string

const (
	Dividend        IncomeKind = "dividend"
	LongTermGain    IncomeKind = "long-term-cap-gain"
	ShortTermGain   IncomeKind = "short-term-cap-gain"
	Interest        IncomeKind = "interest"
	RoyaltyPayment  IncomeKind = "royalty-payment"
	ReturnOfCapital IncomeKind = "return-of-capital"
	ForeignTax      IncomeKind = "foreign-tax"
	Fee             IncomeKind = "fee"
)

// ParseIncomeKind parses a string into an IncomeKind.
func ParseIncomeKind(s string) (IncomeKind, error) {
	switch k := IncomeKind(s); k {
	case Dividend, LongTermGain, ShortTermGain, Interest,
		RoyaltyPayment, ReturnOfCapital, ForeignTax, Fee:
		return k, nil
	default:
		return "", fmt.Errorf("unknown income kind: %q", s)
	}
}

// IncomeEvent is a single instance of income generated by a position: a
// dividend, interest payment, capital-gain distribution, fee and so on.
//
// CostBasis is the owning position's cost basis at the moment the event was
// inserted. It is stamped once and never recomputed, fixing the historical
// yield of the event.
type IncomeEvent struct {
	Symbol    string
	Date      Date
	Kind      IncomeKind
	Amount    Money
	CostBasis Money
}

// incomeKey is the structural identity of an income event.
type incomeKey struct {
	date   Date
	kind   IncomeKind
	amount string
}

// key returns the structural identity of the event. The stamped cost basis is
// derived state and takes no part in identity.
func (g IncomeEvent) key() incomeKey {
	return incomeKey{date: g.Date, kind: g.Kind, amount: canonicalDecimal(g.Amount.value)}
}

// CashOffset returns the mirror cash event for this income: a buy of CASH for
// the income amount at a unit price of 1.
func (g IncomeEvent) CashOffset() Action {
	return Action{
		Symbol:   CashSymbol,
		Date:     g.Date,
		Side:     Buy,
		Quantity: Q(g.Amount.value),
		Price:    M(1, g.Amount.cur),
	}
}

// PositionPercent returns the share of the position this income event
// represents: amount over the cost basis stamped at emission. It is zero when
// the stamped cost basis is zero.
func (g IncomeEvent) PositionPercent() Percent {
	if g.CostBasis.IsZero() {
		return Percent{}
	}
	return g.Amount.DivAmount(g.CostBasis)
}

// MarshalJSON implements the json.Marshaler interface for IncomeEvent.
func (g IncomeEvent) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", g.Symbol)
	w.Append("date", g.Date)
	w.Append("kind", g.Kind)
	w.Append("amount", g.Amount)
	w.Append("cost_basis", g.CostBasis)
	w.Append("percent", g.PositionPercent())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for IncomeEvent.
// The derived "percent" field is ignored.
func (g *IncomeEvent) UnmarshalJSON(data []byte) error {
	var obj struct {
		Symbol    string `json:"symbol"`
		Date      Date   `json:"date"`
		Kind      string `json:"kind"`
		Amount    Money  `json:"amount"`
		CostBasis Money  `json:"cost_basis"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	kind, err := ParseIncomeKind(obj.Kind)
	if err != nil {
		return err
	}
	g.Symbol = obj.Symbol
	g.Date = obj.Date
	g.Kind = kind
	g.Amount = obj.Amount
	g.CostBasis = obj.CostBasis
	return nil
}
