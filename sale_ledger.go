package funance

import (
	"encoding/json"
	"iter"

	"github.com/shopspring/decimal"
)

// SaleLedger is an append-only list of realized sales for one position.
//
// Unlike the action and income ledgers it carries no identity gate of its
// own: sale records only ever derive from actions that already passed the
// ActionLedger dedup gate.
type SaleLedger struct {
	sales []SaleRecord
}

// NewSaleLedger creates a ledger holding the given records.
func NewSaleLedger(sales ...SaleRecord) *SaleLedger {
	return &SaleLedger{sales: append([]SaleRecord(nil), sales...)}
}

// Append adds the record to the ledger.
func (l *SaleLedger) Append(s SaleRecord) {
	l.sales = append(l.sales, s)
}

// Len returns the number of records in the ledger.
func (l *SaleLedger) Len() int { return len(l.sales) }

// At returns the i-th record.
func (l *SaleLedger) At(i int) SaleRecord { return l.sales[i] }

// All returns an iterator over the records in insertion order.
func (l *SaleLedger) All() iter.Seq2[int, SaleRecord] {
	return func(yield func(int, SaleRecord) bool) {
		for i, s := range l.sales {
			if !yield(i, s) {
				return
			}
		}
	}
}

// TotalProfit returns the realized profit over all contained sales.
func (l *SaleLedger) TotalProfit() Money {
	var total Money
	for _, s := range l.sales {
		total = total.Add(s.Profit())
	}
	return total
}

// AverageInterest returns the profit-weighted mean of each sale's annualized
// return. It is zero when the total profit is zero.
func (l *SaleLedger) AverageInterest() Percent {
	var weighted, denominator decimal.Decimal
	for _, s := range l.sales {
		profit := s.Profit().value
		weighted = weighted.Add(s.Interest().value.Mul(profit))
		denominator = denominator.Add(profit)
	}
	if denominator.IsZero() {
		return Percent{}
	}
	return Percent{value: weighted.Div(denominator)}
}

// Copy returns an independent deep copy of the ledger.
func (l *SaleLedger) Copy() *SaleLedger {
	c := &SaleLedger{sales: make([]SaleRecord, len(l.sales))}
	copy(c.sales, l.sales)
	return c
}

// MarshalJSON implements the json.Marshaler interface for SaleLedger.
func (l *SaleLedger) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.sales)
}

// UnmarshalJSON implements the json.Unmarshaler interface for SaleLedger.
func (l *SaleLedger) UnmarshalJSON(data []byte) error {
	var sales []SaleRecord
	if err := json.Unmarshal(data, &sales); err != nil {
		return err
	}
	l.sales = sales
	return nil
}
