package funance

import (
	"encoding/json"
	"iter"

	"github.com/shopspring/decimal"
)

// daysPerYear is the mean Gregorian year length used for annualization.
var daysPerYear = decimal.RequireFromString("365.25")

// IncomeLedger is an append-only, deduplicated, date-monotonic sequence of
// income events for one position.
type IncomeLedger struct {
	events []IncomeEvent
	index  map[incomeKey]struct{}
}

// NewIncomeLedger creates a ledger holding the given events, which must
// already be in chronological order.
func NewIncomeLedger(events ...IncomeEvent) *IncomeLedger {
	l := &IncomeLedger{
		events: make([]IncomeEvent, 0, len(events)),
		index:  make(map[incomeKey]struct{}, len(events)),
	}
	for _, g := range events {
		l.Append(g)
	}
	return l
}

// Append adds the event to the ledger under the same gate as
// ActionLedger.Append: false on a duplicate identity key or on a date before
// the last entry, true and mutated otherwise.
func (l *IncomeLedger) Append(g IncomeEvent) bool {
	if _, ok := l.index[g.key()]; ok {
		return false
	}
	if last, ok := l.Last(); ok && g.Date.Before(last.Date) {
		return false
	}
	l.events = append(l.events, g)
	l.index[g.key()] = struct{}{}
	return true
}

// Len returns the number of events in the ledger.
func (l *IncomeLedger) Len() int { return len(l.events) }

// At returns the i-th event in chronological order.
func (l *IncomeLedger) At(i int) IncomeEvent { return l.events[i] }

// Last returns the most recent event, if any.
func (l *IncomeLedger) Last() (IncomeEvent, bool) {
	if len(l.events) == 0 {
		return IncomeEvent{}, false
	}
	return l.events[len(l.events)-1], true
}

// All returns an iterator over the events in chronological order.
func (l *IncomeLedger) All() iter.Seq2[int, IncomeEvent] {
	return func(yield func(int, IncomeEvent) bool) {
		for i, g := range l.events {
			if !yield(i, g) {
				return
			}
		}
	}
}

// TotalIncome returns the sum of all event amounts.
func (l *IncomeLedger) TotalIncome() Money {
	var total Money
	for _, g := range l.events {
		total = total.Add(g.Amount)
	}
	return total
}

// Frequency returns how often this position generates income, as events per
// year observed over the given window: count/days scaled to 365.25 days.
func (l *IncomeLedger) Frequency(days int) Percent {
	return Percent{value: decimal.NewFromInt(int64(len(l.events))).
		Div(decimal.NewFromInt(int64(days))).
		Mul(daysPerYear)}
}

// AverageInterest returns the annualized income yield over the given window:
// the cost-basis-weighted mean of each event's PositionPercent, multiplied by
// Frequency. It is zero when the total stamped cost basis is zero.
//
// Annualization here is by event count, unlike the time-weighted calculation
// in AvailablePurchases.TotalInterest. The two are intentionally kept
// distinct.
func (l *IncomeLedger) AverageInterest(days int) Percent {
	var weighted, denominator decimal.Decimal
	for _, g := range l.events {
		weighted = weighted.Add(g.PositionPercent().value.Mul(g.CostBasis.value))
		denominator = denominator.Add(g.CostBasis.value)
	}
	if denominator.IsZero() {
		return Percent{}
	}
	average := Percent{value: weighted.Div(denominator)}
	return average.Mul(l.Frequency(days))
}

// Copy returns an independent deep copy of the ledger.
func (l *IncomeLedger) Copy() *IncomeLedger {
	c := &IncomeLedger{
		events: make([]IncomeEvent, len(l.events)),
		index:  make(map[incomeKey]struct{}, len(l.index)),
	}
	copy(c.events, l.events)
	for k := range l.index {
		c.index[k] = struct{}{}
	}
	return c
}

// MarshalJSON implements the json.Marshaler interface for IncomeLedger.
func (l *IncomeLedger) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.events)
}

// UnmarshalJSON implements the json.Unmarshaler interface for IncomeLedger.
func (l *IncomeLedger) UnmarshalJSON(data []byte) error {
	var events []IncomeEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return err
	}
	l.events = events
	l.index = make(map[incomeKey]struct{}, len(events))
	for _, g := range events {
		l.index[g.key()] = struct{}{}
	}
	return nil
}
