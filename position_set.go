package funance

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"
)

// CashSymbol is the synthetic symbol representing settled cash. Cash is held
// as a position whose lots always have a unit price of 1, so that quantities
// are dollar amounts.
const CashSymbol = "CASH"

// PositionSet is the set of positions held by one account, keyed by symbol,
// with automatic cash-offset bookkeeping: every non-cash event, unless
// explicitly suppressed, emits a mirror CASH event so the total invested
// value of the account stays reconciled.
type PositionSet struct {
	positions map[string]*Position
}

// NewPositionSet creates an empty position set.
func NewPositionSet() *PositionSet {
	return &PositionSet{positions: make(map[string]*Position)}
}

// Ensure returns the position for the given symbol, creating an empty one on
// its first event.
func (s *PositionSet) Ensure(symbol string) *Position {
	p, ok := s.positions[symbol]
	if !ok {
		p = NewPosition(symbol)
		s.positions[symbol] = p
	}
	return p
}

// Get returns the position held under the given symbol.
func (s *PositionSet) Get(symbol string) (*Position, bool) {
	p, ok := s.positions[symbol]
	return p, ok
}

// Len returns the number of positions, the CASH position included.
func (s *PositionSet) Len() int { return len(s.positions) }

// Symbols returns an iterator over the held symbols in alphabetical order.
func (s *PositionSet) Symbols() iter.Seq[string] {
	return func(yield func(string) bool) {
		symbols := slices.Collect(maps.Keys(s.positions))
		slices.Sort(symbols)
		for _, symbol := range symbols {
			if !yield(symbol) {
				return
			}
		}
	}
}

// AddBuy records a purchase on the symbol's position. When offsetCash is set
// and the event is applied, the purchase amount is mirrored as a CASH sale at
// a unit price of 1. A deduplicated or out-of-order event returns nil and
// leaves the set untouched.
func (s *PositionSet) AddBuy(symbol string, on Date, quantity Quantity, price Money, offsetCash bool) (*Action, error) {
	action := s.Ensure(symbol).AddBuy(on, quantity, price)
	if action == nil {
		return nil, nil
	}
	if offsetCash {
		if _, _, err := s.AddSale(CashSymbol, on, Q(action.Total().value), M(1, price.Currency()), false); err != nil {
			return nil, fmt.Errorf("cash offset for %s buy: %w", symbol, err)
		}
	}
	return action, nil
}

// AddSale records a sale on the symbol's position. When offsetCash is set and
// the event is applied, the sale proceeds are mirrored as a CASH buy at a
// unit price of 1.
func (s *PositionSet) AddSale(symbol string, on Date, quantity Quantity, price Money, offsetCash bool) (*Action, *SaleLedger, error) {
	action, sales, err := s.Ensure(symbol).AddSale(on, quantity, price)
	if err != nil {
		return nil, nil, err
	}
	if action == nil {
		return nil, NewSaleLedger(), nil
	}
	if offsetCash {
		if _, err := s.AddBuy(CashSymbol, on, Q(action.Total().value), M(1, price.Currency()), false); err != nil {
			return nil, nil, fmt.Errorf("cash offset for %s sale: %w", symbol, err)
		}
	}
	return action, sales, nil
}

// AddIncomeEvent records an income event on the symbol's position. When
// offsetCash is set and the event is applied, the income amount is credited
// as a CASH buy at a unit price of 1.
func (s *PositionSet) AddIncomeEvent(symbol string, on Date, kind IncomeKind, amount Money, offsetCash bool) (*IncomeEvent, error) {
	event := s.Ensure(symbol).AddIncomeEvent(on, kind, amount)
	if event == nil {
		return nil, nil
	}
	if offsetCash {
		if _, err := s.AddBuy(CashSymbol, on, Q(amount.value), M(1, amount.Currency()), false); err != nil {
			return nil, fmt.Errorf("cash offset for %s income: %w", symbol, err)
		}
	}
	return event, nil
}

// ApplySplit applies a split, reverse split or merger: the position held
// under fromSymbol is re-keyed to toSymbol and re-based so that it holds
// newQuantity shares at an unchanged cost basis.
func (s *PositionSet) ApplySplit(fromSymbol, toSymbol string, newQuantity Quantity) error {
	position, ok := s.positions[fromSymbol]
	if !ok {
		return fmt.Errorf("cannot split %s into %s: no such position", fromSymbol, toSymbol)
	}
	if err := position.ApplySplit(toSymbol, newQuantity); err != nil {
		return err
	}
	delete(s.positions, fromSymbol)
	s.positions[toSymbol] = position
	return nil
}

// AddDistribution grants the symbol's position additional shares at no cost.
func (s *PositionSet) AddDistribution(symbol string, additionalShares Quantity) error {
	return s.Ensure(symbol).ApplyDistribution(additionalShares)
}

// Copy returns an independent deep copy of every contained position, so an
// uncommitted document can be previewed without mutating persisted state.
func (s *PositionSet) Copy() *PositionSet {
	c := &PositionSet{positions: make(map[string]*Position, len(s.positions))}
	for symbol, p := range s.positions {
		c.positions[symbol] = p.Copy()
	}
	return c
}

// MarshalJSON implements the json.Marshaler interface for PositionSet.
func (s *PositionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.positions)
}

// UnmarshalJSON implements the json.Unmarshaler interface for PositionSet.
func (s *PositionSet) UnmarshalJSON(data []byte) error {
	positions := make(map[string]*Position)
	if err := json.Unmarshal(data, &positions); err != nil {
		return err
	}
	s.positions = positions
	return nil
}
