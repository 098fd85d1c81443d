package funance

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Side identifies the direction of a trade action.
type Side string

const (
	// Buy opens or extends a position.
	Buy Side = "buy"
	// Sell realizes part or all of a position against its open lots.
	Sell Side = "sell"
)

// ParseSide parses a string into a Side.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown action side: %q", s)
	}
}

// Action is a single trade event for a position held in an account: one
// purchase or one sale of a quantity of a symbol at a unit price.
//
// Actions are value objects. Two actions with the same identity key, namely
// (date, side, quantity, price), describe the same event so re-ingesting an
// overlapping event stream is a no-op.
type Action struct {
	Symbol   string
	Date     Date
	Side     Side
	Quantity Quantity
	Price    Money
}

// actionKey is the structural identity of an action, usable as a map key.
type actionKey struct {
	date     Date
	side     Side
	quantity string
	price    string
}

// canonicalDecimal renders a decimal in a representation-independent form so
// that 2, 2.0 and 2.00 produce the same identity key.
func canonicalDecimal(d decimal.Decimal) string {
	s := d.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}

// key returns the structural identity of the action.
func (a Action) key() actionKey {
	return actionKey{
		date:     a.Date,
		side:     a.Side,
		quantity: canonicalDecimal(a.Quantity.value),
		price:    canonicalDecimal(a.Price.value),
	}
}

// Total returns the notional value of the action, quantity times unit price.
func (a Action) Total() Money { return a.Price.Mul(a.Quantity) }

// Rebase recalculates this action after a split: the quantity is multiplied
// and the unit price divided by the multiplier, preserving notional value.
func (a Action) Rebase(newSymbol string, multiplier Quantity) Action {
	return Action{
		Symbol:   newSymbol,
		Date:     a.Date,
		Side:     a.Side,
		Quantity: a.Quantity.Mul(multiplier),
		Price:    a.Price.Div(multiplier),
	}
}

// PotentialProfit returns the profit this lot would realize if sold at the
// given unit price.
func (a Action) PotentialProfit(price Money) Money {
	return price.Sub(a.Price).Mul(a.Quantity)
}

// MarshalJSON implements the json.Marshaler interface for Action.
func (a Action) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", a.Symbol)
	w.Append("date", a.Date)
	w.Append("action", a.Side)
	w.Append("quantity", a.Quantity)
	w.Append("price", a.Price)
	w.Append("total", a.Total())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Action. The
// derived "total" field is ignored.
func (a *Action) UnmarshalJSON(data []byte) error {
	var obj struct {
		Symbol   string   `json:"symbol"`
		Date     Date     `json:"date"`
		Side     string   `json:"action"`
		Quantity Quantity `json:"quantity"`
		Price    Money    `json:"price"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	side, err := ParseSide(obj.Side)
	if err != nil {
		return err
	}
	a.Symbol = obj.Symbol
	a.Date = obj.Date
	a.Side = side
	a.Quantity = obj.Quantity
	a.Price = obj.Price
	return nil
}
