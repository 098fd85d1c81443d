package funance

import (
	"encoding/json"
	"iter"
)

// ActionLedger is an append-only, deduplicated, date-monotonic sequence of
// trade actions: the full immutable trade history of one position.
//
// The ledger keeps a membership index alongside the ordered sequence. Append
// is the sole gate against double-application of an overlapping statement or
// activity export.
type ActionLedger struct {
	actions []Action
	index   map[actionKey]struct{}
}

// NewActionLedger creates a ledger holding the given actions, which must
// already be in chronological order.
func NewActionLedger(actions ...Action) *ActionLedger {
	l := &ActionLedger{
		actions: make([]Action, 0, len(actions)),
		index:   make(map[actionKey]struct{}, len(actions)),
	}
	for _, a := range actions {
		l.Append(a)
	}
	return l
}

// Append adds the action to the ledger. It returns false, without mutating
// the ledger, when an action with the same identity key was already applied
// or when the action's date precedes the last entry: events must arrive
// pre-sorted, late out-of-order arrivals are rejected, not merged.
func (l *ActionLedger) Append(a Action) bool {
	if _, ok := l.index[a.key()]; ok {
		return false
	}
	if last, ok := l.Last(); ok && a.Date.Before(last.Date) {
		return false
	}
	l.actions = append(l.actions, a)
	l.index[a.key()] = struct{}{}
	return true
}

// Len returns the number of actions in the ledger.
func (l *ActionLedger) Len() int { return len(l.actions) }

// At returns the i-th action in chronological order.
func (l *ActionLedger) At(i int) Action { return l.actions[i] }

// Last returns the most recent action, if any.
func (l *ActionLedger) Last() (Action, bool) {
	if len(l.actions) == 0 {
		return Action{}, false
	}
	return l.actions[len(l.actions)-1], true
}

// All returns an iterator over the actions in chronological order.
func (l *ActionLedger) All() iter.Seq2[int, Action] {
	return func(yield func(int, Action) bool) {
		for i, a := range l.actions {
			if !yield(i, a) {
				return
			}
		}
	}
}

// Rebase returns a new ledger with every action rebased for a split,
// preserving each action's notional value.
func (l *ActionLedger) Rebase(newSymbol string, multiplier Quantity) *ActionLedger {
	rebased := &ActionLedger{
		actions: make([]Action, 0, len(l.actions)),
		index:   make(map[actionKey]struct{}, len(l.actions)),
	}
	for _, a := range l.actions {
		r := a.Rebase(newSymbol, multiplier)
		rebased.actions = append(rebased.actions, r)
		rebased.index[r.key()] = struct{}{}
	}
	return rebased
}

// NetCostBasis returns the sum of all buy notionals minus all sell notionals.
func (l *ActionLedger) NetCostBasis() Money {
	var net Money
	for _, a := range l.actions {
		if a.Side == Buy {
			net = net.Add(a.Total())
		} else {
			net = net.Sub(a.Total())
		}
	}
	return net
}

// Copy returns an independent deep copy of the ledger.
func (l *ActionLedger) Copy() *ActionLedger {
	c := &ActionLedger{
		actions: make([]Action, len(l.actions)),
		index:   make(map[actionKey]struct{}, len(l.index)),
	}
	copy(c.actions, l.actions)
	for k := range l.index {
		c.index[k] = struct{}{}
	}
	return c
}

// MarshalJSON implements the json.Marshaler interface for ActionLedger.
func (l *ActionLedger) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.actions)
}

// UnmarshalJSON implements the json.Unmarshaler interface for ActionLedger.
func (l *ActionLedger) UnmarshalJSON(data []byte) error {
	var actions []Action
	if err := json.Unmarshal(data, &actions); err != nil {
		return err
	}
	l.actions = actions
	l.index = make(map[actionKey]struct{}, len(actions))
	for _, a := range actions {
		l.index[a.key()] = struct{}{}
	}
	return nil
}
