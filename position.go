package funance

import (
	"encoding/json"
	"fmt"
)

// Position is the per-symbol aggregate of one holding account: the full trade
// history, the income history, the realized sales and the queue of still-open
// purchase lots, together with the running quantity held and cost basis.
//
// After every mutation the running totals match the open lots exactly:
// quantity equals the sum of open-lot quantities and cost basis equals the
// sum of open-lot notionals.
type Position struct {
	symbol    string
	actions   *ActionLedger
	income    *IncomeLedger
	sales     *SaleLedger
	open      *AvailablePurchases
	quantity  Quantity
	costBasis Money
}

// NewPosition creates an empty position for the given symbol.
func NewPosition(symbol string) *Position {
	return &Position{
		symbol:  symbol,
		actions: NewActionLedger(),
		income:  NewIncomeLedger(),
		sales:   NewSaleLedger(),
		open:    NewAvailablePurchases(),
	}
}

// Symbol returns the symbol this position is held under.
func (p *Position) Symbol() string { return p.symbol }

// Quantity returns the quantity currently held.
func (p *Position) Quantity() Quantity { return p.quantity }

// CostBasis returns the total amount paid for the currently open lots.
func (p *Position) CostBasis() Money { return p.costBasis }

// CostBasisPerShare returns the cost basis per share held, zero for an empty
// position.
func (p *Position) CostBasisPerShare() Money {
	if p.quantity.IsZero() {
		return Money{}
	}
	return p.costBasis.Div(p.quantity)
}

// Actions returns the position's full trade history.
func (p *Position) Actions() *ActionLedger { return p.actions }

// Income returns the position's income history.
func (p *Position) Income() *IncomeLedger { return p.income }

// Sales returns the position's realized sales.
func (p *Position) Sales() *SaleLedger { return p.sales }

// OpenLots returns the position's queue of open purchase lots.
func (p *Position) OpenLots() *AvailablePurchases { return p.open }

// AddBuy records a purchase of the given quantity at the given unit price.
// It returns nil when the event is a duplicate or arrives out of order; the
// caller treats that as "already applied" and continues.
func (p *Position) AddBuy(on Date, quantity Quantity, price Money) *Action {
	action := Action{Symbol: p.symbol, Date: on, Side: Buy, Quantity: quantity, Price: price}
	if !p.actions.Append(action) {
		return nil
	}
	p.open.Append(action)
	p.costBasis = p.costBasis.Add(action.Total())
	p.quantity = p.quantity.Add(action.Quantity)
	return &action
}

// AddSale records a sale of the given quantity at the given unit price and
// matches it against the open lots in FIFO order. Quantity and cost basis are
// reduced at the purchase price of each matched lot, realizing FIFO cost.
//
// A duplicate or out-of-order event returns (nil, empty ledger, nil). A sale
// that the open lots cannot satisfy is an error: the history is inconsistent
// and must not be retried.
func (p *Position) AddSale(on Date, quantity Quantity, price Money) (*Action, *SaleLedger, error) {
	action := Action{Symbol: p.symbol, Date: on, Side: Sell, Quantity: quantity, Price: price}
	if !p.actions.Append(action) {
		return nil, NewSaleLedger(), nil
	}
	sales, err := p.open.Consume(on, price, quantity)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", p.symbol, err)
	}
	for _, s := range sales.sales {
		p.costBasis = p.costBasis.Sub(s.Investment())
		p.quantity = p.quantity.Sub(s.Quantity)
		p.sales.Append(s)
	}
	return &action, sales, nil
}

// AddIncomeEvent records an income event of the given kind and amount,
// stamping the position's current cost basis on it. It returns nil when the
// event is a duplicate or arrives out of order.
func (p *Position) AddIncomeEvent(on Date, kind IncomeKind, amount Money) *IncomeEvent {
	event := IncomeEvent{
		Symbol:    p.symbol,
		Date:      on,
		Kind:      kind,
		Amount:    amount,
		CostBasis: p.costBasis,
	}
	if !p.income.Append(event) {
		return nil
	}
	return &event
}

// ApplySplit renames the position and re-bases the trade history and open
// lots so that the position holds newQuantity shares at the same total cost:
// quantities are multiplied and prices divided by newQuantity/quantity.
//
// Splitting an empty position, or to a non-positive quantity, is an error:
// the multiplier is undefined and the history is necessarily inconsistent.
func (p *Position) ApplySplit(newSymbol string, newQuantity Quantity) error {
	if p.quantity.IsZero() {
		return fmt.Errorf("cannot split %s into %s: position is empty", p.symbol, newSymbol)
	}
	if !newQuantity.IsPositive() {
		return fmt.Errorf("cannot split %s into %s: new quantity %s is not positive", p.symbol, newSymbol, newQuantity)
	}
	multiplier := newQuantity.Div(p.quantity)
	p.symbol = newSymbol
	p.quantity = newQuantity
	p.actions = p.actions.Rebase(newSymbol, multiplier)
	p.open = p.open.Rebase(newSymbol, multiplier)
	return nil
}

// ApplyDistribution grants additionalShares new shares at no cost, re-basing
// the position like a same-symbol split of (quantity+additionalShares) for
// quantity.
func (p *Position) ApplyDistribution(additionalShares Quantity) error {
	return p.ApplySplit(p.symbol, p.quantity.Add(additionalShares))
}

// AverageIncomeYield returns the annualized income yield of the position over
// the given window, see IncomeLedger.AverageInterest.
func (p *Position) AverageIncomeYield(windowDays int) Percent {
	return p.income.AverageInterest(windowDays)
}

// PotentialProfit returns the profit the open position would realize if sold
// at the given unit price.
func (p *Position) PotentialProfit(price Money) Money {
	return p.open.PotentialProfit(price)
}

// TotalInterest returns the time-weighted annualized return of the open
// position at the given unit price and reference date.
func (p *Position) TotalInterest(price Money, ref Date) Percent {
	return p.open.TotalInterest(price, ref)
}

// Copy returns an independent deep copy of the position.
func (p *Position) Copy() *Position {
	return &Position{
		symbol:    p.symbol,
		actions:   p.actions.Copy(),
		income:    p.income.Copy(),
		sales:     p.sales.Copy(),
		open:      p.open.Copy(),
		quantity:  p.quantity,
		costBasis: p.costBasis,
	}
}

// MarshalJSON implements the json.Marshaler interface for Position.
func (p *Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", p.symbol)
	w.Append("quantity", p.quantity)
	w.Append("cost_basis", p.costBasis)
	w.Append("cost_basis_per_share", p.CostBasisPerShare())
	w.Append("actions", p.actions)
	w.Append("income", p.income)
	w.Append("available_purchases", p.open)
	w.Append("sales", p.sales)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Position. The
// derived "cost_basis_per_share" field is ignored.
func (p *Position) UnmarshalJSON(data []byte) error {
	var obj struct {
		Symbol    string              `json:"symbol"`
		Quantity  Quantity            `json:"quantity"`
		CostBasis Money               `json:"cost_basis"`
		Actions   *ActionLedger       `json:"actions"`
		Income    *IncomeLedger       `json:"income"`
		Open      *AvailablePurchases `json:"available_purchases"`
		Sales     *SaleLedger         `json:"sales"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	p.symbol = obj.Symbol
	p.quantity = obj.Quantity
	p.costBasis = obj.CostBasis
	p.actions = obj.Actions
	p.income = obj.Income
	p.open = obj.Open
	p.sales = obj.Sales
	if p.actions == nil {
		p.actions = NewActionLedger()
	}
	if p.income == nil {
		p.income = NewIncomeLedger()
	}
	if p.open == nil {
		p.open = NewAvailablePurchases()
	}
	if p.sales == nil {
		p.sales = NewSaleLedger()
	}
	return nil
}
