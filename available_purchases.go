package funance

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/shopspring/decimal"
)

// AvailablePurchases is the FIFO queue of open purchase lots of one position:
// buys that have not yet been fully matched against a sale. Each lot is an
// Action whose quantity is consumed in place as sales match against it.
type AvailablePurchases struct {
	lots []Action // head at index 0, ordered by acquisition date
}

// NewAvailablePurchases creates a queue holding the given lots, which must
// already be in acquisition order.
func NewAvailablePurchases(lots ...Action) *AvailablePurchases {
	return &AvailablePurchases{lots: append([]Action(nil), lots...)}
}

// Append adds an open lot at the tail of the queue.
func (q *AvailablePurchases) Append(lot Action) {
	q.lots = append(q.lots, lot)
}

// Len returns the number of open lots.
func (q *AvailablePurchases) Len() int { return len(q.lots) }

// At returns the i-th open lot, head first.
func (q *AvailablePurchases) At(i int) Action { return q.lots[i] }

// All returns an iterator over the open lots, head first.
func (q *AvailablePurchases) All() iter.Seq2[int, Action] {
	return func(yield func(int, Action) bool) {
		for i, a := range q.lots {
			if !yield(i, a) {
				return
			}
		}
	}
}

// Consume matches a sale against the open lots in FIFO order. Lots are popped
// from the head, splitting the head lot when the remaining sale quantity is
// smaller than it, and one SaleRecord is produced per lot or partial lot
// consumed.
//
// Exhausting the queue before the full quantity is matched is an error: the
// event history contains a sell with no matching prior buy, and continuing
// would corrupt the cost basis.
func (q *AvailablePurchases) Consume(saleDate Date, salePrice Money, saleQuantity Quantity) (*SaleLedger, error) {
	sales := NewSaleLedger()
	found := Q(0)
	for found.LessThan(saleQuantity) {
		if len(q.lots) == 0 {
			return nil, fmt.Errorf("cannot match sale of %s units on %s: open lots exhausted with %s still unmatched",
				saleQuantity, saleDate, saleQuantity.Sub(found))
		}
		purchase := &q.lots[0]
		delta := purchase.Quantity.Min(saleQuantity.Sub(found))
		sales.Append(SaleRecord{
			Symbol:        purchase.Symbol,
			Quantity:      delta,
			PurchaseDate:  purchase.Date,
			PurchasePrice: purchase.Price,
			SaleDate:      saleDate,
			SalePrice:     salePrice,
		})
		found = found.Add(delta)
		purchase.Quantity = purchase.Quantity.Sub(delta)
		if purchase.Quantity.IsZero() {
			q.lots = q.lots[1:]
		}
	}
	return sales, nil
}

// Rebase returns a new queue with every open lot rebased for a split,
// preserving each lot's notional value.
func (q *AvailablePurchases) Rebase(newSymbol string, multiplier Quantity) *AvailablePurchases {
	rebased := &AvailablePurchases{lots: make([]Action, 0, len(q.lots))}
	for _, a := range q.lots {
		rebased.lots = append(rebased.lots, a.Rebase(newSymbol, multiplier))
	}
	return rebased
}

// TotalQuantity returns the total remaining quantity over all open lots.
func (q *AvailablePurchases) TotalQuantity() Quantity {
	total := Q(0)
	for _, a := range q.lots {
		total = total.Add(a.Quantity)
	}
	return total
}

// CostBasis returns the total amount paid for the open lots.
func (q *AvailablePurchases) CostBasis() Money {
	var total Money
	for _, a := range q.lots {
		total = total.Add(a.Total())
	}
	return total
}

// PotentialValue returns the value of the open lots at the given unit price.
func (q *AvailablePurchases) PotentialValue(price Money) Money {
	return price.Mul(q.TotalQuantity())
}

// PotentialProfit returns the profit the open lots would realize if sold at
// the given unit price.
func (q *AvailablePurchases) PotentialProfit(price Money) Money {
	var total Money
	for _, a := range q.lots {
		total = total.Add(a.PotentialProfit(price))
	}
	return total
}

// TotalInterest returns the annualized return the open position would realize
// if sold at the given unit price on the reference date, weighting each lot's
// investment by the time it has been held.
func (q *AvailablePurchases) TotalInterest(price Money, ref Date) Percent {
	if len(q.lots) == 0 {
		return Percent{}
	}
	totalDays := ref.Sub(q.lots[0].Date)
	if totalDays == 0 {
		return Percent{}
	}
	var investmentDays decimal.Decimal
	for _, a := range q.lots {
		days := decimal.NewFromInt(int64(ref.Sub(a.Date)))
		investmentDays = investmentDays.Add(a.Total().value.Mul(days))
	}
	total := decimal.NewFromInt(int64(totalDays))
	normalizedInvestment := investmentDays.Div(total)
	yearPercent := total.Div(daysPerYear)
	return Percent{value: q.PotentialProfit(price).value.Div(normalizedInvestment).Div(yearPercent)}
}

// Copy returns an independent deep copy of the queue.
func (q *AvailablePurchases) Copy() *AvailablePurchases {
	c := &AvailablePurchases{lots: make([]Action, len(q.lots))}
	copy(c.lots, q.lots)
	return c
}

// MarshalJSON implements the json.Marshaler interface for AvailablePurchases.
func (q *AvailablePurchases) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.lots)
}

// UnmarshalJSON implements the json.Unmarshaler interface for AvailablePurchases.
func (q *AvailablePurchases) UnmarshalJSON(data []byte) error {
	var lots []Action
	if err := json.Unmarshal(data, &lots); err != nil {
		return err
	}
	q.lots = lots
	return nil
}
