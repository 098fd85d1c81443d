package funance

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// SaleRecord pairs a realized sale, or the part of one, with the purchase lot
// it was matched against.
type SaleRecord struct {
	Symbol        string
	Quantity      Quantity
	PurchaseDate  Date
	PurchasePrice Money
	SaleDate      Date
	SalePrice     Money
}

// Profit returns the realized profit of the sale: the price difference times
// the quantity sold.
func (s SaleRecord) Profit() Money {
	return s.SalePrice.Sub(s.PurchasePrice).Mul(s.Quantity)
}

// Investment returns the amount of money originally invested in the sold
// shares.
func (s SaleRecord) Investment() Money {
	return s.PurchasePrice.Mul(s.Quantity)
}

// DaysHeld returns the number of days between purchase and sale.
func (s SaleRecord) DaysHeld() int {
	return s.SaleDate.Sub(s.PurchaseDate)
}

// Interest returns the annualized return of the sale: profit over investment
// over the fraction of a year the shares were held. A same-day sale uses a
// year fraction of one.
func (s SaleRecord) Interest() Percent {
	yearPercent := decimal.NewFromInt(1)
	if days := s.DaysHeld(); days != 0 {
		yearPercent = decimal.NewFromInt(int64(days)).Div(daysPerYear)
	}
	return Percent{value: s.Profit().value.Div(s.Investment().value).Div(yearPercent)}
}

// MarshalJSON implements the json.Marshaler interface for SaleRecord.
func (s SaleRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", s.Symbol)
	w.Append("quantity", s.Quantity)
	w.Append("purchase_date", s.PurchaseDate)
	w.Append("purchase_price", s.PurchasePrice)
	w.Append("sale_date", s.SaleDate)
	w.Append("sale_price", s.SalePrice)
	w.Append("profit", s.Profit())
	w.Append("interest", s.Interest())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for SaleRecord.
// The derived "profit" and "interest" fields are ignored.
func (s *SaleRecord) UnmarshalJSON(data []byte) error {
	var obj struct {
		Symbol        string   `json:"symbol"`
		Quantity      Quantity `json:"quantity"`
		PurchaseDate  Date     `json:"purchase_date"`
		PurchasePrice Money    `json:"purchase_price"`
		SaleDate      Date     `json:"sale_date"`
		SalePrice     Money    `json:"sale_price"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	s.Symbol = obj.Symbol
	s.Quantity = obj.Quantity
	s.PurchaseDate = obj.PurchaseDate
	s.PurchasePrice = obj.PurchasePrice
	s.SaleDate = obj.SaleDate
	s.SalePrice = obj.SalePrice
	return nil
}
