package funance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func saleRecord(purchaseDate string, purchasePrice float64, saleDate string, salePrice, quantity float64) SaleRecord {
	return SaleRecord{
		Symbol:        "AAPL",
		Quantity:      Q(quantity),
		PurchaseDate:  MustParseDate(purchaseDate),
		PurchasePrice: M(purchasePrice, "USD"),
		SaleDate:      MustParseDate(saleDate),
		SalePrice:     M(salePrice, "USD"),
	}
}

func TestSaleRecord_Profit(t *testing.T) {
	s := saleRecord("2025-03-17", 213.49, "2025-03-18", 220.49, 2)
	require.True(t, s.Profit().Equal(M(14, "USD")))
	require.True(t, s.Investment().Equal(M(426.98, "USD")))
	require.Equal(t, 1, s.DaysHeld())
}

func TestSaleRecord_Interest(t *testing.T) {
	t.Run("held one day", func(t *testing.T) {
		// 14 profit on 426.98 over a single day annualizes steeply.
		s := saleRecord("2025-03-17", 213.49, "2025-03-18", 220.49, 2)
		require.True(t, s.Interest().Round(3).Equal(P(11.976)))
	})

	t.Run("held a full year", func(t *testing.T) {
		s := saleRecord("2025-01-01", 100, "2026-01-01", 110, 1)
		// 365 days is just short of 365.25, so slightly above 10%.
		require.True(t, s.Interest().Round(3).Equal(P(0.1)))
	})

	t.Run("same-day sale", func(t *testing.T) {
		// No annualization for a zero holding period.
		s := saleRecord("2025-01-01", 100, "2025-01-01", 110, 1)
		require.True(t, s.Interest().Equal(P(0.1)))
	})
}

func TestSaleLedger_TotalProfit(t *testing.T) {
	l := NewSaleLedger(
		saleRecord("2025-01-01", 100, "2025-02-01", 110, 2),
		saleRecord("2025-01-01", 100, "2025-02-01", 95, 1),
	)
	require.True(t, l.TotalProfit().Equal(M(15, "USD")), "20 gained minus 5 lost")
}

func TestSaleLedger_AverageInterest(t *testing.T) {
	t.Run("single sale", func(t *testing.T) {
		s := saleRecord("2025-03-17", 213.49, "2025-03-18", 220.49, 2)
		l := NewSaleLedger(s)
		require.True(t, l.AverageInterest().Equal(s.Interest()))
	})

	t.Run("zero total profit", func(t *testing.T) {
		l := NewSaleLedger(saleRecord("2025-01-01", 100, "2025-02-01", 100, 2))
		require.True(t, l.AverageInterest().IsZero())
	})

	t.Run("empty ledger", func(t *testing.T) {
		require.True(t, NewSaleLedger().AverageInterest().IsZero())
	})
}

func TestSaleLedger_JSONRoundTrip(t *testing.T) {
	l := NewSaleLedger(
		saleRecord("2025-03-17", 213.49, "2025-03-18", 220.49, 2),
	)
	data, err := json.Marshal(l)
	require.NoError(t, err)

	var got SaleLedger
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, 1, got.Len())
	require.True(t, got.At(0).Profit().Equal(M(14, "USD")))
	require.True(t, got.At(0).Interest().Round(3).Equal(P(11.976)))
}
