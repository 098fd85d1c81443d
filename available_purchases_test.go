package funance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAvailablePurchases_ConsumeFIFO(t *testing.T) {
	q := NewAvailablePurchases(
		buyAction("2025-01-02", 4, 100),
		buyAction("2025-01-05", 4, 120),
	)

	sales, err := q.Consume(MustParseDate("2025-02-01"), M(150, "USD"), Q(6))
	require.NoError(t, err)

	// The older lot is consumed whole, the newer lot split.
	require.Equal(t, 2, sales.Len())
	require.True(t, sales.At(0).Quantity.Equal(Q(4)))
	require.True(t, sales.At(0).PurchasePrice.Equal(M(100, "USD")))
	require.Equal(t, MustParseDate("2025-01-02"), sales.At(0).PurchaseDate)
	require.True(t, sales.At(1).Quantity.Equal(Q(2)))
	require.True(t, sales.At(1).PurchasePrice.Equal(M(120, "USD")))
	require.Equal(t, MustParseDate("2025-01-05"), sales.At(1).PurchaseDate)

	// What remains is the tail of the newer lot.
	require.Equal(t, 1, q.Len())
	require.True(t, q.At(0).Quantity.Equal(Q(2)))
	require.True(t, q.At(0).Price.Equal(M(120, "USD")))
	require.True(t, q.TotalQuantity().Equal(Q(2)))
	require.True(t, q.CostBasis().Equal(M(240, "USD")))
}

func TestAvailablePurchases_ConsumeExactLot(t *testing.T) {
	q := NewAvailablePurchases(buyAction("2025-01-02", 4, 100))

	sales, err := q.Consume(MustParseDate("2025-02-01"), M(110, "USD"), Q(4))
	require.NoError(t, err)
	require.Equal(t, 1, sales.Len())
	require.Equal(t, 0, q.Len())
	require.True(t, q.TotalQuantity().IsZero())
}

func TestAvailablePurchases_ConsumeExhausted(t *testing.T) {
	q := NewAvailablePurchases(buyAction("2025-01-02", 4, 100))

	_, err := q.Consume(MustParseDate("2025-02-01"), M(110, "USD"), Q(6))
	require.Error(t, err)
	require.ErrorContains(t, err, "open lots exhausted")
}

func TestAvailablePurchases_Rebase(t *testing.T) {
	q := NewAvailablePurchases(
		buyAction("2025-01-02", 100, 5),
		buyAction("2025-01-05", 50, 6),
	)
	before := q.CostBasis()

	r := q.Rebase("NEWCO", Q(1).Div(Q(10)))
	require.Equal(t, 2, r.Len())
	require.True(t, r.TotalQuantity().Equal(Q(15)))
	require.True(t, r.CostBasis().Equal(before), "a split never changes cost basis")
}

func TestAvailablePurchases_PotentialProfit(t *testing.T) {
	q := NewAvailablePurchases(
		buyAction("2025-01-02", 4, 100),
		buyAction("2025-01-05", 4, 120),
	)
	require.True(t, q.PotentialValue(M(150, "USD")).Equal(M(1200, "USD")))
	require.True(t, q.PotentialProfit(M(150, "USD")).Equal(M(320, "USD")))
}

func TestAvailablePurchases_TotalInterest(t *testing.T) {
	t.Run("empty queue", func(t *testing.T) {
		q := NewAvailablePurchases()
		require.True(t, q.TotalInterest(M(100, "USD"), MustParseDate("2025-02-01")).IsZero())
	})

	t.Run("reference date on purchase date", func(t *testing.T) {
		q := NewAvailablePurchases(buyAction("2025-01-02", 4, 100))
		require.True(t, q.TotalInterest(M(110, "USD"), MustParseDate("2025-01-02")).IsZero())
	})

	t.Run("single lot", func(t *testing.T) {
		// 400 invested, 40 profit over 365.25/2 days: 10% over half a
		// year annualizes to 20%.
		q := NewAvailablePurchases(buyAction("2025-01-02", 4, 100))
		ref := MustParseDate("2025-01-02").Add(183)
		got := q.TotalInterest(M(110, "USD"), ref)
		require.True(t, got.Round(3).Equal(P(0.2)), "got %s", got)
	})
}

func TestAvailablePurchases_CopyIsIndependent(t *testing.T) {
	q := NewAvailablePurchases(buyAction("2025-01-02", 4, 100))
	c := q.Copy()

	_, err := c.Consume(MustParseDate("2025-02-01"), M(110, "USD"), Q(4))
	require.NoError(t, err)
	require.Equal(t, 0, c.Len())
	require.Equal(t, 1, q.Len())
	require.True(t, q.At(0).Quantity.Equal(Q(4)))
}
