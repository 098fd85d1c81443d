package renderer

import (
	"strings"
	"testing"

	"github.com/SudoVim/funance"
	"github.com/stretchr/testify/require"
)

func testPositions(t *testing.T) *funance.PositionSet {
	t.Helper()
	s := funance.NewPositionSet()
	_, err := s.AddBuy(funance.CashSymbol, funance.MustParseDate("2025-01-01"), funance.Q(10000), funance.M(1, "USD"), false)
	require.NoError(t, err)
	_, err = s.AddBuy("AAPL", funance.MustParseDate("2025-03-17"), funance.Q(4), funance.M(213.49, "USD"), true)
	require.NoError(t, err)
	_, _, err = s.AddSale("AAPL", funance.MustParseDate("2025-03-18"), funance.Q(2), funance.M(220.49, "USD"), true)
	require.NoError(t, err)
	_, err = s.AddIncomeEvent("AAPL", funance.MustParseDate("2025-04-15"), funance.Dividend, funance.M(1.04, "USD"), true)
	require.NoError(t, err)
	return s
}

func TestPositionsMarkdown(t *testing.T) {
	got := PositionsMarkdown(testPositions(t))

	require.True(t, strings.HasPrefix(got, "# Positions"))
	require.Contains(t, got, "AAPL")
	require.Contains(t, got, "CASH")
	require.Contains(t, got, "$426.98")
	require.Contains(t, got, "$213.49")
}

func TestSalesMarkdown(t *testing.T) {
	got := SalesMarkdown(testPositions(t))

	require.Contains(t, got, "## AAPL")
	require.Contains(t, got, "2025-03-17")
	require.Contains(t, got, "2025-03-18")
	require.Contains(t, got, "$14.00")
	// The cash mirror entries never show up as sales of their own section.
	require.NotContains(t, got, "## CASH")
}

func TestIncomeMarkdown(t *testing.T) {
	got := IncomeMarkdown(testPositions(t), 100)

	require.Contains(t, got, "## AAPL")
	require.Contains(t, got, "dividend")
	require.Contains(t, got, "$1.04")
}

func TestMarkdown_SkipsEmptySections(t *testing.T) {
	s := funance.NewPositionSet()
	require.NotContains(t, SalesMarkdown(s), "##")
	require.NotContains(t, IncomeMarkdown(s, 100), "##")
}
