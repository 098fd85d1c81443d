package funance

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodePositionSet_RoundTrip(t *testing.T) {
	s := fundedSet(t, 10000)
	_, err := s.AddBuy("AAPL", MustParseDate("2025-03-17"), Q(4), M(213.49, "USD"), true)
	require.NoError(t, err)
	_, _, err = s.AddSale("AAPL", MustParseDate("2025-03-18"), Q(2), M(220.49, "USD"), true)
	require.NoError(t, err)
	_, err = s.AddIncomeEvent("AAPL", MustParseDate("2025-04-15"), Dividend, M(1.04, "USD"), true)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodePositionSet(&buf, s))

	got, err := DecodePositionSet(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, s.Len(), got.Len())

	// Re-encoding the decoded set reproduces the document byte for byte.
	var again bytes.Buffer
	require.NoError(t, EncodePositionSet(&again, got))
	require.Equal(t, buf.String(), again.String())

	aapl, ok := got.Get("AAPL")
	require.True(t, ok)
	require.True(t, aapl.Quantity().Equal(Q(2)))
	require.True(t, aapl.CostBasis().Equal(M(426.98, "USD")))

	// The restored dedup gate still rejects a replay.
	action, err := got.AddBuy("AAPL", MustParseDate("2025-03-17"), Q(4), M(213.49, "USD"), true)
	require.NoError(t, err)
	require.Nil(t, action)
}

func TestDecodePositionSet_Invalid(t *testing.T) {
	_, err := DecodePositionSet(strings.NewReader("not json"))
	require.Error(t, err)
	require.ErrorContains(t, err, "cannot decode positions")
}
