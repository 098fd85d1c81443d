package fidelity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newDocument(t *testing.T, name, contents string) *Document {
	t.Helper()
	doc, err := NewDocument(name, strings.NewReader(contents))
	require.NoError(t, err)
	return doc
}

func TestDocument_FindLine(t *testing.T) {
	doc := newDocument(t, "test.csv", "header\n\nCore Account,1\nrow\nSubtotal of Core\n")

	i, err := doc.FindLine("Core Account", 0)
	require.NoError(t, err)
	require.Equal(t, 2, i)

	// An empty prefix matches the first empty line.
	i, err = doc.FindLine("", 0)
	require.NoError(t, err)
	require.Equal(t, 1, i)

	// The search starts at the given line.
	i, err = doc.FindLine("Subtotal of", 3)
	require.NoError(t, err)
	require.Equal(t, 4, i)

	_, err = doc.FindLine("Missing Section", 0)
	require.Error(t, err)
	require.ErrorContains(t, err, `"test.csv"`)
}

func TestDocument_LinesBetween(t *testing.T) {
	doc := newDocument(t, "test.csv", "header\nCore Account\nrow one\nrow two\nSubtotal of Core\ntrailer\n")

	lines, err := doc.LinesBetween("Core Account", "Subtotal of")
	require.NoError(t, err)
	require.Equal(t, []string{"Core Account", "row one", "row two"}, lines)
}

func TestDocument_LinesBetweenTrailingSection(t *testing.T) {
	t.Run("stops at blank line", func(t *testing.T) {
		doc := newDocument(t, "test.csv", "Run Date,Action\nrow one\n\nDisclaimer text")
		lines, err := doc.LinesBetween("Run Date", "")
		require.NoError(t, err)
		require.Equal(t, []string{"Run Date,Action", "row one"}, lines)
	})

	t.Run("runs to end of document", func(t *testing.T) {
		doc := newDocument(t, "test.csv", "Run Date,Action\nrow one\nrow two")
		lines, err := doc.LinesBetween("Run Date", "")
		require.NoError(t, err)
		require.Equal(t, []string{"Run Date,Action", "row one", "row two"}, lines)
	})
}
