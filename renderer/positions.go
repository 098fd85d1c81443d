// Package renderer renders account reports as markdown.
package renderer

import (
	"bytes"

	"github.com/SudoVim/funance"
	md "github.com/nao1215/markdown"
)

// PositionsMarkdown renders every held position with its running totals.
func PositionsMarkdown(s *funance.PositionSet) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Positions")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{
			"Symbol",
			"Quantity",
			"Cost Basis",
			"Per Share",
		},
	}

	var total funance.Money
	for symbol := range s.Symbols() {
		p, _ := s.Get(symbol)
		if p.Quantity().IsZero() {
			continue
		}
		table.Rows = append(table.Rows, []string{
			p.Symbol(),
			p.Quantity().String(),
			p.CostBasis().String(),
			p.CostBasisPerShare().String(),
		})
		total = total.Add(p.CostBasis())
	}
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"),
		"",
		md.Bold(total.String()),
		"",
	})
	doc.Table(table)

	return doc.String()
}
