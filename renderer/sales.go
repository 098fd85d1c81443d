package renderer

import (
	"bytes"

	"github.com/SudoVim/funance"
	md "github.com/nao1215/markdown"
)

// SalesMarkdown renders the realized sales of every position, one section per
// symbol, with the aggregate profit and annualized return.
func SalesMarkdown(s *funance.PositionSet) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Realized Sales")

	for symbol := range s.Symbols() {
		if symbol == funance.CashSymbol {
			continue
		}
		p, _ := s.Get(symbol)
		sales := p.Sales()
		if sales.Len() == 0 {
			continue
		}

		doc.H2(symbol)
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignRight,
				md.AlignLeft,
				md.AlignRight,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{
				"Quantity",
				"Bought",
				"At",
				"Sold",
				"At",
				"Profit",
				"Annualized",
			},
		}
		for _, sale := range sales.All() {
			table.Rows = append(table.Rows, []string{
				sale.Quantity.String(),
				sale.PurchaseDate.String(),
				sale.PurchasePrice.String(),
				sale.SaleDate.String(),
				sale.SalePrice.String(),
				sale.Profit().String(),
				sale.Interest().String(),
			})
		}
		table.Rows = append(table.Rows, []string{
			"", "", "", "", "",
			md.Bold(sales.TotalProfit().String()),
			md.Bold(sales.AverageInterest().String()),
		})
		doc.Table(table)
	}

	return doc.String()
}
