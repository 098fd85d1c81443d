package renderer

import (
	"bytes"

	"github.com/SudoVim/funance"
	md "github.com/nao1215/markdown"
)

// IncomeMarkdown renders the income history of every position over the given
// observation window, one section per symbol, with the total received and the
// annualized yield.
func IncomeMarkdown(s *funance.PositionSet, windowDays int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Income")

	for symbol := range s.Symbols() {
		p, _ := s.Get(symbol)
		income := p.Income()
		if income.Len() == 0 {
			continue
		}

		doc.H2(symbol)
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{
				"Date",
				"Kind",
				"Amount",
				"Of Position",
			},
		}
		for _, event := range income.All() {
			table.Rows = append(table.Rows, []string{
				event.Date.String(),
				string(event.Kind),
				event.Amount.String(),
				event.PositionPercent().String(),
			})
		}
		table.Rows = append(table.Rows, []string{
			md.Bold("Total"),
			"",
			md.Bold(income.TotalIncome().String()),
			md.Bold(income.AverageInterest(windowDays).String()),
		})
		doc.Table(table)
	}

	return doc.String()
}
