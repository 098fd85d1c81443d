package fidelity

import (
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/SudoVim/funance"
)

// statementDateRE extracts the MMDDYYYY date embedded in a statement's file
// name, e.g. "Statement-10312025-123.csv".
var statementDateRE = regexp.MustCompile(`(\d{8})`)

// statementSections are the line ranges of the statement document holding
// position rows.
var statementSections = []struct{ begin, end string }{
	{"Core Account", "Subtotal of"},
	{"Mutual Funds", "Subtotal of"},
}

// StatementParser parses a Fidelity account statement. A statement is a
// snapshot: each position row becomes a single opening buy dated on the
// statement date.
type StatementParser struct {
	doc *Document
}

// NewStatementParser creates a parser over the given statement document.
func NewStatementParser(doc *Document) *StatementParser {
	return &StatementParser{doc: doc}
}

// StatementDate extracts the statement date from the document name.
func (p *StatementParser) StatementDate() (funance.Date, error) {
	name := p.doc.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	m := statementDateRE.FindStringSubmatch(name)
	if m == nil {
		return funance.Date{}, fmt.Errorf("no MMDDYYYY date in statement name %q", p.doc.Name())
	}
	on, err := time.Parse("01022006", m[1])
	if err != nil {
		return funance.Date{}, fmt.Errorf("invalid date in statement name %q: %w", p.doc.Name(), err)
	}
	return funance.NewDate(on.Date()), nil
}

// ParsePositions parses the initial set of positions out of the statement.
//
// Statement rows are an opening snapshot, not purchases funded from tracked
// cash, so they never emit cash offsets.
func (p *StatementParser) ParsePositions() (*funance.PositionSet, error) {
	statementDate, err := p.StatementDate()
	if err != nil {
		return nil, err
	}

	positions := funance.NewPositionSet()
	for _, section := range statementSections {
		lines, err := p.doc.LinesBetween(section.begin, section.end)
		if err != nil {
			return nil, err
		}
		if err := p.parseActionsFromLines(positions, statementDate, lines[1:]); err != nil {
			return nil, err
		}
	}
	return positions, nil
}

// parseActionsFromLines adds one opening buy per CSV position row.
// Row columns: symbol, description, quantity, price, _, _, cost basis.
func (p *StatementParser) parseActionsFromLines(positions *funance.PositionSet, statementDate funance.Date, lines []string) error {
	records, err := csv.NewReader(strings.NewReader(strings.Join(lines, "\n"))).ReadAll()
	if err != nil {
		return fmt.Errorf("statement %q: %w", p.doc.Name(), err)
	}
	for _, record := range records {
		if len(record) < 7 {
			return fmt.Errorf("statement %q: position row has %d columns, want 7", p.doc.Name(), len(record))
		}
		symbol := strings.TrimSpace(record[0])
		if symbol == "" {
			symbol = strings.TrimSpace(record[1])
		}
		quantity, err := funance.ParseQuantity(strings.TrimSpace(record[2]))
		if err != nil {
			return fmt.Errorf("statement %q: bad quantity for %s: %w", p.doc.Name(), symbol, err)
		}

		// The cost basis column is authoritative for the opening price; the
		// quoted price column only stands in when Fidelity reports no basis.
		var price funance.Money
		costBasis := strings.TrimSpace(record[6])
		if costBasis == "not applicable" {
			if price, err = funance.ParseMoney(strings.TrimSpace(record[3]), "USD"); err != nil {
				return fmt.Errorf("statement %q: bad price for %s: %w", p.doc.Name(), symbol, err)
			}
		} else {
			basis, err := funance.ParseMoney(costBasis, "USD")
			if err != nil {
				return fmt.Errorf("statement %q: bad cost basis for %s: %w", p.doc.Name(), symbol, err)
			}
			price = basis.Div(quantity)
		}

		if _, err := positions.AddBuy(symbol, statementDate, quantity, price, false); err != nil {
			return err
		}
	}
	return nil
}
