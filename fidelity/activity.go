package fidelity

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SudoVim/funance"
)

// row is one CSV record of an activity export, keyed by header name.
type row map[string]string

// get returns the trimmed value of the named column.
func (r row) get(name string) string { return strings.TrimSpace(r[name]) }

// has reports whether the export carries the named column at all.
func (r row) has(name string) bool { _, ok := r[name]; return ok }

// runDateLayouts are the date formats seen in the "Run Date" column.
var runDateLayouts = []string{"01/02/2006", "1/2/2006", "2006-01-02"}

func parseRunDate(s string) (funance.Date, error) {
	for _, layout := range runDateLayouts {
		if on, err := time.Parse(layout, s); err == nil {
			return funance.NewDate(on.Date()), nil
		}
	}
	return funance.Date{}, fmt.Errorf("unrecognized run date %q", s)
}

// activityHandler pairs a recognized action-description prefix with the
// function that applies it.
type activityHandler struct {
	prefix string
	apply  func(p *ActivityParser, positions *funance.PositionSet, r row) error
}

// activityHandlers is the lookup table of recognized description prefixes.
// Order matters: a more specific prefix must precede its shorter variant
// (e.g. "REINVESTMENT CASH" before "REINVESTMENT"). A description matching
// no entry is a hard parse error.
var activityHandlers = []activityHandler{
	// There's always a REINVESTMENT CASH paired with an INTEREST EARNED
	// activity, so it can safely be ignored.
	{"REINVESTMENT CASH", func(*ActivityParser, *funance.PositionSet, row) error { return nil }},
	{"INTEREST EARNED CASH", (*ActivityParser).addCashInterest},
	{"LONG-TERM CAP GAIN", (*ActivityParser).addLongTermCapGain},
	{"SHORT-TERM CAP GAIN", (*ActivityParser).addShortTermCapGain},
	{"DIVIDEND RECEIVED", (*ActivityParser).addDividend},
	{"DIVIDEND ADJUSTMENT", (*ActivityParser).addDividend},
	{"MUNI TAXABLE INT", (*ActivityParser).addBondInterest},
	{"INTEREST", (*ActivityParser).addBondInterest},
	{"REINVESTMENT", (*ActivityParser).addReinvestment},
	{"YOU BOUGHT", (*ActivityParser).addBuy},
	{"You bought", (*ActivityParser).addCryptoBuy},
	{"YOU SOLD", (*ActivityParser).addSale},
	{"You sold", (*ActivityParser).addSale},
	{"Electronic Funds Transfer Received", (*ActivityParser).ignore},
	{"OTHER DEBIT transfer", (*ActivityParser).ignore},
	{"OTHER CREDIT transfer", (*ActivityParser).ignore},
	{"Transfer in from brokerage", (*ActivityParser).ignore},
	{"Transfer out to brokerage", (*ActivityParser).ignore},
	// Reverse splits are handled through the "FROM" variant only.
	{"REVERSE SPLIT R/S TO", (*ActivityParser).ignore},
	{"REVERSE SPLIT R/S FROM", (*ActivityParser).addReverseSplit},
	{"MERGER MER FROM", (*ActivityParser).addMergerSplit},
	{"IN LIEU OF FRX SHARE LEU PAYOUT", (*ActivityParser).addReverseSplitPayout},
	{"MERGER MER PAYOUT", (*ActivityParser).addMergerPayout},
	{"REDEMPTION PAYOUT", (*ActivityParser).addRedemptionPayout},
	{"DISTRIBUTION", (*ActivityParser).addDistribution},
	{"ROYALTY TR PYMT", (*ActivityParser).addRoyaltyPayment},
	{"RETURN OF CAPITAL", (*ActivityParser).addReturnOfCapital},
	{"FOREIGN TAX PAID", (*ActivityParser).addForeignTax},
	{"FEE CHARGED", (*ActivityParser).addFee},
}

// sameDayRank orders same-day activities deterministically: buys settle
// before sells, sells before long-term capital gain distributions, and
// reinvestment buys last of all so they can consume the income that funds
// them.
func sameDayRank(action string) int {
	switch {
	case strings.HasPrefix(action, "YOU BOUGHT"), strings.HasPrefix(action, "You bought"):
		return 0
	case strings.HasPrefix(action, "YOU SOLD"), strings.HasPrefix(action, "You sold"):
		return 1
	case strings.HasPrefix(action, "LONG-TERM CAP GAIN"):
		return 2
	case strings.HasPrefix(action, "REINVESTMENT"):
		return 11
	default:
		return 10
	}
}

// ActivityParser parses a Fidelity account activity export and applies its
// rows on top of an existing timeline of positions.
type ActivityParser struct {
	doc           *Document
	accountNumber string
	aliases       map[string]string
}

// NewActivityParser creates a parser over the given activity document.
// A non-empty accountNumber restricts parsing to that account's rows, and
// aliases rewrites vendor ticker symbols to canonical ones.
func NewActivityParser(doc *Document, accountNumber string, aliases map[string]string) *ActivityParser {
	return &ActivityParser{doc: doc, accountNumber: accountNumber, aliases: aliases}
}

// ParsePositions applies the document's activities to a copy of the given
// positions and returns the copy. The input set is never mutated, so a
// failed or speculative parse leaves persisted state untouched.
func (p *ActivityParser) ParsePositions(positions *funance.PositionSet) (*funance.PositionSet, error) {
	positions = positions.Copy()

	lines, err := p.doc.LinesBetween("Run Date", "")
	if err != nil {
		return nil, err
	}
	rows, err := readRows(lines)
	if err != nil {
		return nil, fmt.Errorf("activity %q: %w", p.doc.Name(), err)
	}

	// Activities are replayed ascending by date with a stable same-day
	// tie-break.
	type datedRow struct {
		date funance.Date
		rank int
		r    row
	}
	dated := make([]datedRow, 0, len(rows))
	for _, r := range rows {
		on, err := parseRunDate(r.get("Run Date"))
		if err != nil {
			return nil, fmt.Errorf("activity %q: %w", p.doc.Name(), err)
		}
		dated = append(dated, datedRow{date: on, rank: sameDayRank(r.get("Action")), r: r})
	}
	sort.SliceStable(dated, func(i, j int) bool {
		if dated[i].date != dated[j].date {
			return dated[i].date.Before(dated[j].date)
		}
		return dated[i].rank < dated[j].rank
	})

	for _, d := range dated {
		if err := p.parseActivity(positions, d.r); err != nil {
			return nil, fmt.Errorf("activity %q on %s: %w", p.doc.Name(), d.date, err)
		}
	}
	return positions, nil
}

// readRows reads the header line and returns one keyed row per record.
func readRows(lines []string) ([]row, error) {
	reader := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	header := records[0]
	rows := make([]row, 0, len(records)-1)
	for _, record := range records[1:] {
		r := make(row, len(header))
		for i, name := range header {
			if i < len(record) {
				r[strings.TrimSpace(name)] = record[i]
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// parseActivity applies a single activity row through the handler table.
func (p *ActivityParser) parseActivity(positions *funance.PositionSet, r row) error {
	if p.accountNumber != "" && r.has("Account Number") && r.get("Account Number") != p.accountNumber {
		return nil
	}
	action := r.get("Action")
	if action == "" {
		return nil
	}
	for _, h := range activityHandlers {
		if strings.HasPrefix(action, h.prefix) {
			return h.apply(p, positions, r)
		}
	}
	return fmt.Errorf("unknown activity action: %q", action)
}

// applyAlias rewrites a vendor symbol to its canonical form.
func (p *ActivityParser) applyAlias(symbol string) string {
	if canonical, ok := p.aliases[symbol]; ok {
		return canonical
	}
	return symbol
}

func (p *ActivityParser) date(r row) (funance.Date, error) {
	return parseRunDate(r.get("Run Date"))
}

func (p *ActivityParser) symbol(r row) string {
	return p.applyAlias(r.get("Symbol"))
}

func (p *ActivityParser) quantity(r row) (funance.Quantity, error) {
	return funance.ParseQuantity(r.get("Quantity"))
}

func (p *ActivityParser) amount(r row) (funance.Money, error) {
	return funance.ParseMoney(r.get("Amount"), "USD")
}

func (p *ActivityParser) price(r row, column string) (funance.Money, error) {
	return funance.ParseMoney(r.get(column), "USD")
}

func (p *ActivityParser) ignore(*funance.PositionSet, row) error { return nil }

// addIncome records an income event of the given kind for the row's symbol.
func (p *ActivityParser) addIncome(positions *funance.PositionSet, r row, symbol string, kind funance.IncomeKind) error {
	on, err := p.date(r)
	if err != nil {
		return err
	}
	amount, err := p.amount(r)
	if err != nil {
		return err
	}
	_, err = positions.AddIncomeEvent(symbol, on, kind, amount, true)
	return err
}

func (p *ActivityParser) addCashInterest(positions *funance.PositionSet, r row) error {
	return p.addIncome(positions, r, funance.CashSymbol, funance.Interest)
}

func (p *ActivityParser) addLongTermCapGain(positions *funance.PositionSet, r row) error {
	return p.addIncome(positions, r, p.symbol(r), funance.LongTermGain)
}

func (p *ActivityParser) addShortTermCapGain(positions *funance.PositionSet, r row) error {
	return p.addIncome(positions, r, p.symbol(r), funance.ShortTermGain)
}

func (p *ActivityParser) addDividend(positions *funance.PositionSet, r row) error {
	return p.addIncome(positions, r, p.symbol(r), funance.Dividend)
}

func (p *ActivityParser) addBondInterest(positions *funance.PositionSet, r row) error {
	return p.addIncome(positions, r, p.symbol(r), funance.Interest)
}

func (p *ActivityParser) addRoyaltyPayment(positions *funance.PositionSet, r row) error {
	return p.addIncome(positions, r, p.symbol(r), funance.RoyaltyPayment)
}

func (p *ActivityParser) addReturnOfCapital(positions *funance.PositionSet, r row) error {
	return p.addIncome(positions, r, p.symbol(r), funance.ReturnOfCapital)
}

func (p *ActivityParser) addForeignTax(positions *funance.PositionSet, r row) error {
	return p.addIncome(positions, r, p.symbol(r), funance.ForeignTax)
}

func (p *ActivityParser) addFee(positions *funance.PositionSet, r row) error {
	return p.addIncome(positions, r, p.symbol(r), funance.Fee)
}

// addReinvestment buys back into the position that generated a recent income
// event.
func (p *ActivityParser) addReinvestment(positions *funance.PositionSet, r row) error {
	on, err := p.date(r)
	if err != nil {
		return err
	}
	quantity, err := p.quantity(r)
	if err != nil {
		return err
	}
	price, err := p.price(r, "Price")
	if err != nil {
		return err
	}
	_, err = positions.AddBuy(p.symbol(r), on, quantity, price, true)
	return err
}

func (p *ActivityParser) addBuy(positions *funance.PositionSet, r row) error {
	on, err := p.date(r)
	if err != nil {
		return err
	}
	quantity, err := p.quantity(r)
	if err != nil {
		return err
	}
	price, err := p.price(r, "Price")
	if err != nil {
		return err
	}

	// Bonds and CDs are priced out of $100.
	tokens := strings.Fields(r.get("Action"))
	for _, tok := range tokens {
		if tok == "BDS" || tok == "CD" {
			quantity = quantity.Div(funance.Q(100))
			break
		}
	}

	_, err = positions.AddBuy(p.symbol(r), on, quantity, price, true)
	return err
}

func (p *ActivityParser) addCryptoBuy(positions *funance.PositionSet, r row) error {
	on, err := p.date(r)
	if err != nil {
		return err
	}
	quantity, err := p.quantity(r)
	if err != nil {
		return err
	}
	price, err := p.price(r, "Price ($)")
	if err != nil {
		return err
	}
	_, err = positions.AddBuy(p.symbol(r), on, quantity, price, true)
	return err
}

// addSale records a sale; activity exports report sold quantities negative.
func (p *ActivityParser) addSale(positions *funance.PositionSet, r row) error {
	on, err := p.date(r)
	if err != nil {
		return err
	}
	quantity, err := p.quantity(r)
	if err != nil {
		return err
	}
	price, err := p.price(r, "Price ($)")
	if err != nil {
		return err
	}
	_, _, err = positions.AddSale(p.symbol(r), on, quantity.Neg(), price, true)
	return err
}

// fromSymbol extracts the pre-split symbol out of an action description like
// "REVERSE SPLIT R/S FROM XYZ#REORG...".
func (p *ActivityParser) fromSymbol(r row) (string, error) {
	head, _, _ := strings.Cut(r.get("Action"), "#")
	tokens := strings.Fields(head)
	if len(tokens) == 0 {
		return "", fmt.Errorf("no source symbol in action %q", r.get("Action"))
	}
	return p.applyAlias(tokens[len(tokens)-1]), nil
}

func (p *ActivityParser) addReverseSplit(positions *funance.PositionSet, r row) error {
	fromSymbol, err := p.fromSymbol(r)
	if err != nil {
		return err
	}
	quantity, err := p.quantity(r)
	if err != nil {
		return err
	}
	return positions.ApplySplit(fromSymbol, p.symbol(r), quantity)
}

func (p *ActivityParser) addMergerSplit(positions *funance.PositionSet, r row) error {
	return p.addReverseSplit(positions, r)
}

// addReverseSplitPayout sells out a residual position whose share count was
// too small to reverse split.
func (p *ActivityParser) addReverseSplitPayout(positions *funance.PositionSet, r row) error {
	if _, ok := positions.Get(p.symbol(r)); !ok {
		return nil
	}
	fromSymbol, err := p.fromSymbol(r)
	if err != nil {
		return err
	}
	on, err := p.date(r)
	if err != nil {
		return err
	}
	amount, err := p.amount(r)
	if err != nil {
		return err
	}
	position, ok := positions.Get(fromSymbol)
	if !ok {
		return fmt.Errorf("no position %q for reverse split payout", fromSymbol)
	}
	quantity := position.Quantity()
	_, _, err = positions.AddSale(fromSymbol, on, quantity, amount.Neg().Div(quantity), true)
	return err
}

// addMergerPayout sells out a position whose company paid out its public
// investors. A payout row without a price was settled in stock by a separate
// merger-split row.
func (p *ActivityParser) addMergerPayout(positions *funance.PositionSet, r row) error {
	if r.get("Price") == "" {
		return nil
	}
	on, err := p.date(r)
	if err != nil {
		return err
	}
	quantity, err := p.quantity(r)
	if err != nil {
		return err
	}
	price, err := p.price(r, "Price")
	if err != nil {
		return err
	}
	_, _, err = positions.AddSale(p.symbol(r), on, quantity.Neg(), price, true)
	return err
}

// addRedemptionPayout sells out a bond or CD that has matured.
func (p *ActivityParser) addRedemptionPayout(positions *funance.PositionSet, r row) error {
	on, err := p.date(r)
	if err != nil {
		return err
	}
	quantity, err := p.quantity(r)
	if err != nil {
		return err
	}
	price, err := p.price(r, "Price")
	if err != nil {
		return err
	}
	_, _, err = positions.AddSale(p.symbol(r), on, quantity.Neg(), price, true)
	return err
}

func (p *ActivityParser) addDistribution(positions *funance.PositionSet, r row) error {
	quantity, err := p.quantity(r)
	if err != nil {
		return err
	}
	return positions.AddDistribution(p.symbol(r), quantity)
}
