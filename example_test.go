package funance

import "fmt"

func ExamplePosition() {
	p := NewPosition("AAPL")
	p.AddBuy(MustParseDate("2025-03-17"), Q(4), M(213.49, "USD"))
	_, sales, _ := p.AddSale(MustParseDate("2025-03-18"), Q(2), M(220.49, "USD"))

	fmt.Println("held:", p.Quantity())
	fmt.Println("cost basis:", p.CostBasis())
	fmt.Println("realized profit:", sales.TotalProfit())
	// Output:
	// held: 2
	// cost basis: $426.98
	// realized profit: $14.00
}

func ExamplePositionSet() {
	s := NewPositionSet()
	s.AddBuy(CashSymbol, MustParseDate("2025-01-01"), Q(1000), M(1, "USD"), false)
	s.AddBuy("AAPL", MustParseDate("2025-03-17"), Q(4), M(213.49, "USD"), true)

	cash, _ := s.Get(CashSymbol)
	fmt.Println("cash left:", cash.Quantity())
	// Output:
	// cash left: 146.04
}
