package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/SudoVim/funance/renderer"
	"github.com/google/subcommands"
)

type incomeCmd struct {
	days int
}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "shows income events and annualized yields" }
func (*incomeCmd) Usage() string {
	return `fnc income [-days <n>]

  Shows each position's income events over the observation window with the
  total received and the annualized yield.

`
}

func (c *incomeCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 365, "Observation window in days for annualization")
}

func (c *incomeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.days <= 0 {
		fmt.Fprintln(os.Stderr, "The observation window must be positive.")
		return subcommands.ExitUsageError
	}
	positions, err := DecodePositions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading positions: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.IncomeMarkdown(positions, c.days))
	return subcommands.ExitSuccess
}
