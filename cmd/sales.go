package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/SudoVim/funance/renderer"
	"github.com/google/subcommands"
)

type salesCmd struct{}

func (*salesCmd) Name() string     { return "sales" }
func (*salesCmd) Synopsis() string { return "shows realized sales and their annualized returns" }
func (*salesCmd) Usage() string {
	return `fnc sales

  Shows every realized sale, matched FIFO against the purchase lot it came
  from, with its profit and annualized return.

`
}

func (c *salesCmd) SetFlags(f *flag.FlagSet) {}

func (c *salesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	positions, err := DecodePositions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading positions: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SalesMarkdown(positions))
	return subcommands.ExitSuccess
}
