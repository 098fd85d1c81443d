package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/SudoVim/funance/renderer"
	"github.com/google/subcommands"
)

type positionsCmd struct{}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "shows the currently held positions" }
func (*positionsCmd) Usage() string {
	return `fnc positions

  Shows every held position with its quantity, cost basis and per-share cost.

`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	positions, err := DecodePositions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading positions: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.PositionsMarkdown(positions))
	return subcommands.ExitSuccess
}
