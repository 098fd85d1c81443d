package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/SudoVim/funance/fidelity"
	"github.com/google/subcommands"
)

type importCmd struct{}

func (*importCmd) Name() string { return "import" }
func (*importCmd) Synopsis() string {
	return "seeds the account's positions from a statement snapshot"
}
func (*importCmd) Usage() string {
	return `fnc import <statement.csv>

  Parses a Fidelity statement and writes the positions it describes to the
  positions file. The statement date is taken from the MMDDYYYY block in the
  file name. Statement rows are an opening snapshot, so they do not touch the
  CASH position.

Usage Examples:
# Seed positions.json from an October statement.
$ fnc import Statement-10312025-X123.csv

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Please provide the path to the statement file.")
		return subcommands.ExitUsageError
	}
	filePath := f.Arg(0)

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening statement %q: %v\n", filePath, err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	doc, err := fidelity.NewDocument(filePath, file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading statement %q: %v\n", filePath, err)
		return subcommands.ExitFailure
	}

	positions, err := fidelity.NewStatementParser(doc).ParsePositions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing statement %q: %v\n", filePath, err)
		return subcommands.ExitFailure
	}

	if err := EncodePositions(positions); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing positions file: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d positions from %s\n", positions.Len(), filePath)
	return subcommands.ExitSuccess
}
