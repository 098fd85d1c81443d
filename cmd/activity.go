package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/SudoVim/funance/fidelity"
	"github.com/SudoVim/funance/renderer"
	"github.com/google/subcommands"
)

type activityCmd struct {
	accountNumber string
	aliases       string
	preview       bool
}

func (*activityCmd) Name() string { return "activity" }
func (*activityCmd) Synopsis() string {
	return "replays an activity export on top of the current positions"
}
func (*activityCmd) Usage() string {
	return `fnc activity [-account <number>] [-aliases OLD=NEW,...] [-preview] <history.csv>...

  Parses one or more Fidelity activity exports and replays their rows, sorted
  by run date, on top of the positions file. Replaying an overlapping export
  is a no-op: duplicate events are dropped. An unrecognized activity
  description aborts the import before anything is written.

  With -preview the replay happens on a copy: the resulting positions are
  shown but the positions file is left untouched.

Usage Examples:
# Replay this year's history for one account, renaming a vendor ticker.
$ fnc activity -account X123 -aliases BRKB=BRK.B History.csv

# Check what an export would do before committing it.
$ fnc activity -preview History.csv

`
}

func (c *activityCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.accountNumber, "account", "", "Only apply rows for this account number")
	f.StringVar(&c.aliases, "aliases", "", "Comma-separated OLD=NEW symbol renames")
	f.BoolVar(&c.preview, "preview", false, "Show the resulting positions without writing the positions file")
}

func (c *activityCmd) parseAliases() (map[string]string, error) {
	aliases := make(map[string]string)
	if c.aliases == "" {
		return aliases, nil
	}
	for _, pair := range strings.Split(c.aliases, ",") {
		old, canonical, ok := strings.Cut(pair, "=")
		if !ok || old == "" || canonical == "" {
			return nil, fmt.Errorf("bad alias %q, want OLD=NEW", pair)
		}
		aliases[old] = canonical
	}
	return aliases, nil
}

func (c *activityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Please provide at least one activity export file.")
		return subcommands.ExitUsageError
	}

	aliases, err := c.parseAliases()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	positions, err := DecodePositions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading positions: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, filePath := range f.Args() {
		file, err := os.Open(filePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening activity export %q: %v\n", filePath, err)
			return subcommands.ExitFailure
		}
		doc, err := fidelity.NewDocument(filePath, file)
		file.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading activity export %q: %v\n", filePath, err)
			return subcommands.ExitFailure
		}

		positions, err = fidelity.NewActivityParser(doc, c.accountNumber, aliases).ParsePositions(positions)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing activity export %q: %v\n", filePath, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Applied %s\n", filePath)
	}

	if c.preview {
		// ParsePositions replays onto a copy, so the decoded set and the
		// positions file both stay as they were.
		printMarkdown(renderer.PositionsMarkdown(positions))
		return subcommands.ExitSuccess
	}

	if err := EncodePositions(positions); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing positions file: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
