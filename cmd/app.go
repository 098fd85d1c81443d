// Package cmd implements the CLI application to manage a holding account.
package cmd

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/SudoVim/funance"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "documents")
	c.Register(&activityCmd{}, "documents")

	c.Register(&positionsCmd{}, "reports")
	c.Register(&salesCmd{}, "reports")
	c.Register(&incomeCmd{}, "reports")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var positionsFile = flag.String("positions-file", "positions.json", "Path to the positions file (JSON format)")

// DecodePositions loads the app positions file. A missing file yields an
// empty set so the first import can seed it.
func DecodePositions() (*funance.PositionSet, error) {
	f, err := os.Open(*positionsFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, positions file does not exist, starting from an empty account")
		return funance.NewPositionSet(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return funance.DecodePositionSet(f)
}

// EncodePositions writes the positions back to the app positions file.
func EncodePositions(s *funance.PositionSet) error {
	f, err := os.Create(*positionsFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return funance.EncodePositionSet(f, s)
}
