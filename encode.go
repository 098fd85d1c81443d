package funance

import (
	"encoding/json"
	"fmt"
	"io"
)

// This file contains code to persist a position set snapshot in a way that is
// still human-readable and git-friendly: one indented JSON document of plain
// nested primitives (strings, decimals, dates). The same representation is
// the contract for relational storage of ledger entries.

// EncodePositionSet writes the position set to w as indented JSON.
func EncodePositionSet(w io.Writer, s *PositionSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("cannot encode positions: %w", err)
	}
	return nil
}

// DecodePositionSet reads a position set previously written by
// EncodePositionSet.
func DecodePositionSet(r io.Reader) (*PositionSet, error) {
	s := NewPositionSet()
	if err := json.NewDecoder(r).Decode(s); err != nil {
		return nil, fmt.Errorf("cannot decode positions: %w", err)
	}
	return s, nil
}
