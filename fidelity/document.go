// Package fidelity parses Fidelity account statements and activity exports
// into canonical position events.
//
// The engine never interprets raw documents: everything broker-specific lives
// here, at the boundary. Malformed rows and unrecognized activity
// descriptions are hard parse errors surfaced to the operator, never silent
// skips.
package fidelity

import (
	"fmt"
	"io"
	"strings"
)

// Document is an in-memory broker document: a named blob of text lines.
type Document struct {
	name  string
	lines []string
}

// NewDocument reads the full contents of r into a document named name.
func NewDocument(name string, r io.Reader) (*Document, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read document %q: %w", name, err)
	}
	return &Document{name: name, lines: strings.Split(string(contents), "\n")}, nil
}

// Name returns the document's name, typically its file name.
func (d *Document) Name() string { return d.name }

// Lines returns the document's lines.
func (d *Document) Lines() []string { return d.lines }

// FindLine returns the index of the first line at or after start that begins
// with the given prefix. An empty prefix matches the first empty line.
func (d *Document) FindLine(prefix string, start int) (int, error) {
	for i := start; i < len(d.lines); i++ {
		if prefix == "" {
			if strings.TrimSpace(d.lines[i]) == "" {
				return i, nil
			}
			continue
		}
		if strings.HasPrefix(d.lines[i], prefix) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("document %q: no line starting with %q", d.name, prefix)
}

// LinesBetween returns the lines from the one starting with begin up to, but
// not including, the one starting with end. An empty end stops at the first
// empty line after begin.
func (d *Document) LinesBetween(begin, end string) ([]string, error) {
	start, err := d.FindLine(begin, 0)
	if err != nil {
		return nil, err
	}
	stop, err := d.FindLine(end, start+1)
	if err != nil {
		// An unterminated trailing section runs to the end of the document.
		if end == "" {
			return d.lines[start:], nil
		}
		return nil, err
	}
	return d.lines[start:stop], nil
}
