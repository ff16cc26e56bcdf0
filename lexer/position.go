// SPDX-License-Identifier: MIT
package lexer

import (
	"fmt"
	"unicode/utf8"
)

// Position is a 1-indexed (line, column) location in the source.
//
// Offset is the 0-based byte offset of the location, tracked alongside the line & column so
// consumers can slice the original source.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Start is the top left corner of every source.
var Start = Position{Line: 1, Column: 1}

// String formats the Position as `line:column`.
func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Compare orders Positions by line then column, returning -1, 0 or +1.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}

	return 0
}

// Before reports whether p sorts before other.
func (p Position) Before(other Position) bool { return p.Compare(other) < 0 }

// Advance moves p over the consumed text.
//
// A carriage return is dropped without advancing the column, a newline starts a new line & any
// other rune moves one column right. An invalid UTF-8 byte counts as a single rune of width 1.
func (p Position) Advance(consumed string) Position {
	for len(consumed) > 0 {
		r, size := utf8.DecodeRuneInString(consumed)
		p = p.advanceRune(r, size)
		consumed = consumed[size:]
	}

	return p
}

// advanceRunes is [Position.Advance] for runes read with the byte widths in sizes.
func (p Position) advanceRunes(consumed []rune, sizes []int) Position {
	for index, r := range consumed {
		p = p.advanceRune(r, sizes[index])
	}

	return p
}

func (p Position) advanceRune(r rune, size int) Position {
	p.Offset += size

	switch r {
	case '\r':
	case '\n':
		p.Line++
		p.Column = 1
	default:
		p.Column++
	}

	return p
}
