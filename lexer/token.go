// SPDX-License-Identifier: MIT
package lexer

import (
	"fmt"
)

type (
	// TokenID identifies the Lexeme variant held by a Token.
	TokenID int

	// Token is a tagged value plus the half-open source span [Start, End) it was lexed from.
	//
	// Structural tokens (Open, Semi & Close) may be zero-width.
	Token struct {
		ID  TokenID // The Lexeme variant.
		Val string  // Block label, identifier, literal or reserved text; empty for Semi & Close.
		Err *Error  // Set for TokenErr only.

		Start Position
		End   Position
	}
)

// iota is used to define an incrementing number sequence for const
// declarations
const (
	_              TokenID = iota // Consume 0 to start actual numbering at 1.
	TokenOpen                     // Begin a layout block, Val is the block label.
	TokenSemi                     // Separate statements of a block.
	TokenClose                    // End a layout block.
	TokenReserved                 // Delimiters, reserved operators & non-layout keywords.
	TokenTextual                  // String literal contents.
	TokenBackticks                // Identifier written within backticks.
	TokenWordyID                  // Alphabetic-style identifier.
	TokenSymbolyID                // Operator-style identifier.
	TokenNumeric                  // Unparsed numeric literal.
	TokenErr                      // Terminal lexical error.
)

var tokenNames = [...]string{
	TokenOpen:      "Open",
	TokenSemi:      "Semi",
	TokenClose:     "Close",
	TokenReserved:  "Reserved",
	TokenTextual:   "Textual",
	TokenBackticks: "Backticks",
	TokenWordyID:   "WordyId",
	TokenSymbolyID: "SymbolyId",
	TokenNumeric:   "Numeric",
	TokenErr:       "Err",
}

// String returns the Lexeme variant name.
func (id TokenID) String() string {
	if id > 0 && int(id) < len(tokenNames) {
		return tokenNames[id]
	}

	return fmt.Sprintf("TokenID(%d)", int(id))
}

// IsStructural reports whether the TokenID is synthesized from layout.
func (id TokenID) IsStructural() bool {
	return id == TokenOpen || id == TokenSemi || id == TokenClose
}

// String formats the Token as `Kind "value" start-end`.
func (t Token) String() string {
	switch t.ID {
	case TokenSemi, TokenClose:
		return fmt.Sprintf("%s %s-%s", t.ID, t.Start, t.End)
	case TokenErr:
		return fmt.Sprintf("%s(%v) %s-%s", t.ID, t.Err, t.Start, t.End)
	}

	return fmt.Sprintf("%s %q %s-%s", t.ID, t.Val, t.Start, t.End)
}
