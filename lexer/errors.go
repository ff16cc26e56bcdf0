// SPDX-License-Identifier: MIT
package lexer

import (
	"errors"
	"fmt"
)

type (
	// ErrorKind classifies a lexical error.
	ErrorKind int

	// Error is the payload of a TokenErr.
	Error struct {
		Kind ErrorKind
		Text string   // Offending source text.
		Pos  Position // Where the offending text starts.
	}
)

const (
	_ ErrorKind = iota
	InvalidWordyID
	InvalidSymbolyID
	MissingFractional
	UnknownLexeme
	TextLiteralMissingClosingQuote
)

// Lexing errors.
var (
	ErrInvalidWordyID                 = errors.New("invalid wordy identifier")
	ErrInvalidSymbolyID               = errors.New("invalid symboly identifier")
	ErrMissingFractional              = errors.New("missing fractional digits")
	ErrUnknownLexeme                  = errors.New("unknown lexeme")
	ErrTextLiteralMissingClosingQuote = errors.New("text literal missing closing quote")
)

var kindErrors = [...]error{
	InvalidWordyID:                 ErrInvalidWordyID,
	InvalidSymbolyID:               ErrInvalidSymbolyID,
	MissingFractional:              ErrMissingFractional,
	UnknownLexeme:                  ErrUnknownLexeme,
	TextLiteralMissingClosingQuote: ErrTextLiteralMissingClosingQuote,
}

var kindNames = [...]string{
	InvalidWordyID:                 "InvalidWordyId",
	InvalidSymbolyID:               "InvalidSymbolyId",
	MissingFractional:              "MissingFractional",
	UnknownLexeme:                  "UnknownLexeme",
	TextLiteralMissingClosingQuote: "TextLiteralMissingClosingQuote",
}

// String returns the ErrorKind name.
func (k ErrorKind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error implements the error interface.
func (e *Error) Error() string { return fmt.Sprintf("%s: %v: %q", e.Pos, e.Unwrap(), e.Text) }

// Unwrap returns the sentinel error matching the Kind, for use with errors.Is.
func (e *Error) Unwrap() error {
	if e.Kind > 0 && int(e.Kind) < len(kindErrors) {
		return kindErrors[e.Kind]
	}

	return ErrUnknownLexeme
}
