// SPDX-License-Identifier: MIT
package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ValidationFunction type for functions that validate rune identities
type ValidationFunction func(rune) bool

type set map[string]struct{}

const (
	emojiLow  = 0x1F600
	emojiHigh = 0x1F64F
)

// Improves on performance compared to ORs.
//
// Reduces function cost improving probalility of inlining.
var (
	delimiters = [utf8.RuneSelf]bool{
		'(': true, ')': true,
		'[': true, ']': true,
		'{': true, '}': true,
		',': true,
	}

	// reserved runes may not appear within a wordy identifier.
	reserved = [utf8.RuneSelf]bool{
		'=': true, ':': true, '`': true, '"': true,
	}

	symbolyRunes = [utf8.RuneSelf]bool{
		'!': true, '$': true, '%': true, '^': true, '&': true, '*': true, '-': true, '=': true,
		'+': true, '<': true, '>': true, '?': true, '.': true, '~': true, '\\': true, '/': true,
		'|': true,
	}
)

var (
	keywords = newSet(
		"if", "then", "else", "forall", "∀", "handle", "in", "where", "and", "or", "true",
		"false", "type", "effect", "alias", "let", "namespace", "case", "of",
	)

	// layoutKeywords open a block.
	layoutKeywords = newSet("if", "then", "else", "in", "let", "where", "of", "namespace")

	// layoutEndKeywords close the enclosing block before opening their own.
	layoutEndKeywords = newSet("then", "else")

	reservedOperators = newSet("->")
)

func newSet(values ...string) set {
	s := make(set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}

	return s
}

func (s set) has(value string) bool {
	_, ok := s[value]
	return ok
}

// Keywords lists the reserved words, sorted.
func Keywords() []string {
	list := maps.Keys(keywords)
	slices.Sort(list)

	return list
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool { return keywords.has(word) }

// IsLayoutKeyword reports whether word opens a layout block.
func IsLayoutKeyword(word string) bool { return layoutKeywords.has(word) }

// isWhitespace return true for unicode whitespace.
func isWhitespace(r rune) bool { return unicode.IsSpace(r) }

func isDelimiter(r rune) bool { return r < utf8.RuneSelf && r >= 0 && delimiters[r] }

func isReserved(r rune) bool { return r < utf8.RuneSelf && r >= 0 && reserved[r] }

func isSymbolyRune(r rune) bool { return r < utf8.RuneSelf && r >= 0 && symbolyRunes[r] }

// isSeparator return true for runes that terminate greedy scans.
func isSeparator(r rune) bool { return isWhitespace(r) || isDelimiter(r) }

func isEmoji(r rune) bool { return r >= emojiLow && r <= emojiHigh }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isAlphaNum(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

// isWordyRune return true for runes allowed within a wordy identifier.
func isWordyRune(r rune) bool { return !isWhitespace(r) && !isDelimiter(r) && !isReserved(r) }

// isWordyStart gates acceptance of a scanned wordy identifier.
func isWordyStart(r rune) bool { return unicode.IsLetter(r) || isEmoji(r) }

func isNotSeparator(r rune) bool { return !isSeparator(r) }
