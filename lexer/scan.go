// SPDX-License-Identifier: MIT
package lexer

// lookahead provides random access to the unconsumed input, relative to the cursor.
type lookahead interface {
	// at obtains the rune i positions past the cursor; ok is false past the end of input.
	at(i int) (r rune, ok bool)
	// slice obtains the runes [from, to) past the cursor, to must have been reached by at.
	slice(from, to int) []rune
}

// runes is a lookahead over an in-memory input.
type runes []rune

func (rs runes) at(i int) (rune, bool) {
	if i < 0 || i >= len(rs) {
		return 0, false
	}

	return rs[i], true
}

func (rs runes) slice(from, to int) []rune { return rs[from:to] }

// spanWhile counts the runes from index from satisfying fn.
func spanWhile(src lookahead, from int, fn ValidationFunction) (n int) {
	for {
		r, ok := src.at(from + n)
		if !ok || !fn(r) {
			return
		}
		n++
	}
}

// hasSepAt reports whether the input at i is exhausted or a separator.
func hasSepAt(src lookahead, i int) bool {
	r, ok := src.at(i)
	return !ok || isSeparator(r)
}

func text(src lookahead, from, to int) string { return string(src.slice(from, to)) }

// scanWordyID scans the longest wordy run at from.
//
// The run is rejected when empty, a keyword or when it starts with neither a letter nor an emoji;
// n is the run length either way.
func scanWordyID(src lookahead, from int) (n int, kind ErrorKind) {
	if n = spanWhile(src, from, isWordyRune); n < 1 {
		return 0, InvalidWordyID
	}

	head, _ := src.at(from)
	if !isWordyStart(head) || keywords.has(text(src, from, from+n)) {
		return n, InvalidWordyID
	}

	return n, 0
}

// scanSymbolyID scans the longest run of symboly runes at from, which must not be a reserved
// operator & must be followed by a separator.
func scanSymbolyID(src lookahead, from int) (n int, kind ErrorKind) {
	if n = spanWhile(src, from, isSymbolyRune); n < 1 {
		return 0, InvalidSymbolyID
	}

	if reservedOperators.has(text(src, from, from+n)) || !hasSepAt(src, from+n) {
		return n, InvalidSymbolyID
	}

	return n, 0
}

// scanKeyword matches the input up to the next separator against the keywords.
func scanKeyword(src lookahead, from int) (n int, ok bool) {
	if n = spanWhile(src, from, isNotSeparator); n < 1 {
		return 0, false
	}

	return n, keywords.has(text(src, from, from+n))
}

// scanNumeric scans `[+-]?digits(.digits)?` followed by a separator.
//
// MissingFractional is returned, with n covering the scanned text, for a `.` lacking digits;
// UnknownLexeme means the input has no numeric shape.
func scanNumeric(src lookahead, from int) (n int, kind ErrorKind) {
	i := from
	if r, ok := src.at(i); ok && (r == '+' || r == '-') {
		i++
	}

	digits := spanWhile(src, i, isDigit)
	if digits < 1 {
		return 0, UnknownLexeme
	}
	i += digits

	if r, ok := src.at(i); ok && r == '.' {
		i++

		fraction := spanWhile(src, i, isDigit)
		if fraction < 1 {
			return i - from, MissingFractional
		}
		i += fraction
	}

	if !hasSepAt(src, i) {
		return 0, UnknownLexeme
	}

	return i - from, 0
}

// scanText scans a string literal starting with the `"` at from; n includes both quotes.
//
// An unterminated literal consumes the rest of the input.
func scanText(src lookahead, from int) (n int, contents string, kind ErrorKind) {
	i := from + 1
	for {
		r, ok := src.at(i)
		if !ok {
			return i - from, text(src, from+1, i), TextLiteralMissingClosingQuote
		}
		if r == '"' {
			return i - from + 1, text(src, from+1, i), 0
		}
		i++
	}
}

// scanBackticks scans a backtick quoted wordy identifier starting with the "`" at from; n
// includes both backticks.
func scanBackticks(src lookahead, from int) (n int, id string, kind ErrorKind) {
	inner, kind := scanWordyID(src, from+1)
	id = text(src, from+1, from+1+inner)
	if kind != 0 {
		return 1 + inner, id, kind
	}

	if r, ok := src.at(from + 1 + inner); !ok || r != '`' {
		return 1 + inner, id, InvalidWordyID
	}

	return inner + 2, id, 0
}
