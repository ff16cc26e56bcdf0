// SPDX-License-Identifier: MIT

// Package render formats token streams for terminals.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/fisherprime/offside/lexer"
)

// Theme maps token kinds to styles, kinds without an entry render plain.
//
// A nil Theme renders everything plain.
type Theme map[lexer.TokenID]lipgloss.Style

const indentUnit = "  "

// DefaultTheme colors tokens with the terminal's ANSI palette.
func DefaultTheme() Theme {
	structural := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	return Theme{
		lexer.TokenOpen:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
		lexer.TokenSemi:      structural,
		lexer.TokenClose:     structural,
		lexer.TokenReserved:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		lexer.TokenTextual:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		lexer.TokenBackticks: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		lexer.TokenSymbolyID: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		lexer.TokenNumeric:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		lexer.TokenErr:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Underline(true),
	}
}

func (t Theme) render(id lexer.TokenID, text string) string {
	if style, ok := t[id]; ok {
		return style.Render(text)
	}

	return text
}

// Text formats a Token's value as written in source.
func Text(t lexer.Token) string {
	switch t.ID {
	case lexer.TokenTextual:
		return strconv.Quote(t.Val)
	case lexer.TokenBackticks:
		return "`" + t.Val + "`"
	case lexer.TokenSemi:
		return ";"
	case lexer.TokenErr:
		return fmt.Sprintf("<%v>", t.Err.Unwrap())
	}

	return t.Val
}

// Tokens writes one Token per line: its span, kind & value.
func Tokens(w io.Writer, tokens []lexer.Token, theme Theme) (err error) {
	for _, t := range tokens {
		span := fmt.Sprintf("%s-%s", t.Start, t.End)

		var val string
		switch t.ID {
		case lexer.TokenSemi, lexer.TokenClose:
		case lexer.TokenErr:
			val = fmt.Sprintf("%v %q", t.Err.Unwrap(), t.Err.Text)
		default:
			val = strconv.Quote(t.Val)
		}

		kind := fmt.Sprintf("%-9s", t.ID)
		line := strings.TrimRight(fmt.Sprintf("%-11s  %s  %s", span, theme.render(t.ID, kind), val), " ")
		if _, err = fmt.Fprintln(w, line); err != nil {
			return
		}
	}

	return
}

// Highlight writes src with the spans of tokens styled; gaps between tokens are written as is.
//
// tokens must have been lexed from src.
func Highlight(w io.Writer, src string, tokens []lexer.Token, theme Theme) (err error) {
	var (
		buffer strings.Builder
		last   int
	)

	for _, t := range tokens {
		start, end := t.Start.Offset, t.End.Offset
		if start == end || start < last || end > len(src) {
			// Zero width or out of range.
			continue
		}

		buffer.WriteString(src[last:start])
		buffer.WriteString(theme.render(t.ID, src[start:end]))
		last = end
	}
	buffer.WriteString(src[last:])

	_, err = io.WriteString(w, buffer.String())

	return
}

// Indented writes the layout structure of tokens, one statement per line; blocks are braced &
// indented by depth.
func Indented(w io.Writer, tokens []lexer.Token, theme Theme) (err error) {
	var (
		buffer strings.Builder
		line   []string
		depth  int
	)

	flush := func() {
		if len(line) > 0 {
			buffer.WriteString(strings.Repeat(indentUnit, depth))
			buffer.WriteString(strings.Join(line, " "))
			buffer.WriteByte('\n')
		}
		line = line[:0]
	}

	for _, t := range tokens {
		switch t.ID {
		case lexer.TokenOpen:
			line = append(line, theme.render(t.ID, t.Val), "{")
			flush()
			depth++
		case lexer.TokenClose:
			flush()
			if depth > 0 {
				depth--
			}
			line = append(line, "}")
		case lexer.TokenSemi:
			line = append(line, theme.render(t.ID, ";"))
			flush()
		default:
			line = append(line, theme.render(t.ID, Text(t)))
		}
	}
	flush()

	_, err = io.WriteString(w, buffer.String())

	return
}
