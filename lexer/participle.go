// SPDX-License-Identifier: MIT
package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	plexer "github.com/alecthomas/participle/v2/lexer"
)

type (
	// Definition adapts the Lexer for participle grammars.
	//
	// Token types are named after the Lexeme variants, e.g. `@WordyId`, `@Open`.
	Definition struct {
		label string
		opts  []Option
	}

	// participleLexer implements participle's lexer.Lexer over a Lexer.
	participleLexer struct {
		filename string
		l        *Lexer
		end      plexer.Position
	}
)

var (
	_ plexer.Definition       = (*Definition)(nil)
	_ plexer.StringDefinition = (*Definition)(nil)
)

// NewDefinition creates a participle lexer definition; label names the outermost block.
func NewDefinition(label string, opts ...Option) *Definition {
	return &Definition{label: label, opts: opts}
}

// TokenType maps a TokenID to its participle token type.
func TokenType(id TokenID) plexer.TokenType { return plexer.EOF - plexer.TokenType(id) }

// Symbols implements participle's lexer.Definition.
func (d *Definition) Symbols() map[string]plexer.TokenType {
	symbols := map[string]plexer.TokenType{"EOF": plexer.EOF}
	for id := TokenOpen; id < TokenErr; id++ {
		symbols[id.String()] = TokenType(id)
	}

	return symbols
}

// Lex implements participle's lexer.Definition.
func (d *Definition) Lex(filename string, r io.Reader) (plexer.Lexer, error) {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}

	return d.lexer(filename, rr), nil
}

// LexString implements participle's lexer.StringDefinition.
func (d *Definition) LexString(filename string, input string) (plexer.Lexer, error) {
	return d.lexer(filename, strings.NewReader(input)), nil
}

func (d *Definition) lexer(filename string, rr io.RuneReader) *participleLexer {
	opts := make([]Option, 0, len(d.opts)+1)
	opts = append(append(opts, d.opts...), WithSource(rr))

	return &participleLexer{filename: filename, l: New(d.label, opts...)}
}

// Next implements participle's lexer.Lexer; an Err Token is returned as an error.
func (p *participleLexer) Next() (plexer.Token, error) {
	t, ok := p.l.Next()
	if !ok {
		return plexer.EOFToken(p.end), nil
	}

	pos := p.position(t.Start)
	p.end = p.position(t.End)

	if t.ID == TokenErr {
		return plexer.Token{}, &plexer.Error{Pos: pos, Msg: fmt.Sprintf("%v: %q", t.Err.Unwrap(), t.Err.Text)}
	}

	return plexer.Token{Type: TokenType(t.ID), Value: t.Val, Pos: pos}, nil
}

func (p *participleLexer) position(pos Position) plexer.Position {
	return plexer.Position{
		Filename: p.filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}
