// SPDX-License-Identifier: MIT
package outline

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"gitlab.com/fisherprime/offside/lexer"
)

func pos(line, column int) lexer.Position { return lexer.Position{Line: line, Column: column} }

// spans strips byte offsets for comparisons.
func spans(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	for index, b := range blocks {
		b.Start.Offset, b.End.Offset = 0, 0
		out[index] = b
	}

	return out
}

func TestBlocks(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Block
		wantErr error
	}{
		{
			name:  "empty input",
			input: "",
			want:  []Block{{ID: 1, Label: "test", Start: pos(1, 1), End: pos(1, 1)}},
		},
		{
			name:  "layout via keyword",
			input: "if x then y else z",
			want: []Block{
				{ID: 1, Label: "test", Start: pos(1, 1), End: pos(1, 19)},
				{ID: 2, ParentID: 1, Label: "if", Depth: 1, Start: pos(1, 1), End: pos(1, 6)},
				{ID: 3, ParentID: 1, Label: "then", Depth: 1, Start: pos(1, 6), End: pos(1, 13)},
				{ID: 4, ParentID: 1, Label: "else", Depth: 1, Start: pos(1, 13), End: pos(1, 19)},
			},
		},
		{
			name:  "let in",
			input: "let\n  x = 1\nin x",
			want: []Block{
				{ID: 1, Label: "test", Start: pos(1, 1), End: pos(3, 5)},
				{ID: 2, ParentID: 1, Label: "let", Depth: 1, Start: pos(1, 1), End: pos(3, 1)},
				{ID: 3, ParentID: 2, Label: "=", Depth: 2, Start: pos(2, 5), End: pos(3, 1)},
				{ID: 4, ParentID: 1, Label: "in", Depth: 1, Start: pos(3, 1), End: pos(3, 5)},
			},
		},
		{
			name:    "lexical error",
			input:   `x = "abc`,
			wantErr: ErrLexical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Blocks(lexer.Tokenize("test", tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Blocks() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr != nil {
				return
			}

			if got = spans(got); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Blocks() = %s, want %s", spew.Sdump(got), spew.Sdump(tt.want))
			}
		})
	}
}

func TestBlocks_LexicalCause(t *testing.T) {
	_, err := Blocks(lexer.Tokenize("test", "x = 42."))

	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("Blocks() error = %v, want a *lexer.Error", err)
	}
	if lexErr.Kind != lexer.MissingFractional {
		t.Errorf("Blocks() error kind = %s, want %s", lexErr.Kind, lexer.MissingFractional)
	}
}

func TestBlocks_Unbalanced(t *testing.T) {
	open := lexer.Token{ID: lexer.TokenOpen, Val: "test"}
	closing := lexer.Token{ID: lexer.TokenClose}

	tests := []struct {
		name   string
		tokens []lexer.Token
	}{
		{name: "unclosed", tokens: []lexer.Token{open, open, closing}},
		{name: "unopened", tokens: []lexer.Token{open, closing, closing}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Blocks(tt.tokens); !errors.Is(err, ErrUnbalanced) {
				t.Errorf("Blocks() error = %v, want %v", err, ErrUnbalanced)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "flat", input: "foo bar", want: "1)"},
		{name: "siblings", input: "if x then y else z", want: "1,2),3),4))"},
		{name: "nested", input: "let\n  x = 1\nin x", want: "1,2,3)),4))"},
		{name: "dedent past the outer anchor", input: "  foo\nx = 1", wantErr: ErrMultipleRootNodes},
		{name: "lexical error", input: "`foo", wantErr: ErrLexical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			o, err := Build(ctx, nil, lexer.Tokenize("test", tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Build() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}

			got, err := o.Serialize(ctx)
			if err != nil {
				t.Fatalf("Outline.Serialize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Outline.Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOutline_Queries(t *testing.T) {
	ctx := context.Background()

	o, err := Build(ctx, nil, lexer.Tokenize("test", "let\n  x = 1\nin x"))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	t.Run("Block", func(t *testing.T) {
		if b, ok := o.Block(3); !ok || b.Label != "=" {
			t.Errorf("Outline.Block(3) = %v, %v", b, ok)
		}
		if _, ok := o.Block(5); ok {
			t.Error("Outline.Block(5) found a block")
		}
	})

	t.Run("Path", func(t *testing.T) {
		path, err := o.Path(ctx, 3)
		if err != nil {
			t.Fatalf("Outline.Path() error = %v", err)
		}

		var labels []string
		for _, b := range path {
			labels = append(labels, b.Label)
		}
		if want := []string{"test", "let", "="}; !reflect.DeepEqual(labels, want) {
			t.Errorf("Outline.Path() = %v, want %v", labels, want)
		}

		if _, err = o.Path(ctx, 9); !errors.Is(err, ErrNotFound) {
			t.Errorf("Outline.Path() error = %v, want %v", err, ErrNotFound)
		}
	})

	t.Run("Enclosing", func(t *testing.T) {
		tests := []struct {
			pos    lexer.Position
			wantID int
			wantOk bool
		}{
			{pos: pos(2, 7), wantID: 3, wantOk: true},
			{pos: pos(2, 3), wantID: 2, wantOk: true},
			{pos: pos(3, 4), wantID: 4, wantOk: true},
			{pos: pos(9, 1), wantOk: false},
		}

		for _, tt := range tests {
			got, ok := o.Enclosing(ctx, tt.pos)
			if ok != tt.wantOk || got.ID != tt.wantID {
				t.Errorf("Outline.Enclosing(%s) = %d, %v, want %d, %v", tt.pos, got.ID, ok, tt.wantID, tt.wantOk)
			}
		}
	})

	t.Run("Folds", func(t *testing.T) {
		folds, err := o.Folds(ctx)
		if err != nil {
			t.Fatalf("Outline.Folds() error = %v", err)
		}

		var got [][]int
		for _, level := range folds {
			var ids []int
			for _, b := range level {
				ids = append(ids, b.ID)
			}
			got = append(got, ids)
		}
		if want := [][]int{{2}, {3}}; !reflect.DeepEqual(got, want) {
			t.Errorf("Outline.Folds() = %v, want %v", got, want)
		}
	})
}
