// SPDX-License-Identifier: MIT
package outline

import (
	"context"
	"errors"
	"fmt"

	"gitlab.com/fisherprime/offside/lexer"
)

type (
	// Block is a layout block delimited by a matching Open & Close token pair.
	Block struct {
		// ID numbers blocks from 1 in Open order; the outermost block is 1.
		ID int
		// ParentID is the enclosing block's ID, 0 for a root.
		ParentID int
		// Label is the Open token's value: the introducing keyword or the top-level label.
		Label string
		// Depth counts the enclosing blocks.
		Depth int

		// Start is the Open token's position & End the Close token's.
		Start, End lexer.Position
	}

	// Outline pairs the blocks of a token stream with their nesting.
	Outline struct {
		blocks []Block
		tree   *Hierarchy[int]
	}
)

// Outline errors.
var (
	ErrUnbalanced = errors.New("unbalanced layout blocks")
	ErrLexical    = errors.New("lexical error")
)

// Value obtains the Block's ID.
func (b Block) Value() int { return b.ID }

// Parent obtains the enclosing Block's ID.
func (b Block) Parent() int { return b.ParentID }

// Contains reports whether pos lies within the Block's span.
func (b Block) Contains(pos lexer.Position) bool {
	return !pos.Before(b.Start) && pos.Before(b.End)
}

// String formats the Block as `label start-end`.
func (b Block) String() string { return fmt.Sprintf("%s %s-%s", b.Label, b.Start, b.End) }

// Blocks pairs each Open token with its matching Close.
//
// An Err token yields ErrLexical wrapping the lexical error; a Close without an Open, or an Open
// that is never closed, yields ErrUnbalanced.
func Blocks(tokens []lexer.Token) (blocks []Block, err error) {
	// Indexes into blocks for the currently open blocks.
	var open []int

	for _, t := range tokens {
		switch t.ID {
		case lexer.TokenErr:
			return nil, fmt.Errorf("%w: %w", ErrLexical, t.Err)
		case lexer.TokenOpen:
			block := Block{ID: len(blocks) + 1, Label: t.Val, Depth: len(open), Start: t.Start}
			if len(open) > 0 {
				block.ParentID = blocks[open[len(open)-1]].ID
			}

			open = append(open, len(blocks))
			blocks = append(blocks, block)
		case lexer.TokenClose:
			if len(open) < 1 {
				return nil, fmt.Errorf("%w: Close at %s lacks an Open", ErrUnbalanced, t.Start)
			}

			last := len(open) - 1
			blocks[open[last]].End = t.End
			open = open[:last]
		}
	}

	if len(open) > 0 {
		b := blocks[open[len(open)-1]]
		return nil, fmt.Errorf("%w: %q at %s lacks a Close", ErrUnbalanced, b.Label, b.Start)
	}

	return
}

// Build lexes the tokens' blocks into an Outline.
//
// Tokens from a source indented past its first line's anchor close the outermost block early,
// yielding multiple roots & ErrMultipleRootNodes.
func Build(ctx context.Context, cfg *Config, tokens []lexer.Token) (o *Outline, err error) {
	if cfg == nil {
		cfg = DefConfig()
	}
	cfg.Validate()

	blocks, err := Blocks(tokens)
	if err != nil {
		return
	}

	list := make([]Builder[int], len(blocks))
	for index := range blocks {
		list[index] = blocks[index]
	}

	// Blocks are numbered in Open order, parents precede their children.
	src := NewBuildSource[int](
		WithBuilders(list),
		WithOrdered[int](true),
		WithBuildLogger[int](cfg.Logger),
		WithDebug[int](cfg.Debug),
	)

	tree, err := src.Build(ctx, WithConfig[int](cfg))
	if err != nil {
		return
	}

	return &Outline{blocks: blocks, tree: tree}, nil
}

// Tree retrieves the Hierarchy of block IDs.
func (o *Outline) Tree() *Hierarchy[int] { return o.tree }

// Blocks retrieves the Outline's blocks in Open order.
func (o *Outline) Blocks() []Block { return o.blocks }

// Block retrieves a Block by ID.
func (o *Outline) Block(id int) (b Block, ok bool) {
	if id < 1 || id > len(o.blocks) {
		return
	}

	return o.blocks[id-1], true
}

// Path lists the blocks enclosing the Block identified by id, outermost first & ending with the
// Block itself.
func (o *Outline) Path(ctx context.Context, id int) (path []Block, err error) {
	node, err := o.tree.Locate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("block %d: %w", id, err)
	}

	for ; node != nil; node = node.Parent() {
		path = append([]Block{o.blocks[node.Value()-1]}, path...)
	}

	return
}

// Enclosing retrieves the innermost Block containing pos.
func (o *Outline) Enclosing(ctx context.Context, pos lexer.Position) (b Block, ok bool) {
	root := o.blocks[o.tree.Value()-1]
	if !root.Contains(pos) {
		return
	}
	b, ok = root, true

	for node := o.tree; ; {
		var next *Hierarchy[int]
		for _, child := range node.Children(ctx) {
			if candidate := o.blocks[child.Value()-1]; candidate.Contains(pos) {
				b, next = candidate, child
				break
			}
		}
		if next == nil {
			return
		}
		node = next
	}
}

// Folds lists the blocks spanning multiple lines by depth, innermost level last.
func (o *Outline) Folds(ctx context.Context) (levels [][]Block, err error) {
	byLevel, err := o.tree.AllChildrenByLevel(ctx)
	if err != nil {
		if errors.Is(err, ErrNoChildren) {
			err = nil
		}
		return
	}

	for _, peers := range byLevel {
		var level []Block
		for _, id := range peers.Values(ctx) {
			if b := o.blocks[id-1]; b.End.Line > b.Start.Line {
				level = append(level, b)
			}
		}
		if len(level) > 0 {
			levels = append(levels, level)
		}
	}

	return
}

// Serialize renders the Outline's nesting of block IDs.
func (o *Outline) Serialize(ctx context.Context) (string, error) { return o.tree.Serialize(ctx, nil) }
