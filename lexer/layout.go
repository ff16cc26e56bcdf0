// SPDX-License-Identifier: MIT
package lexer

type (
	// layoutStack holds the anchor column of each open block, the top being the last entry.
	layoutStack []int

	// layoutAction is the effect a new line has on the layout.
	layoutAction int
)

const (
	// layoutContinue treats the line as a continuation of the previous statement.
	layoutContinue layoutAction = iota
	// layoutSemi separates the line from the previous statement of the same block.
	layoutSemi
	// layoutClose ends the top block; the line is resolved again against the new top.
	layoutClose
)

// defaultAnchor is the top of an empty layoutStack.
const defaultAnchor = 1

func (s layoutStack) top() int {
	if len(s) < 1 {
		return defaultAnchor
	}

	return s[len(s)-1]
}

func (s *layoutStack) push(column int) { *s = append(*s, column) }

// pop removes the top anchor, reporting false for an empty stack.
func (s *layoutStack) pop() bool {
	if len(*s) < 1 {
		return false
	}
	*s = (*s)[:len(*s)-1]

	return true
}

// resolve compares the column of a line's first token to the top anchor.
func (s layoutStack) resolve(column int) layoutAction {
	top := s.top()

	switch {
	case column == top:
		return layoutSemi
	case column > top:
		return layoutContinue
	default:
		return layoutClose
	}
}
