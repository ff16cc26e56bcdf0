// SPDX-License-Identifier: MIT
package outline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"gitlab.com/fisherprime/offside/lexer"
)

// Deserialization errors.
var (
	ErrExcessiveValues     = errors.New("the deserialization source has excessive values")
	ErrExcessiveEndMarkers = errors.New("the deserialization source has excessive end markers")
	ErrUnexpectedToken     = errors.New("unexpected token")
)

// tokenReader pulls the value tokens of a serialized Hierarchy, counting values & end markers.
type tokenReader struct {
	l   *lexer.Lexer
	cfg *Config

	values, ends int
}

// Deserialize transforms a serialized tree, as output by [Hierarchy.Serialize], into a Hierarchy.
//
// The input is tokenized with the offside lexer so whitespace (newlines included) & `--` comments
// are permitted between values; cfg.Splitter & cfg.EndMarker must be delimiters. An invalid entry
// will result in a truncated Hierarchy.
func Deserialize[T Constraint](ctx context.Context, cfg *Config, opts ...lexer.Option) (h *Hierarchy[T], err error) {
	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
	}

	if cfg == nil {
		cfg = DefConfig()
	}
	cfg.Validate()

	r := &tokenReader{l: lexer.New(lexer.DefaultLabel, opts...), cfg: cfg}

	var v T
	h = New(v, WithConfig[T](cfg))
	if _, err = h.deserialize(ctx, r); err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidHierarchySrc, err)
		return
	}

	// Count trailing tokens so excess values & end markers are reported.
	if err = r.drain(); err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidHierarchySrc, err)
		return
	}

	diff := r.values - r.ends
	switch {
	case diff > 0:
		// Excessive values.
		err = fmt.Errorf("%w: +%d", ErrExcessiveValues, diff)
	case diff < 0:
		// Excessive end markers.
		err = fmt.Errorf("%w: %s +%d", ErrExcessiveEndMarkers, string(cfg.EndMarker), diff*-1)
	default:
		// Valid
	}
	if err != nil {
		return
	}

	if cfg.Debug {
		children, _ := h.AllChildrenByLevel(ctx)
		cfg.Logger.Debugf("hierarchy: %+v", children.Values(ctx))
	}

	return
}

// next retrieves the next non-structural token.
func (r *tokenReader) next() (t lexer.Token, ok bool) {
	for {
		if t, ok = r.l.Next(); !ok || !t.ID.IsStructural() {
			return
		}
	}
}

// drain consumes the remaining tokens.
func (r *tokenReader) drain() error {
	for t, ok := r.next(); ok; t, ok = r.next() {
		switch {
		case t.ID == lexer.TokenErr:
			return t.Err
		case t.ID != lexer.TokenReserved:
			r.values++
		case t.Val == string(r.cfg.EndMarker):
			r.ends++
		case t.Val != string(r.cfg.Splitter):
			return fmt.Errorf("%w: %v", ErrUnexpectedToken, t)
		}
	}

	return nil
}

// deserialize performs the deserialization grunt work.
//
// Using json to deserialize the input to the intended type.
func (h *Hierarchy[T]) deserialize(ctx context.Context, r *tokenReader) (end bool, err error) {
	var rootValue T

	select {
	case <-ctx.Done():
		end = true
		return
	default:
	}

	item, proceed := r.next()
	if !proceed {
		end = true
		return
	}

	if r.cfg.Debug {
		r.l.Logger().Debugf("lexed item: %v", item)
	}

	var raw []byte
	switch item.ID {
	case lexer.TokenErr:
		// Stop input processing.
		end = true
		err = item.Err
		return
	case lexer.TokenReserved:
		switch item.Val {
		case string(r.cfg.EndMarker):
			r.ends++
			end = true
		case string(r.cfg.Splitter):
		default:
			end = true
			err = fmt.Errorf("%w: %v", ErrUnexpectedToken, item)
		}
		return
	case lexer.TokenNumeric:
		raw = []byte(item.Val)
	case lexer.TokenTextual:
		// Holds JSON escapes as written by Serialize.
		raw = []byte(`"` + item.Val + `"`)
	case lexer.TokenWordyID, lexer.TokenBackticks:
		raw = []byte(strconv.Quote(item.Val))
	default:
		end = true
		err = fmt.Errorf("%w: %v", ErrUnexpectedToken, item)
		return
	}

	var dest T
	if err = json.Unmarshal(raw, &dest); err != nil {
		end = true
		return
	}
	r.values++

	*h = *New(dest, WithConfig[T](r.cfg))
	for {
		var endChildren bool

		// NOTE: Receivers are passed by copy & need to be initialized; a pointer to nil won't
		// store the results.
		child := New(rootValue, WithConfig[T](r.cfg))
		if endChildren, err = child.deserialize(ctx, r); err != nil {
			return
		}
		if child.value != rootValue {
			child.parent = h
			h.children[child.value] = child
		}
		if endChildren {
			// End of children.
			return
		}
	}
}
