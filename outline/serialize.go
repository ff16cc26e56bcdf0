// SPDX-License-Identifier: MIT
package outline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// quoteEscaper rewrites escaped double quotes, which end a textual literal regardless of the
// preceding backslash.
var quoteEscaper = strings.NewReplacer(`\\`, `\\`, `\"`, `\u0022`)

// serialItem is a serialized value, or the end of a node's children.
type serialItem struct {
	value string
	end   bool
}

// Serialize transforms a Hierarchy into a string of pre-order values, each node's children
// followed by cfg.EndMarker.
//
// Values are JSON encoded, so string values are double quoted & read back by [Deserialize]
// whatever their content.
//
// A nil cfg uses the Hierarchy's own [Config].
func (h *Hierarchy[T]) Serialize(ctx context.Context, cfg *Config) (output string, err error) {
	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
	}

	if cfg == nil {
		cfg = h.cfg
	}
	cfg.Validate()

	var serErr error
	serChan := make(chan serialItem)
	go func() {
		serErr = h.serialize(ctx, cfg, serChan)
		close(serChan)
	}()

	var buffer strings.Builder
	first := true
	for item := range serChan {
		if !first && !item.end {
			buffer.WriteRune(cfg.Splitter)
		}
		first = false

		if item.end {
			buffer.WriteRune(cfg.EndMarker)
			continue
		}
		buffer.WriteString(item.value)
	}
	if serErr != nil {
		err = serErr
		return
	}

	if err = ctx.Err(); err != nil {
		// Invalidate serialization output.
		return
	}
	output = buffer.String()

	return
}

// serialize performs the serialization grunt work.
func (h *Hierarchy[T]) serialize(ctx context.Context, cfg *Config, serChan chan serialItem) error {
	var rootValue T
	if h == nil || h.value == rootValue {
		return nil
	}

	data, err := json.Marshal(h.value)
	if err != nil {
		return fmt.Errorf("serialize %v: %w", h.value, err)
	}
	serChan <- serialItem{value: quoteEscaper.Replace(string(data))}

	// Children is sorted; ranging over the map would yield valid but differing output.
	for _, child := range h.Children(ctx) {
		select {
		case <-ctx.Done():
			return nil
		default:
			if err = child.serialize(ctx, cfg, serChan); err != nil {
				return err
			}
		}
	}
	serChan <- serialItem{end: true}

	return nil
}
