// SPDX-License-Identifier: MIT
package outline

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/offside/lexer"
)

func TestDeserialize(t *testing.T) {
	logger := logrus.New()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "valid", input: "2,3))", want: "2,3))"},
		{name: "valid (excessive whitespace)", input: " 2 ,     3 )    )         ", want: "2,3))"},
		{name: "valid (multiline & comments)", input: "1,\n  2,5),6)), -- second\n  3),4,7)))", want: "1,2,5),6)),3),4,7)))"},
		{name: "missing end marker", input: "2,3,4))", wantErr: ErrExcessiveValues},
		{name: "excessive end markers", input: "2,3)))", wantErr: ErrExcessiveEndMarkers},
		{name: "lexical error", input: "2,3.)", wantErr: lexer.ErrMissingFractional},
		{name: "unexpected token", input: "2,[3))", wantErr: ErrUnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			h, err := Deserialize[int](ctx, &Config{Logger: logger}, lexer.WithSource(strings.NewReader(tt.input)))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Deserialize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}

			got, err := h.Serialize(ctx, nil)
			if err != nil {
				t.Fatalf("Hierarchy.Serialize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Deserialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeserialize_Labels(t *testing.T) {
	ctx := context.Background()

	h, err := Deserialize[string](ctx, nil, lexer.WithSource(strings.NewReader(`top,"if"),"then"))`)))
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}

	got, err := h.Serialize(ctx, nil)
	if err != nil {
		t.Fatalf("Hierarchy.Serialize() error = %v", err)
	}
	if want := `"top","if"),"then"))`; got != want {
		t.Errorf("Deserialize() = %q, want %q", got, want)
	}
}

func TestDeserialize_StringRoundTrip(t *testing.T) {
	ctx := context.Background()

	h := New("top")
	for _, value := range []string{"if", "true", "a b", "1.5", `say "hi"`, `back\`, "x<y", ")"} {
		if err := h.AddChild(ctx, New(value)); err != nil {
			t.Fatalf("Hierarchy.AddChild(%q) error = %v", value, err)
		}
	}

	serialized, err := h.Serialize(ctx, nil)
	if err != nil {
		t.Fatalf("Hierarchy.Serialize() error = %v", err)
	}

	got, err := Deserialize[string](ctx, nil, lexer.WithSource(strings.NewReader(serialized)))
	if err != nil {
		t.Fatalf("Deserialize(%q) error = %v", serialized, err)
	}

	want, _ := h.AllChildren(ctx)
	gotChildren, _ := got.AllChildren(ctx)
	if !reflect.DeepEqual(gotChildren.Values(ctx), want.Values(ctx)) {
		t.Errorf("Deserialize(%q) = %v, want %v", serialized, spew.Sdump(gotChildren.Values(ctx)), spew.Sdump(want.Values(ctx)))
	}
	if got.Value() != "top" {
		t.Errorf("Deserialize(%q) root = %q, want %q", serialized, got.Value(), "top")
	}

	reserialized, err := got.Serialize(ctx, nil)
	if err != nil {
		t.Fatalf("Hierarchy.Serialize() error = %v", err)
	}
	if reserialized != serialized {
		t.Errorf("Hierarchy.Serialize() = %q, want %q", reserialized, serialized)
	}
}
