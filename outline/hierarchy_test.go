// SPDX-License-Identifier: MIT
package outline

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// sample builds:
//
//	1
//	├── 2
//	│   ├── 5
//	│   └── 6
//	├── 3
//	└── 4
//	    └── 7
func sample(t *testing.T) *Hierarchy[int] {
	t.Helper()

	src := NewBuildSource[int](WithBuilders(builders(
		pair{1, 0}, pair{2, 1}, pair{3, 1}, pair{4, 1}, pair{5, 2}, pair{6, 2}, pair{7, 4},
	)))

	h, err := src.Build(context.Background())
	if err != nil {
		t.Fatalf("BuildSource.Build() error = %v", err)
	}

	return h
}

func TestHierarchy_Children(t *testing.T) {
	ctx := context.Background()
	h := sample(t)

	children := h.Children(ctx)
	if got, want := children.Values(ctx), []int{2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Hierarchy.Children() = %v, want %v", got, want)
	}

	all, err := h.AllChildren(ctx)
	if err != nil {
		t.Fatalf("Hierarchy.AllChildren() error = %v", err)
	}
	if got, want := all.Values(ctx), []int{2, 3, 4, 5, 6, 7}; !reflect.DeepEqual(got, want) {
		t.Errorf("Hierarchy.AllChildren() = %v, want %v", got, want)
	}

	byLevel, err := h.AllChildrenByLevel(ctx)
	if err != nil {
		t.Fatalf("Hierarchy.AllChildrenByLevel() error = %v", err)
	}
	if got, want := byLevel.Values(ctx), [][]int{{2, 3, 4}, {5, 6, 7}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Hierarchy.AllChildrenByLevel() = %v, want %v", got, want)
	}

	leaf := New(9)
	if _, err = leaf.AllChildren(ctx); !errors.Is(err, ErrNoChildren) {
		t.Errorf("Hierarchy.AllChildren() error = %v, want %v", err, ErrNoChildren)
	}
	if _, err = leaf.AllChildrenByLevel(ctx); !errors.Is(err, ErrNoChildren) {
		t.Errorf("Hierarchy.AllChildrenByLevel() error = %v, want %v", err, ErrNoChildren)
	}
}

func TestHierarchy_Leaves(t *testing.T) {
	ctx := context.Background()

	leaves, err := sample(t).Leaves(ctx)
	if err != nil {
		t.Fatalf("Hierarchy.Leaves() error = %v", err)
	}
	if got, want := leaves.Values(ctx), []int{3, 5, 6, 7}; !reflect.DeepEqual(got, want) {
		t.Errorf("Hierarchy.Leaves() = %v, want %v", got, want)
	}
}

func TestHierarchy_Locate(t *testing.T) {
	tests := []struct {
		name       string
		value      int
		wantParent int
		wantErr    error
	}{
		{name: "root", value: 1},
		{name: "child", value: 3, wantParent: 1},
		{name: "grandchild", value: 7, wantParent: 4},
		{name: "missing", value: 8, wantErr: ErrNotFound},
	}

	ctx := context.Background()
	h := sample(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := h.Locate(ctx, tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Hierarchy.Locate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if node.Value() != tt.value {
				t.Errorf("Hierarchy.Locate() = %d, want %d", node.Value(), tt.value)
			}

			parent, err := h.ParentTo(ctx, tt.value)
			if err != nil {
				t.Fatalf("Hierarchy.ParentTo() error = %v", err)
			}

			var got int
			if parent != nil {
				got = parent.Value()
			}
			if got != tt.wantParent {
				t.Errorf("Hierarchy.ParentTo() = %d, want %d", got, tt.wantParent)
			}
		})
	}
}

func TestHierarchy_AddChild(t *testing.T) {
	ctx := context.Background()
	h := New(1)

	if err := h.AddChild(ctx, New(2)); err != nil {
		t.Fatalf("Hierarchy.AddChild() error = %v", err)
	}
	if err := h.AddChild(ctx, New(2)); !errors.Is(err, ErrAlreadyChild) {
		t.Errorf("Hierarchy.AddChild() error = %v, want %v", err, ErrAlreadyChild)
	}

	child, ok := h.Child(ctx, 2)
	if !ok || child.Parent() != h {
		t.Errorf("Hierarchy.Child() = %v, %v", child, ok)
	}
}

func TestHierarchy_WalkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sample(t).AllChildren(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Hierarchy.AllChildren() error = %v, want %v", err, context.Canceled)
	}
}
