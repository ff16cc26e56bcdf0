// SPDX-License-Identifier: MIT
package outline

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
)

type pair struct{ value, parent int }

func (p pair) Value() int  { return p.value }
func (p pair) Parent() int { return p.parent }

func builders(pairs ...pair) (list []Builder[int]) {
	for _, p := range pairs {
		list = append(list, p)
	}

	return
}

func TestBuildSource_Build(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	tests := []struct {
		name    string
		list    []Builder[int]
		ordered bool
		want    string
		wantErr error
	}{
		{
			name:    "ordered",
			list:    builders(pair{1, 0}, pair{2, 1}, pair{3, 2}, pair{4, 1}),
			ordered: true,
			want:    "1,2,3)),4))",
		},
		{
			name: "unordered",
			list: builders(pair{3, 2}, pair{4, 1}, pair{2, 1}, pair{1, 0}),
			want: "1,2,3)),4))",
		},
		{
			name:    "empty",
			list:    builders(),
			wantErr: ErrEmptyHierarchySrc,
		},
		{
			name:    "missing root",
			list:    builders(pair{2, 1}),
			wantErr: ErrMissingRootNode,
		},
		{
			name:    "multiple roots",
			list:    builders(pair{1, 0}, pair{2, 0}),
			wantErr: ErrMultipleRootNodes,
		},
		{
			name:    "orphan",
			list:    builders(pair{1, 0}, pair{2, 1}, pair{4, 3}),
			wantErr: ErrLocateParents,
		},
		{
			name:    "duplicate child",
			list:    builders(pair{1, 0}, pair{2, 1}, pair{2, 1}),
			ordered: true,
			wantErr: ErrAlreadyChild,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			src := NewBuildSource[int](
				WithBuilders(tt.list),
				WithOrdered[int](tt.ordered),
				WithBuildLogger[int](logger),
				WithDebug[int](true),
			)

			h, err := src.Build(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("BuildSource.Build() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if !errors.Is(err, ErrBuildHierarchy) {
					t.Errorf("BuildSource.Build() error = %v, want a %v", err, ErrBuildHierarchy)
				}
				return
			}

			got, err := h.Serialize(ctx, nil)
			if err != nil {
				t.Fatalf("Hierarchy.Serialize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("BuildSource.Build() = %q, want %q", got, tt.want)
			}
			if src.Len() != 0 {
				t.Errorf("BuildSource.Len() = %d after Build, want 0", src.Len())
			}
		})
	}
}

func TestBuildSource_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewBuildSource[int](WithBuilders(builders(pair{1, 0})))
	if _, err := src.Build(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("BuildSource.Build() error = %v, want %v", err, context.Canceled)
	}
}
