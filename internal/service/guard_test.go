package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordSetsEqual(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want bool
	}{
		{
			name: "identical lists",
			a:    []string{"go", "postgres"},
			b:    []string{"go", "postgres"},
			want: true,
		},
		{
			name: "same set different order",
			a:    []string{"a", "b"},
			b:    []string{"b", "a"},
			want: true,
		},
		{
			name: "duplicates do not change the set",
			a:    []string{"a", "a", "b"},
			b:    []string{"b", "a"},
			want: true,
		},
		{
			name: "different elements",
			a:    []string{"a", "b"},
			b:    []string{"a", "c"},
			want: false,
		},
		{
			name: "subset is not equal",
			a:    []string{"a", "b", "c"},
			b:    []string{"a", "b"},
			want: false,
		},
		{
			name: "case is significant",
			a:    []string{"Go"},
			b:    []string{"go"},
			want: false,
		},
		{
			name: "both empty",
			a:    nil,
			b:    []string{},
			want: true,
		},
		{
			name: "empty versus non-empty",
			a:    nil,
			b:    []string{"a"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeywordSetsEqual(tt.a, tt.b))
			// Set equality is symmetric.
			assert.Equal(t, tt.want, KeywordSetsEqual(tt.b, tt.a))
		})
	}
}
