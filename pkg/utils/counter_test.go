package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter_MostCommon(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		n     int
		want  []string
	}{
		{"empty", nil, 5, []string{}},
		{"by frequency", []string{"a", "b", "b", "c", "b", "c"}, 0, []string{"b", "c", "a"}},
		{"ties keep first occurrence", []string{"x", "y", "z", "y", "x"}, 0, []string{"x", "y", "z"}},
		{"truncate", []string{"a", "b", "c", "d"}, 2, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCounter[string]()
			for _, s := range tt.input {
				c.Add(s)
			}
			got := c.MostCommon(tt.n)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
