package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		parts int
		want  []Range
	}{
		{"empty", 0, 4, nil},
		{"single part", 5, 1, []Range{{0, 5}}},
		{"even", 8, 4, []Range{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"remainder goes first", 10, 4, []Range{{0, 3}, {3, 6}, {6, 8}, {8, 10}}},
		{"more parts than items", 3, 8, []Range{{0, 1}, {1, 2}, {2, 3}}},
		{"non-positive parts", 4, 0, []Range{{0, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.n, tt.parts))
		})
	}
}

func TestSplit_Covers(t *testing.T) {
	for n := 1; n < 50; n++ {
		for parts := 1; parts < 10; parts++ {
			rs := Split(n, parts)
			require.NotEmpty(t, rs)

			next, minLen, maxLen := 0, n, 0
			for _, r := range rs {
				require.Equal(t, next, r.Start)
				require.Positive(t, r.Len())
				minLen = min(minLen, r.Len())
				maxLen = max(maxLen, r.Len())
				next = r.End
			}
			assert.Equal(t, n, next)
			assert.LessOrEqual(t, maxLen-minLen, 1)
		}
	}
}
