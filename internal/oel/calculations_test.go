package oel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oelmerger/internal/grid"
)

func testMatrix(t *testing.T) *Matrix {
	t.Helper()
	r := NewRegistry(grid.Default())
	// Frees 191.325-191.35 (2 intervals) and 191.4-191.45 (4 intervals).
	_, err := r.Register("A", "191.325-191.35:191.4-191.45")
	require.NoError(t, err)
	return r.Matrix()
}

func TestCalculate(t *testing.T) {
	m := testMatrix(t)
	total := float64(len(m.Edges))

	tests := []struct {
		op   string
		want float64
	}{
		{"free_count", 6},
		{"used_count", total - 6},
		{"free_percent", 100 * 6 / total},
		{"free_ghz", 75},
		{"longest_free_ghz", 50},
		{"free_blocks", 2},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			got, err := Calculate(m, 0, tt.op)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)

			summary, err := Calculate(m, m.SummaryColumn(), tt.op)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, summary, 1e-9)
		})
	}
}

func TestCalculateErrors(t *testing.T) {
	m := testMatrix(t)

	_, err := Calculate(m, 5, "free_count")
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = Calculate(m, 0, "median")
	assert.ErrorIs(t, err, ErrUnsupportedOp)
}

func TestFreeBlocks(t *testing.T) {
	m := testMatrix(t)

	blocks := FreeBlocks(m, 0)
	require.Len(t, blocks, 2)
	assert.Equal(t, "191.32500", blocks[0].Lower.String())
	assert.Equal(t, "191.35000", blocks[0].Upper.String())
	assert.Equal(t, "191.40000", blocks[1].Lower.String())
	assert.Equal(t, "191.45000", blocks[1].Upper.String())
	assert.InDelta(t, 50, blocks[1].Width().GHz(), 1e-9)
}

func TestFreeBlocksEmptyRegistryIsOneBlock(t *testing.T) {
	g := grid.Default()
	m := BuildMatrix(g, nil)

	blocks := FreeBlocks(m, m.SummaryColumn())
	require.Len(t, blocks, 1)
	assert.Equal(t, g.Start(), blocks[0].Lower)
	assert.Equal(t, g.End(), blocks[0].Upper)
}
