package oel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oelmerger/internal/grid"
)

func TestEmptyRegistryMatrix(t *testing.T) {
	g := grid.Default()
	m := BuildMatrix(g, nil)

	require.Len(t, m.Rows, g.Intervals())
	require.Len(t, m.Summary, g.Intervals())
	for i := range m.Rows {
		assert.Empty(t, m.Rows[i])
		assert.True(t, m.Summary[i])
		assert.Equal(t, Free, m.SummaryStatus(i))
	}
}

func TestSingleOELMatrix(t *testing.T) {
	r := NewRegistry(grid.Default())
	_, err := r.Register("A", "191.325-191.35")
	require.NoError(t, err)

	m := r.Matrix()
	require.Equal(t, []string{"A"}, m.Names)

	var free []string
	for i, row := range m.Rows {
		require.Len(t, row, 1)
		if row[0] == Free {
			free = append(free, m.Edges[i].String())
		}
		assert.Equal(t, row[0] == Free, m.Summary[i])
	}
	assert.Equal(t, []string{"191.32500", "191.33750"}, free)
}

func TestLiteralBelowHalfUnitDoesNotClaimEdge(t *testing.T) {
	r := NewRegistry(grid.Default())
	o, err := r.Register("A", "191.325:191.337495")
	require.NoError(t, err)

	assert.Equal(t, []grid.Freq{grid.FromTHz(191.325), grid.FromTHz(191.33749)}, o.FreeEdges.Sorted())

	m := r.Matrix()
	assert.Equal(t, InUse, m.Rows[0][0])
	assert.False(t, m.Summary[0])
}

func TestIntervalStatusNeedsBothEdges(t *testing.T) {
	g := grid.Default()
	le := grid.FromTHz(191.3375)
	ue := g.Upper(le)
	prev := grid.FromTHz(191.325)

	both := &OEL{FreeEdges: grid.NewPointSet(prev, le, ue)}
	assert.Equal(t, Free, IntervalStatus(g, le, both))
	assert.Equal(t, Free, IntervalStatus(g, prev, both))

	// Dropping the upper edge flips only the interval that uses it.
	lowerOnly := &OEL{FreeEdges: grid.NewPointSet(prev, le)}
	assert.Equal(t, InUse, IntervalStatus(g, le, lowerOnly))
	assert.Equal(t, Free, IntervalStatus(g, prev, lowerOnly))

	upperOnly := &OEL{FreeEdges: grid.NewPointSet(ue)}
	assert.Equal(t, InUse, IntervalStatus(g, le, upperOnly))
}

func TestOffGridLiteralFreesNothing(t *testing.T) {
	r := NewRegistry(grid.Default())
	_, err := r.Register("A", "191.33:191.34")
	require.NoError(t, err)

	m := r.Matrix()
	for i := range m.Rows {
		assert.Equal(t, InUse, m.Rows[i][0])
		assert.False(t, m.Summary[i])
	}
}

func TestSummaryRequiresAllOELs(t *testing.T) {
	r := NewRegistry(grid.Default())
	_, err := r.Register("A", "191.325-191.375")
	require.NoError(t, err)
	_, err = r.Register("B", "191.35-191.4")
	require.NoError(t, err)

	m := r.Matrix()
	want := map[string]bool{
		"191.32500": false,
		"191.33750": false,
		"191.35000": true,
		"191.36250": true,
		"191.37500": false,
	}
	for i, le := range m.Edges[:5] {
		assert.Equal(t, want[le.String()], m.Summary[i], le.String())
	}
}

func TestMatrixColumnHelpers(t *testing.T) {
	r := NewRegistry(grid.Default())
	_, err := r.Register("A", "191.325-191.35")
	require.NoError(t, err)
	m := r.Matrix()

	assert.Equal(t, 2, m.Columns())
	assert.Equal(t, 1, m.SummaryColumn())
	assert.Equal(t, "A", m.ColumnName(0))
	assert.Equal(t, SummaryName, m.ColumnName(1))
	assert.Equal(t, m.Column(0), m.Column(1))
	assert.Nil(t, m.Column(2))
	assert.Nil(t, m.Column(-1))

	assert.Equal(t, "191.33750", m.Upper(0).String())
	assert.Equal(t, "191.33125", m.Center(0).String())
}
