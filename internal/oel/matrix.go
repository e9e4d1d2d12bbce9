package oel

import "oelmerger/internal/grid"

// Status is the state of one interval for one OEL.
type Status string

const (
	Free  Status = "FREE"
	InUse Status = "IN USED"
)

// IntervalStatus is Free when o claims both edges of the interval starting
// at le.
func IntervalStatus(g *grid.Grid, le grid.Freq, o *OEL) Status {
	if o.FreeEdges.Has(le) && o.FreeEdges.Has(g.Upper(le)) {
		return Free
	}
	return InUse
}

// Matrix is the status of every grid interval against every OEL.
// Rows[i][j] is interval i (lower edge Edges[i]) for OEL Names[j].
// Summary[i] is true when every OEL has interval i free, and always true
// when there are no OELs.
type Matrix struct {
	Grid    *grid.Grid
	Edges   []grid.Freq
	Names   []string
	Rows    [][]Status
	Summary []bool
}

// BuildMatrix computes the matrix for oels over g.
func BuildMatrix(g *grid.Grid, oels []*OEL) *Matrix {
	edges := g.LowerEdges()
	m := &Matrix{
		Grid:    g,
		Edges:   edges,
		Names:   make([]string, len(oels)),
		Rows:    make([][]Status, len(edges)),
		Summary: make([]bool, len(edges)),
	}
	for j, o := range oels {
		m.Names[j] = o.Name
	}

	for i, le := range edges {
		row := make([]Status, len(oels))
		allFree := true
		for j, o := range oels {
			row[j] = IntervalStatus(g, le, o)
			if row[j] != Free {
				allFree = false
			}
		}
		m.Rows[i] = row
		m.Summary[i] = allFree
	}
	return m
}

// SummaryStatus renders Summary[i] as a Status.
func (m *Matrix) SummaryStatus(i int) Status {
	if m.Summary[i] {
		return Free
	}
	return InUse
}

// Upper is the upper edge of interval i.
func (m *Matrix) Upper(i int) grid.Freq { return m.Grid.Upper(m.Edges[i]) }

// Center is the centre frequency of interval i.
func (m *Matrix) Center(i int) grid.Freq { return m.Grid.Center(m.Edges[i]) }

// Columns is the number of status columns including the summary.
func (m *Matrix) Columns() int { return len(m.Names) + 1 }

// SummaryColumn is the column index of the summary in Column and Calculate.
func (m *Matrix) SummaryColumn() int { return len(m.Names) }

// ColumnName is the OEL name of column j, or "Summary (ALL)".
func (m *Matrix) ColumnName(j int) string {
	if j == m.SummaryColumn() {
		return SummaryName
	}
	return m.Names[j]
}

// SummaryName labels the summary column.
const SummaryName = "Summary (ALL)"

// Column returns the statuses of column j, top to bottom. Column
// SummaryColumn() is the summary. It returns nil for an unknown column.
func (m *Matrix) Column(j int) []Status {
	if j < 0 || j > m.SummaryColumn() {
		return nil
	}
	out := make([]Status, len(m.Edges))
	for i := range m.Edges {
		if j == m.SummaryColumn() {
			out[i] = m.SummaryStatus(i)
			continue
		}
		out[i] = m.Rows[i][j]
	}
	return out
}
