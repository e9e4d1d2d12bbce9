package grid

import (
	"math"

	"github.com/pkg/errors"
)

// Default grid bounds, in THz.
const (
	DefaultStartTHz = 191.325
	DefaultEndTHz   = 196.125
	DefaultStepTHz  = 0.0125
)

var (
	ErrStepNotPositive = errors.New("grid step must be greater than 0")
	ErrStepResolution  = errors.New("grid step must be a multiple of 0.00002 THz")
	ErrEmptyGrid       = errors.New("grid end must be greater than start")
)

// Grid is an immutable, evenly spaced sequence of frequency points covering
// [Start, End]. Each point except the last is the lower edge of one interval.
type Grid struct {
	start  Freq
	end    Freq
	step   Freq
	points []Freq
}

// New builds the grid start, start+step, ... with
// round((end-start)/step)+1 points. The step must be an even number of
// units so that interval centres fall on a Freq.
func New(start, end, step Freq) (*Grid, error) {
	if step <= 0 {
		return nil, ErrStepNotPositive
	}
	if step%2 != 0 {
		return nil, ErrStepResolution
	}
	if end <= start {
		return nil, ErrEmptyGrid
	}
	n := int(math.Round(float64(end-start)/float64(step))) + 1
	points := make([]Freq, n)
	for i := range points {
		points[i] = start + Freq(i)*step
	}
	return &Grid{start: start, end: end, step: step, points: points}, nil
}

// NewTHz is New with THz inputs. A step with more than 5 decimals is
// rejected rather than rounded.
func NewTHz(start, end, step float64) (*Grid, error) {
	st := FromTHz(step)
	if st.THz() != step {
		return nil, errors.Wrapf(ErrStepResolution, "step %g THz", step)
	}
	return New(FromTHz(start), FromTHz(end), st)
}

// Default returns the standard 191.325-196.125 THz grid with 12.5 GHz steps.
func Default() *Grid {
	g, err := NewTHz(DefaultStartTHz, DefaultEndTHz, DefaultStepTHz)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Start() Freq { return g.start }
func (g *Grid) End() Freq   { return g.end }
func (g *Grid) Step() Freq  { return g.step }

// Len is the number of grid points.
func (g *Grid) Len() int { return len(g.points) }

// Intervals is the number of intervals, one less than Len.
func (g *Grid) Intervals() int { return len(g.points) - 1 }

// Points returns a copy of all grid points.
func (g *Grid) Points() []Freq {
	out := make([]Freq, len(g.points))
	copy(out, g.points)
	return out
}

// LowerEdges returns every point but the last.
func (g *Grid) LowerEdges() []Freq {
	out := make([]Freq, len(g.points)-1)
	copy(out, g.points[:len(g.points)-1])
	return out
}

// Upper is the upper edge of the interval starting at le.
func (g *Grid) Upper(le Freq) Freq { return le + g.step }

// Center is the centre frequency of the interval starting at le.
func (g *Grid) Center(le Freq) Freq { return le + g.step/2 }

// Contains reports whether f lies within [Start, End].
func (g *Grid) Contains(f Freq) bool {
	return f >= g.start && f <= g.end
}
