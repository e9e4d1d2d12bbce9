// Package grid models the fixed optical frequency grid: fixed-point
// frequencies, the ordered point sequence and its intervals.
package grid

import (
	"sort"
	"strconv"
	"strings"
)

// Scale is the number of Freq units in one THz. One unit is 10 MHz, which is
// the 5th decimal digit of a THz value.
const Scale = 100000

// Freq is a frequency in units of 1e-5 THz.
type Freq int64

// FromTHz converts a THz value to the nearest Freq. Rounding works on the
// exact decimal expansion of thz, so a value just below a half unit never
// rounds up. Finite values beyond the int64 range saturate. NaN and
// infinities map to 0.
func FromTHz(thz float64) Freq {
	s := strconv.FormatFloat(thz, 'f', 5, 64)
	n, _ := strconv.ParseInt(strings.Replace(s, ".", "", 1), 10, 64)
	return Freq(n)
}

// THz returns f as a THz float.
func (f Freq) THz() float64 {
	return float64(f) / Scale
}

// GHz returns f as a GHz float.
func (f Freq) GHz() float64 {
	return float64(f) / (Scale / 1000)
}

// String formats f with exactly 5 decimals, e.g. "191.32500".
func (f Freq) String() string {
	return strconv.FormatFloat(f.THz(), 'f', 5, 64)
}

// PointSet is an unordered set of frequencies.
type PointSet map[Freq]struct{}

// NewPointSet returns a set holding pts.
func NewPointSet(pts ...Freq) PointSet {
	s := make(PointSet, len(pts))
	for _, p := range pts {
		s.Add(p)
	}
	return s
}

func (s PointSet) Add(f Freq) { s[f] = struct{}{} }

func (s PointSet) Has(f Freq) bool {
	_, ok := s[f]
	return ok
}

func (s PointSet) Len() int { return len(s) }

// Sorted returns the members in ascending order.
func (s PointSet) Sorted() []Freq {
	out := make([]Freq, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
