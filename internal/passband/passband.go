// Package passband parses the passband text an OEL is registered with into
// the grid points it frees.
//
// A passband is a ':' separated list of segments. A segment is either a
// range "a-b" (optionally parenthesised), which is expanded to every grid
// point inside [a, b], or a single literal frequency. Anything else is
// ignored.
package passband

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"oelmerger/internal/grid"
)

// Kind classifies a parsed segment.
type Kind uint8

const (
	Ignored Kind = iota
	Range
	Literal
)

func (k Kind) String() string {
	switch k {
	case Range:
		return "range"
	case Literal:
		return "literal"
	default:
		return "ignored"
	}
}

// MarshalText lets Kind appear as a word in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Segment is one ':' separated piece of a passband. For a Range, Low and
// High hold the bounds with Low <= High. For a Literal, Low holds the value.
type Segment struct {
	Raw  string  `json:"raw"`
	Kind Kind    `json:"kind"`
	Low  float64 `json:"low,omitempty"`
	High float64 `json:"high,omitempty"`
}

const separator = ":"

var rangeRe = regexp.MustCompile(`\(?\s*([0-9]+(?:\.[0-9]+)?)\s*-\s*([0-9]+(?:\.[0-9]+)?)\s*\)?`)

// Parse splits text into classified segments. Empty segments are dropped.
func Parse(text string) []Segment {
	text = norm.NFKC.String(text)

	var out []Segment
	for _, raw := range strings.Split(text, separator) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		out = append(out, ParseSegment(raw))
	}
	return out
}

// ParseSegment classifies a single trimmed segment.
func ParseSegment(raw string) Segment {
	s := strings.ReplaceAll(raw, ",", ".")

	if m := rangeRe.FindStringSubmatch(s); m != nil {
		lo, errLo := strconv.ParseFloat(m[1], 64)
		hi, errHi := strconv.ParseFloat(m[2], 64)
		if errLo == nil && errHi == nil {
			if lo > hi {
				lo, hi = hi, lo
			}
			return Segment{Raw: raw, Kind: Range, Low: lo, High: hi}
		}
	}

	lit := strings.TrimSpace(strings.Trim(s, "() "))
	if strings.ContainsAny(lit, "xX") {
		return Segment{Raw: raw, Kind: Ignored}
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Segment{Raw: raw, Kind: Ignored}
	}
	return Segment{Raw: raw, Kind: Literal, Low: v}
}

// Points parses text and returns every grid point it frees.
func Points(text string, g *grid.Grid) grid.PointSet {
	return Expand(Parse(text), g)
}

// Expand unions the points of segs. Range points outside the grid are
// dropped; literals are kept as given.
func Expand(segs []Segment, g *grid.Grid) grid.PointSet {
	out := make(grid.PointSet)
	for _, seg := range segs {
		switch seg.Kind {
		case Range:
			// Bounds further out than one step cannot change which grid
			// points survive.
			below, above := (g.Start() - g.Step()).THz(), (g.End() + g.Step()).THz()
			s, e := span(clamp(seg.Low, below, above), clamp(seg.High, below, above), g.Step())
			// Only the part overlapping the grid can survive the bounds check.
			if lo := ceilMultiple(g.Start(), g.Step()); s < lo {
				s = lo
			}
			if hi := floorMultiple(g.End(), g.Step()); e > hi {
				e = hi
			}
			for f := s; f <= e; f += g.Step() {
				if g.Contains(f) {
					out.Add(f)
				}
			}
		case Literal:
			out.Add(grid.FromTHz(seg.Low))
		}
	}
	return out
}

// Enumerate returns the step multiples inside [lo, hi] (THz). Both ends are
// snapped to the nearest multiple of step, then pulled back inside the
// original bounds if the snap went outside. A range narrower than one step
// can therefore be empty.
func Enumerate(lo, hi float64, step grid.Freq) []grid.Freq {
	s, e := span(lo, hi, step)

	var out []grid.Freq
	for f := s; f <= e; f += step {
		out = append(out, f)
	}
	return out
}

// maxTHz bounds the values span snaps, keeping every step multiple it
// produces well inside int64.
var maxTHz = float64(math.MaxInt64/4) / grid.Scale

func span(lo, hi float64, step grid.Freq) (grid.Freq, grid.Freq) {
	if lo > hi {
		lo, hi = hi, lo
	}
	lo = clamp(lo, -maxTHz, maxTHz)
	hi = clamp(hi, -maxTHz, maxTHz)
	s := snap(lo, step)
	if s.THz() < lo {
		s += step
	}
	e := snap(hi, step)
	if e.THz() > hi {
		e -= step
	}
	return s, e
}

func snap(thz float64, step grid.Freq) grid.Freq {
	return grid.Freq(math.RoundToEven(thz/step.THz())) * step
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func floorMultiple(f, step grid.Freq) grid.Freq {
	q := f / step
	if f%step < 0 {
		q--
	}
	return q * step
}

func ceilMultiple(f, step grid.Freq) grid.Freq {
	return -floorMultiple(-f, step)
}
