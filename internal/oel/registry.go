// Package oel holds the registered optical elements and derives the
// per-interval FREE/IN USED status matrix from them.
package oel

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"oelmerger/internal/grid"
	"oelmerger/internal/passband"
)

var (
	ErrEmptyName     = errors.New("OEL name must not be empty")
	ErrEmptyPassband = errors.New("passband must not be empty")
)

// OEL is one registered optical element. It is never modified after
// registration.
type OEL struct {
	ID        string
	Name      string
	Ranges    string
	Segments  []passband.Segment
	FreeEdges grid.PointSet
}

// Registry is the ordered list of OELs. Order of registration is the column
// order of every report. A Registry does no locking; callers serialise
// access.
type Registry struct {
	grid *grid.Grid
	oels []*OEL
}

// NewRegistry returns an empty registry over g.
func NewRegistry(g *grid.Grid) *Registry {
	return &Registry{grid: g}
}

// Register validates name and text, parses text against the grid and
// appends the result. Name and text are stored trimmed.
func (r *Registry) Register(name, text string) (*OEL, error) {
	name = strings.TrimSpace(name)
	text = strings.TrimSpace(text)
	if name == "" {
		return nil, ErrEmptyName
	}
	if text == "" {
		return nil, ErrEmptyPassband
	}

	segs := passband.Parse(text)
	o := &OEL{
		ID:        uuid.NewString(),
		Name:      name,
		Ranges:    text,
		Segments:  segs,
		FreeEdges: passband.Expand(segs, r.grid),
	}
	r.oels = append(r.oels, o)
	return o, nil
}

// Reset drops every OEL.
func (r *Registry) Reset() {
	r.oels = nil
}

// Len is the number of registered OELs.
func (r *Registry) Len() int { return len(r.oels) }

// Grid is the grid the registry parses against.
func (r *Registry) Grid() *grid.Grid { return r.grid }

// OELs returns the registered OELs in registration order.
func (r *Registry) OELs() []*OEL {
	out := make([]*OEL, len(r.oels))
	copy(out, r.oels)
	return out
}

// Matrix recomputes the status matrix over the current OELs.
func (r *Registry) Matrix() *Matrix {
	return BuildMatrix(r.grid, r.oels)
}
