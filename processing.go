// processing.go
package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"oelmerger/internal/oel"
	"oelmerger/internal/passband"
	"oelmerger/internal/report"
)

// register adds one OEL under the server lock.
func (s *Server) register(name, text string) (*oel.OEL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.registry.Register(name, text)
	if err != nil {
		s.metrics.rejected.WithLabelValues(rejectReason(err)).Inc()
		s.logger.Debug("OEL rejected", "name", name, "error", err)
		return nil, err
	}
	s.metrics.registered.Inc()
	s.metrics.oels.Set(float64(s.registry.Len()))
	s.logger.Info("OEL registered",
		"name", o.Name,
		"points", o.FreeEdges.Len(),
		"ignored_segments", len(ignoredSegments(o.Segments)))
	return o, nil
}

func (s *Server) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.registry.Len()
	s.registry.Reset()
	s.metrics.resets.Inc()
	s.metrics.oels.Set(0)
	s.logger.Info("OEL list cleared", "removed", n)
}

// snapshot returns the current OELs and a freshly computed matrix.
func (s *Server) snapshot() ([]*oel.OEL, *oel.Matrix) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.OELs(), s.registry.Matrix()
}

type importResult struct {
	Added   int
	Skipped []string
}

func (r importResult) message() string {
	msg := fmt.Sprintf("Imported %d OELs", r.Added)
	if len(r.Skipped) > 0 {
		msg += fmt.Sprintf(", skipped %d: %s", len(r.Skipped), strings.Join(r.Skipped, "; "))
	}
	return msg + "."
}

// importEntries registers every entry; entries failing validation are
// skipped, not fatal.
func (s *Server) importEntries(entries []report.Entry) importResult {
	var res importResult
	for _, e := range entries {
		if _, err := s.register(e.Name, e.Passband); err != nil {
			res.Skipped = append(res.Skipped, fmt.Sprintf("%s: %v", e, err))
			continue
		}
		res.Added++
	}
	return res
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, oel.ErrEmptyName):
		return "empty_name"
	case errors.Is(err, oel.ErrEmptyPassband):
		return "empty_passband"
	default:
		return "other"
	}
}

func ignoredSegments(segs []passband.Segment) []string {
	var out []string
	for _, seg := range segs {
		if seg.Kind == passband.Ignored {
			out = append(out, seg.Raw)
		}
	}
	return out
}

func viewOEL(o *oel.OEL) OELView {
	return OELView{
		ID:       o.ID,
		Name:     o.Name,
		Ranges:   o.Ranges,
		Points:   o.FreeEdges.Len(),
		Segments: o.Segments,
		Ignored:  ignoredSegments(o.Segments),
	}
}

func viewOELs(oels []*oel.OEL) []OELView {
	out := make([]OELView, len(oels))
	for i, o := range oels {
		out[i] = viewOEL(o)
	}
	return out
}
