// api.go
package main

import (
	"encoding/json"
	"net/http"
	"time"

	"oelmerger/internal/passband"
	"oelmerger/internal/version"
)

const maxJSONBody = 1 << 20

func (s *Server) writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("failed to encode json response", "error", err)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, APIResponse{Success: false, Error: msg})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	n := s.registry.Len()
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: map[string]interface{}{
		"status":    "healthy",
		"timestamp": s.now().Format(time.RFC3339),
		"version":   version.Version,
		"oels":      n,
	}})
}

type registerRequest struct {
	Name     string `json:"name"`
	Passband string `json:"passband"`
}

func (s *Server) oelsAPIHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		oels, _ := s.snapshot()
		s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: viewOELs(oels)})
	case http.MethodPost:
		var req registerRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		o, err := s.register(req.Name, req.Passband)
		if err != nil {
			s.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: viewOEL(o)})
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) resetAPIHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.reset()
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true})
}

func (s *Server) matrixAPIHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	_, m := s.snapshot()
	view := MatrixView{
		StepTHz:   m.Grid.Step().String(),
		OELs:      m.Names,
		Intervals: make([]IntervalView, len(m.Edges)),
	}
	for i, le := range m.Edges {
		statuses := make([]string, len(m.Rows[i]))
		for j, st := range m.Rows[i] {
			statuses[j] = string(st)
		}
		view.Intervals[i] = IntervalView{
			Lower:    le.String(),
			Center:   m.Center(i).String(),
			Upper:    m.Upper(i).String(),
			Statuses: statuses,
			Summary:  m.Summary[i],
		}
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: view})
}

// parseAPIHandler reports how a passband would be read without registering it.
func (s *Server) parseAPIHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req registerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	segs := passband.Parse(req.Passband)
	points := passband.Expand(segs, s.registry.Grid()).Sorted()
	view := ParseView{Segments: segs, Points: make([]string, len(points))}
	for i, p := range points {
		view.Points[i] = p.String()
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: view})
}
