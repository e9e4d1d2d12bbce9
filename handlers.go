// handlers.go
package main

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"oelmerger/internal/oel"
	"oelmerger/internal/report"
)

func (s *Server) pageData(flash *Flash) PageData {
	oels, m := s.snapshot()
	table := report.Table(m)

	data := PageData{
		OELs:       viewOELs(oels),
		Header:     table[0],
		Rows:       table[1:],
		Intervals:  len(m.Edges),
		StepGHz:    m.Grid.Step().GHz(),
		Operations: oel.Operations,
		Flash:      flash,
	}
	for _, free := range m.Summary {
		if free {
			data.FreeCount++
		}
	}
	for j := 0; j < m.Columns(); j++ {
		data.Columns = append(data.Columns, ColumnOption{Index: j, Name: m.ColumnName(j)})
	}
	return data
}

func (s *Server) render(w http.ResponseWriter, status int, t *template.Template, data interface{}) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		s.logger.Error("template error", "template", t.Name(), "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, http.StatusOK, indexTemplate, s.pageData(nil))
}

func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Redirect(w, r, "/summary", http.StatusSeeOther)
		return
	}
	s.render(w, http.StatusOK, summaryTemplate, s.pageData(nil))
}

func (s *Server) addOELHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	o, err := s.register(r.FormValue("name"), r.FormValue("passband"))
	if err != nil {
		s.render(w, http.StatusBadRequest, indexTemplate, s.pageData(&Flash{OK: false, Msg: flashText(err)}))
		return
	}
	s.render(w, http.StatusOK, indexTemplate, s.pageData(&Flash{OK: true, Msg: "Added OEL: " + o.Name}))
}

func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.reset()
	s.render(w, http.StatusOK, indexTemplate, s.pageData(&Flash{OK: true, Msg: "OEL list cleared."}))
}

func (s *Server) importHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.Server.MaxUploadBytes); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	entries, err := report.ReadEntries(file, header.Filename, s.cfg.Server.MaxImportRows)
	if err != nil {
		s.logger.Warn("import failed", "file", header.Filename, "error", err)
		s.render(w, http.StatusBadRequest, indexTemplate, s.pageData(&Flash{OK: false, Msg: fmt.Sprintf("Import of %s failed: %v", header.Filename, err)}))
		return
	}

	res := s.importEntries(entries)
	s.logger.Info("import finished", "file", header.Filename, "added", res.Added, "skipped", len(res.Skipped))
	s.render(w, http.StatusOK, indexTemplate, s.pageData(&Flash{OK: res.Added > 0, Msg: res.message()}))
}

func (s *Server) calculateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/summary", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	cols := r.Form["cols"]
	op := r.FormValue("operation")
	if len(cols) == 0 || op == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	_, m := s.snapshot()
	var results []CalculationResult
	for _, c := range cols {
		col, err := strconv.Atoi(c)
		if err != nil {
			continue
		}
		value, err := oel.Calculate(m, col, op)
		if err != nil {
			s.logger.Debug("calculation skipped", "column", c, "operation", op, "error", err)
			continue
		}
		results = append(results, CalculationResult{Col: m.ColumnName(col), Value: value})
	}

	if len(results) == 0 {
		http.Error(w, "No valid calculations", http.StatusBadRequest)
		return
	}

	page := ResultPage{
		Operation: strings.ReplaceAll(op, "_", " "),
		Results:   results,
		Timestamp: s.now().Format("January 2, 2006 at 3:04 PM"),
	}
	s.render(w, http.StatusOK, resultTemplate, page)
}

func (s *Server) chartHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Redirect(w, r, "/chart", http.StatusSeeOther)
		return
	}

	_, m := s.snapshot()
	var buf bytes.Buffer
	if err := report.RenderChart(&buf, m, s.opts); err != nil {
		s.logger.Error("chart render failed", "error", err)
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) downloadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	_, m := s.snapshot()
	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, m, s.opts); err != nil {
		s.logger.Error("export failed", "error", err)
		http.Error(w, "Failed to build spreadsheet", http.StatusInternalServerError)
		return
	}
	s.metrics.exports.Inc()

	filename := report.Filename(s.cfg.Export.FilenamePrefix, s.now())
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

// flashText is the user-facing message for a registration error.
func flashText(err error) string {
	switch rejectReason(err) {
	case "empty_name":
		return "OEL name must not be empty."
	case "empty_passband":
		return "Passband must not be empty."
	default:
		return err.Error()
	}
}
