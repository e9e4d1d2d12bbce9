// server.go
package main

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"oelmerger/internal/oel"
	"oelmerger/internal/report"
)

// Server owns the OEL registry for the life of the process. mu serialises
// registry mutation against matrix reads.
type Server struct {
	cfg     *Config
	opts    report.Options
	logger  *slog.Logger
	metrics *metrics
	gather  prometheus.Gatherer
	now     func() time.Time

	mu       sync.Mutex
	registry *oel.Registry
}

// NewServer builds a Server with an empty registry over the configured grid.
func NewServer(cfg *Config, logger *slog.Logger, reg *prometheus.Registry) (*Server, error) {
	g, err := cfg.NewGrid()
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:      cfg,
		opts:     cfg.ReportOptions(),
		logger:   logger,
		metrics:  newMetrics(reg),
		gather:   reg,
		now:      time.Now,
		registry: oel.NewRegistry(g),
	}, nil
}

// ServeMux returns the routes of the web UI, the JSON API and /metrics.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.indexHandler)
	mux.HandleFunc("/summary", s.summaryHandler)
	mux.HandleFunc("/chart", s.chartHandler)
	mux.HandleFunc("/add_oel", s.addOELHandler)
	mux.HandleFunc("/reset", s.resetHandler)
	mux.HandleFunc("/import", s.importHandler)
	mux.HandleFunc("/calculate", s.calculateHandler)
	mux.HandleFunc("/download_excel", s.downloadHandler)

	mux.HandleFunc("/api/health", s.healthHandler)
	mux.HandleFunc("/api/oels", s.oelsAPIHandler)
	mux.HandleFunc("/api/reset", s.resetAPIHandler)
	mux.HandleFunc("/api/matrix", s.matrixAPIHandler)
	mux.HandleFunc("/api/parse", s.parseAPIHandler)

	mux.Handle("/metrics", promhttp.HandlerFor(s.gather, promhttp.HandlerOpts{}))
	return mux
}

// Handler is ServeMux with request logging.
func (s *Server) Handler() http.Handler {
	return logRequests(s.logger, s.ServeMux())
}
