// metrics.go
package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	registered prometheus.Counter
	rejected   *prometheus.CounterVec
	resets     prometheus.Counter
	exports    prometheus.Counter
	oels       prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		registered: f.NewCounter(prometheus.CounterOpts{
			Name: "oelmerger_oels_registered_total",
			Help: "OELs accepted by the registry.",
		}),
		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "oelmerger_oels_rejected_total",
			Help: "OEL registrations rejected by validation.",
		}, []string{"reason"}),
		resets: f.NewCounter(prometheus.CounterOpts{
			Name: "oelmerger_resets_total",
			Help: "Registry resets.",
		}),
		exports: f.NewCounter(prometheus.CounterOpts{
			Name: "oelmerger_exports_total",
			Help: "Spreadsheet exports served.",
		}),
		oels: f.NewGauge(prometheus.GaugeOpts{
			Name: "oelmerger_oels",
			Help: "OELs currently registered.",
		}),
	}
}
