// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

// Package metrics wires the go-metrics global collector to a Prometheus sink
// so the deny filter's counters (blocked requests, scan latency) can be
// scraped by the host's monitoring stack.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/armon/go-metrics"
	"github.com/armon/go-metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var initOnce sync.Once

// Initialize prepares the global metrics collector with a Prometheus sink.
// Safe to call more than once; only the first call takes effect.
func Initialize() error {
	var err error
	initOnce.Do(func() {
		var sink *prometheus.PrometheusSink
		sink, err = prometheus.NewPrometheusSink()
		if err != nil {
			return
		}
		conf := metrics.DefaultConfig("denyfilter")
		conf.EnableHostname = false
		_, err = metrics.NewGlobal(conf, sink)
	})
	return err
}

// Handler returns the http.Handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartServer exposes the metrics endpoint on addr. It blocks until the
// server stops.
func StartServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return server.ListenAndServe()
}

// MeasureSince records the time elapsed since start under the given name.
func MeasureSince(name []string, start time.Time) {
	metrics.MeasureSince(name, start)
}
