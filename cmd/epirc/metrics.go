package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/EllipticPIR/EllipticPIR/log"
	"github.com/EllipticPIR/EllipticPIR/metrics"
)

// setupMetrics starts a Prometheus exporter for the duration of the
// command if --metrics-addr was given, and returns a Recorder (nil if
// metrics are disabled) plus a function to shut the exporter down.
func setupMetrics(cmd *cobra.Command) (*metrics.Recorder, func()) {
	addr, _ := cmd.Flags().GetString("metrics-addr")
	if addr == "" {
		return nil, func() {}
	}

	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics server", map[string]any{"addr": addr, "err": err.Error()})
		}
	}()

	return rec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
