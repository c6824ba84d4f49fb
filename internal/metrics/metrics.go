// Package metrics exports the sampled cycle progress as Prometheus gauges.
//
// Exposed series:
//
//	luminar_cycle_progress{cycle="second|minute|...|century"}  fraction in [0, 1]
//	luminar_year_day_progress                                  day-granular year fraction
//	luminar_iso_week                                           ISO 8601 week number
//	luminar_samples_total                                      progress records observed
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iburimskiy/luminar-weave/internal/calendar"
)

const namespace = "luminar"

// Collector records progress samples. It satisfies clock.Observer.
type Collector struct {
	progress  *prometheus.GaugeVec
	yearByDay prometheus.Gauge
	isoWeek   prometheus.Gauge
	samples   prometheus.Counter
}

// NewCollector creates the gauges and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		progress: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cycle_progress",
			Help:      "Fraction of the current cycle that has elapsed",
		}, []string{"cycle"}),
		yearByDay: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "year_day_progress",
			Help:      "Fraction of the current year that has elapsed, counted by day",
		}),
		isoWeek: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "iso_week",
			Help:      "ISO 8601 week number of the current instant",
		}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Total number of progress records observed",
		}),
	}

	reg.MustRegister(c.progress, c.yearByDay, c.isoWeek, c.samples)
	return c
}

// Observe updates every series from p.
func (c *Collector) Observe(p calendar.Progress) {
	for _, cy := range calendar.Cycles() {
		c.progress.WithLabelValues(cy.String()).Set(p.Fraction(cy))
	}
	c.yearByDay.Set(p.YearProgress)
	c.isoWeek.Set(float64(p.ISOWeek))
	c.samples.Inc()
}

// Handler serves the metrics gathered from g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}

// Serve listens on addr and serves Handler(g) until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return serve(ctx, lis, g)
}

func serve(ctx context.Context, lis net.Listener, g prometheus.Gatherer) error {
	logger := slog.With("component", "metrics", "addr", lis.Addr().String())
	srv := &http.Server{
		Handler:           Handler(g),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving metrics")
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown metrics server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	logger.Info("metrics server stopped")
	return nil
}
