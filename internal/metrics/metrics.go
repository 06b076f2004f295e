// Package metrics exports timer activity as Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Padamgupta-23/YourTimer/internal/core/timer"
)

const defaultNamespace = "yourtimer"

// Exporter records timer events.
type Exporter struct {
	transitions *prom.CounterVec
	completions *prom.CounterVec
	laps        *prom.CounterVec
	value       *prom.GaugeVec
}

// NewExporter creates and registers the collectors. Collectors already
// registered under the same names are reused.
func NewExporter(namespace string, reg prom.Registerer) (*Exporter, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	transitions := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "timer_transitions_total",
		Help:      "Timer state changes by resulting state.",
	}, []string{"timer", "state"})
	completions := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "timer_completions_total",
		Help:      "Count-down timers that reached zero.",
	}, []string{"timer"})
	laps := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "timer_laps_total",
		Help:      "Recorded stopwatch laps.",
	}, []string{"timer"})
	value := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "timer_value_seconds",
		Help:      "Last reported timer value.",
	}, []string{"timer"})

	var err error
	if transitions, err = registerCollector(reg, transitions); err != nil {
		return nil, err
	}
	if completions, err = registerCollector(reg, completions); err != nil {
		return nil, err
	}
	if laps, err = registerCollector(reg, laps); err != nil {
		return nil, err
	}
	if value, err = registerCollector(reg, value); err != nil {
		return nil, err
	}

	return &Exporter{
		transitions: transitions,
		completions: completions,
		laps:        laps,
		value:       value,
	}, nil
}

// Observe records one timer event.
func (m *Exporter) Observe(event timer.Event) {
	if m == nil {
		return
	}
	name := normalizeLabel(event.Snapshot.Name, "unknown")

	switch event.Type {
	case timer.EventStateChange:
		m.transitions.WithLabelValues(name, string(event.Snapshot.State)).Inc()
	case timer.EventCompleted:
		m.completions.WithLabelValues(name).Inc()
	case timer.EventLap:
		m.laps.WithLabelValues(name).Inc()
	}
	m.value.WithLabelValues(name).Set(event.Snapshot.Value.Seconds())
}

// Watch observes events until the channel closes or ctx is done.
func (m *Exporter) Watch(ctx context.Context, events <-chan timer.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			m.Observe(event)
		}
	}
}

// Handler serves the registry in the Prometheus text format.
func Handler(gatherer prom.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Serve listens on addr until ctx is done.
func Serve(ctx context.Context, addr string, gatherer prom.Gatherer, logger logr.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           Handler(gatherer),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve metrics: %w", err)
	}
	return nil
}

func normalizeLabel(v string, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
