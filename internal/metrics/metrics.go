// Package metrics holds the Prometheus collectors for the auction server.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fantasta"

// Outcome labels
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
	OutcomeOK       = "ok"
	OutcomeError    = "error"
)

// Metrics owns a private registry so tests and multiple servers never collide
type Metrics struct {
	registry *prometheus.Registry

	operations          *prometheus.CounterVec
	imports             *prometheus.CounterVec
	persistenceFailures *prometheus.CounterVec
	playersOwned        prometheus.Gauge
	playersTotal        prometheus.Gauge
	budgetRemaining     *prometheus.GaugeVec
}

// New creates and registers the collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_operations_total",
			Help:      "Ledger mutations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Workbook imports by kind and outcome.",
		}, []string{"kind", "outcome"}),
		persistenceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_failures_total",
			Help:      "Store reads and writes that failed and were only logged.",
		}, []string{"action"}),
		playersOwned: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "players_owned",
			Help:      "Catalog players currently owned.",
		}),
		playersTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "players_total",
			Help:      "Catalog players loaded.",
		}),
		budgetRemaining: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "budget_remaining",
			Help:      "Remaining budget per participant.",
		}, []string{"participant"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.operations,
		m.imports,
		m.persistenceFailures,
		m.playersOwned,
		m.playersTotal,
		m.budgetRemaining,
	)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveOperation counts a ledger mutation
func (m *Metrics) ObserveOperation(op string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeApplied
	if err != nil {
		outcome = OutcomeRejected
	}
	m.operations.WithLabelValues(op, outcome).Inc()
}

// ObserveImport counts a catalog load or re-import
func (m *Metrics) ObserveImport(kind string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.imports.WithLabelValues(kind, outcome).Inc()
}

// PersistenceFailed counts a swallowed store failure
func (m *Metrics) PersistenceFailed(action string) {
	if m == nil {
		return
	}
	m.persistenceFailures.WithLabelValues(action).Inc()
}

// SetCatalog records catalog size and ownership
func (m *Metrics) SetCatalog(total, owned int) {
	if m == nil {
		return
	}
	m.playersTotal.Set(float64(total))
	m.playersOwned.Set(float64(owned))
}

// SetBudgets replaces the per-participant budget gauges
func (m *Metrics) SetBudgets(budgets map[string]int) {
	if m == nil {
		return
	}
	m.budgetRemaining.Reset()
	for name, b := range budgets {
		m.budgetRemaining.WithLabelValues(name).Set(float64(b))
	}
}
