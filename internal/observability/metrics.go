package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the routing daemon.
type Metrics struct {
	registry      *prometheus.Registry
	ConfigLoads   *prometheus.CounterVec
	AliasOutcomes *prometheus.CounterVec
	Resolutions   *prometheus.CounterVec
	Unresolved    prometheus.Counter
	SkippedAlias  prometheus.Counter
	TransportErrs *prometheus.CounterVec
}

// NewMetrics constructs a metrics registry with router collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	loads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gambit_config_loads_total",
		Help: "Project config loads that resolved to a config file, by cache result",
	}, []string{"result"})

	aliases := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gambit_alias_resolutions_total",
		Help: "Alias resolution outcomes (applied, passthrough, missing_alias)",
	}, []string{"outcome"})

	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gambit_provider_resolutions_total",
		Help: "Provider classifications by provider key",
	}, []string{"provider"})

	unresolved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gambit_provider_unresolved_total",
		Help: "Models that matched no provider given the bound fallback",
	})

	skipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gambit_alias_entries_skipped_total",
		Help: "Alias entries dropped during table construction",
	})

	trErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gambit_transport_errors_total",
		Help: "Transport-level errors by transport and reason",
	}, []string{"transport", "reason"})

	reg.MustRegister(loads, aliases, resolutions, unresolved, skipped, trErrors)

	return &Metrics{
		registry:      reg,
		ConfigLoads:   loads,
		AliasOutcomes: aliases,
		Resolutions:   resolutions,
		Unresolved:    unresolved,
		SkippedAlias:  skipped,
		TransportErrs: trErrors,
	}
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveConfigLoad implements config.CacheObserver.
func (m *Metrics) ObserveConfigLoad(path string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.ConfigLoads.WithLabelValues(result).Inc()
}

// RecordAliasOutcome counts one alias resolution outcome.
func (m *Metrics) RecordAliasOutcome(outcome string) {
	if m == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.AliasOutcomes.WithLabelValues(outcome).Inc()
}

// RecordResolution counts a successful provider classification.
func (m *Metrics) RecordResolution(providerKey string) {
	if m == nil {
		return
	}
	if providerKey == "" {
		providerKey = "unknown"
	}
	m.Resolutions.WithLabelValues(providerKey).Inc()
}

// RecordUnresolved counts a model that matched no provider.
func (m *Metrics) RecordUnresolved() {
	if m == nil {
		return
	}
	m.Unresolved.Inc()
}

// RecordSkippedAliases counts alias entries dropped while building a table.
func (m *Metrics) RecordSkippedAliases(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SkippedAlias.Add(float64(n))
}

// RecordTransportError records a transport-level error.
func (m *Metrics) RecordTransportError(transport, reason string) {
	if m == nil {
		return
	}
	if transport == "" {
		transport = "unknown"
	}
	if reason == "" {
		reason = "unknown"
	}
	m.TransportErrs.WithLabelValues(transport, reason).Inc()
}
