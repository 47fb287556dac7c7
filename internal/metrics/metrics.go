// Package metrics exposes the tracker's Prometheus instrumentation. A private
// registry keeps the scrape surface limited to what this process owns.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the tracker records into.
type Metrics struct {
	registry *prometheus.Registry

	cyclesTotal        *prometheus.CounterVec
	betsProcessed      *prometheus.CounterVec
	providerRequests   *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
	cycleDuration      prometheus.Histogram
	pendingBets        prometheus.Gauge
	cachedGameIDs      prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cyclesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bettrack",
			Name:      "cycles_total",
			Help:      "Polling cycles by completion status.",
		}, []string{"status"}),
		betsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bettrack",
			Name:      "bets_processed_total",
			Help:      "Bet processing attempts by outcome.",
		}, []string{"outcome"}),
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bettrack",
			Name:      "provider_requests_total",
			Help:      "PS3838 API requests by endpoint and status.",
		}, []string{"endpoint", "status"}),
		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bettrack",
			Name:      "notifications_total",
			Help:      "Outbound notifications by delivery status.",
		}, []string{"status"}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bettrack",
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of one polling cycle.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		pendingBets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bettrack",
			Name:      "pending_bets",
			Help:      "Bets read from the source in the latest cycle.",
		}),
		cachedGameIDs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bettrack",
			Name:      "cached_game_ids",
			Help:      "Entries currently held in the game-id cache.",
		}),
	}

	m.registry.MustRegister(
		m.cyclesTotal,
		m.betsProcessed,
		m.providerRequests,
		m.notificationsTotal,
		m.cycleDuration,
		m.pendingBets,
		m.cachedGameIDs,
	)
	return m
}

// Handler returns the scrape endpoint for the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// CycleCompleted records one finished polling cycle.
func (m *Metrics) CycleCompleted(status string, took time.Duration) {
	m.cyclesTotal.WithLabelValues(status).Inc()
	m.cycleDuration.Observe(took.Seconds())
}

// BetProcessed records one bet attempt by outcome.
func (m *Metrics) BetProcessed(outcome string) {
	m.betsProcessed.WithLabelValues(outcome).Inc()
}

// ProviderRequest records one provider API call. Wired into the client's
// OnRequest hook.
func (m *Metrics) ProviderRequest(endpoint, status string) {
	m.providerRequests.WithLabelValues(endpoint, status).Inc()
}

// NotificationSent records one outbound notification attempt.
func (m *Metrics) NotificationSent(status string) {
	m.notificationsTotal.WithLabelValues(status).Inc()
}

// SetPendingBets records the size of the latest bet batch.
func (m *Metrics) SetPendingBets(n int) {
	m.pendingBets.Set(float64(n))
}

// SetCachedGameIDs records the current cache population.
func (m *Metrics) SetCachedGameIDs(n int) {
	m.cachedGameIDs.Set(float64(n))
}
