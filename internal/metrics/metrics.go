package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics - набор метрик клиента дашборда. Каждый экземпляр владеет своим реестром.
type Metrics struct {
	registry *prometheus.Registry

	gatewayRequests *prometheus.CounterVec
	gatewayDuration *prometheus.HistogramVec
	pushEvents      *prometheus.CounterVec
	pushConnected   prometheus.Gauge
	incidents       prometheus.Gauge
	reloads         *prometheus.CounterVec
}

// New создает и регистрирует метрики
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		gatewayRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_gateway_requests_total",
				Help: "Total number of backend requests by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		gatewayDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashboard_gateway_request_duration_seconds",
				Help:    "Backend request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		pushEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_push_events_total",
				Help: "Push events received by event name",
			},
			[]string{"event"},
		),
		pushConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_push_connected",
			Help: "1 when the push channel is connected",
		}),
		incidents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_incidents",
			Help: "Number of incidents in the canonical collection",
		}),
		reloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_snapshot_reloads_total",
				Help: "Snapshot reloads by result",
			},
			[]string{"result"},
		),
	}

	m.registry.MustRegister(
		m.gatewayRequests,
		m.gatewayDuration,
		m.pushEvents,
		m.pushConnected,
		m.incidents,
		m.reloads,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveGatewayRequest фиксирует вызов бэкенда
func (m *Metrics) ObserveGatewayRequest(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.gatewayRequests.WithLabelValues(operation, outcome).Inc()
	m.gatewayDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *Metrics) IncPushEvent(event string) {
	if m == nil {
		return
	}
	m.pushEvents.WithLabelValues(event).Inc()
}

func (m *Metrics) SetPushConnected(connected bool) {
	if m == nil {
		return
	}
	if connected {
		m.pushConnected.Set(1)
		return
	}
	m.pushConnected.Set(0)
}

func (m *Metrics) SetIncidents(n int) {
	if m == nil {
		return
	}
	m.incidents.Set(float64(n))
}

// IncReload: result - applied, stale, failed, offline
func (m *Metrics) IncReload(result string) {
	if m == nil {
		return
	}
	m.reloads.WithLabelValues(result).Inc()
}

// Registry нужен тестам и внешним экспортерам
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
