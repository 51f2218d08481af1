package metrics

import (
	"net/http"

	"signal_bot/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics — счётчики конвейера. Собственный Registry, чтобы тесты
// могли поднимать инстансы независимо.
type Metrics struct {
	registry *prometheus.Registry

	decisions *prometheus.CounterVec
	orders    *prometheus.CounterVec
	closes    *prometheus.CounterVec
	errors    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_bot_decisions_total",
			Help: "Strategy decisions by symbol and outcome.",
		}, []string{"symbol", "decision"}),
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_bot_orders_total",
			Help: "Trailing-stop orders placed.",
		}, []string{"symbol", "side"}),
		closes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_bot_position_closes_total",
			Help: "Positions closed by the monitor.",
		}, []string{"symbol"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_bot_trade_errors_total",
			Help: "Trade pipeline failures by operation.",
		}, []string{"op"}),
	}

	m.registry.MustRegister(
		m.decisions, m.orders, m.closes, m.errors,
		collectors.NewGoCollector(),
	)

	return m
}

func (m *Metrics) DecisionEvaluated(symbol string, decision models.Decision) {
	m.decisions.WithLabelValues(symbol, string(decision)).Inc()
}

func (m *Metrics) OrderPlaced(symbol, side string) {
	m.orders.WithLabelValues(symbol, side).Inc()
}

func (m *Metrics) PositionClosed(symbol string) {
	m.closes.WithLabelValues(symbol).Inc()
}

func (m *Metrics) TradeError(op string) {
	m.errors.WithLabelValues(op).Inc()
}

// RegisterTrackedGauge вешает gauge текущего числа отслеживаемых позиций.
func (m *Metrics) RegisterTrackedGauge(count func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "signal_bot_tracked_positions",
		Help: "Positions currently watched by the monitor.",
	}, func() float64 { return float64(count()) }))
}

// Handler — /metrics для админского mux.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
