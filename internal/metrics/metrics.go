// Package metrics exposes cycle, signal and order counters to Prometheus.
package metrics

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"TradeSentinel/internal/model"
)

// Metrics holds all Prometheus metrics for the bot.
type Metrics struct {
	CyclesTotal          *prometheus.CounterVec // labels: outcome=ok|gather_error|...
	SignalsTotal         *prometheus.CounterVec // labels: action
	OrdersTotal          *prometheus.CounterVec // labels: side, status
	CycleDuration        prometheus.Histogram
	PortfolioValue       prometheus.Gauge
	IndicatorErrorsTotal prometheus.Counter
	TradesSettledTotal   *prometheus.CounterVec // labels: result
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CyclesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_cycles_total",
			Help: "Evaluation cycles by outcome",
		}, []string{"outcome"}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_signals_total",
			Help: "Signals emitted by action",
		}, []string{"action"}),
		OrdersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_orders_total",
			Help: "Orders submitted by side and status",
		}, []string{"side", "status"}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sentinel_cycle_duration_seconds",
			Help:    "Wall time of one evaluation cycle",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		PortfolioValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_portfolio_value",
			Help: "Portfolio value in the quote currency at the last evaluation",
		}),
		IndicatorErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_indicator_errors_total",
			Help: "Indicator and sizing failures recorded in evaluations",
		}),
		TradesSettledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_trades_settled_total",
			Help: "Trades settled by the auditor by result",
		}, []string{"result"}),
	}
	reg.MustRegister(
		m.CyclesTotal,
		m.SignalsTotal,
		m.OrdersTotal,
		m.CycleDuration,
		m.PortfolioValue,
		m.IndicatorErrorsTotal,
		m.TradesSettledTotal,
	)
	return m
}

// ObserveEvaluation records the signal, portfolio value, errors and order
// receipts of a finished evaluation.
func (m *Metrics) ObserveEvaluation(ev *model.Evaluation) {
	m.SignalsTotal.WithLabelValues(string(ev.Signal)).Inc()
	m.IndicatorErrorsTotal.Add(float64(len(ev.Errors)))
	if ev.PortfolioState != nil {
		m.PortfolioValue.Set(ev.PortfolioState.TotalValue.InexactFloat64())
	}
	if ev.Trade == nil {
		return
	}
	for i, r := range ev.Trade.OrderReceipts {
		side := ""
		if i < len(ev.Trade.OrderParams) {
			side = string(ev.Trade.OrderParams[i].Side)
		}
		status := "ok"
		if !r.Success {
			status = "failed"
		}
		m.OrdersTotal.WithLabelValues(side, status).Inc()
	}
}

// HealthStatus tracks the outcome of the most recent cycle.
type HealthStatus struct {
	mu          sync.RWMutex
	LastCycleAt time.Time
	LastOutcome string
	LastError   string
	StartedAt   time.Time
}

// NewHealthStatus returns a default health status.
func NewHealthStatus() *HealthStatus {
	return &HealthStatus{StartedAt: time.Now()}
}

// RecordCycle stores the outcome of a finished cycle.
func (h *HealthStatus) RecordCycle(outcome string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastCycleAt = time.Now()
	h.LastOutcome = outcome
	h.LastError = ""
	if err != nil {
		h.LastError = err.Error()
	}
}

// ServeHTTP handles the /healthz endpoint. The bot is degraded while the last
// cycle failed.
func (h *HealthStatus) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	overallStatus := "healthy"
	httpCode := http.StatusOK
	if h.LastError != "" {
		overallStatus = "degraded"
		httpCode = http.StatusServiceUnavailable
	}

	lastCycle := ""
	if !h.LastCycleAt.IsZero() {
		lastCycle = h.LastCycleAt.Format(time.RFC3339)
	}
	status := struct {
		Status      string `json:"status"`
		Uptime      string `json:"uptime"`
		LastCycleAt string `json:"last_cycle_at"`
		LastOutcome string `json:"last_outcome"`
		LastError   string `json:"last_error,omitempty"`
	}{
		Status:      overallStatus,
		Uptime:      time.Since(h.StartedAt).Round(time.Second).String(),
		LastCycleAt: lastCycle,
		LastOutcome: h.LastOutcome,
		LastError:   h.LastError,
	}

	w.Header().Set("Content-Type", "application/json")
	if httpCode != http.StatusOK {
		w.WriteHeader(httpCode)
	}
	json.NewEncoder(w).Encode(status)
}

// Server runs an HTTP server exposing /metrics and /healthz.
type Server struct {
	addr string
	srv  *http.Server
}

// NewServer creates a metrics and health server serving metrics from gatherer.
func NewServer(addr string, gatherer prometheus.Gatherer, health *HealthStatus) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.Handle("/healthz", health)

	return &Server{
		addr: addr,
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start launches the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		log.Printf("[INFO] metrics server listening on %s", s.addr)
		if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("[ERROR] metrics server: %v", err)
		}
	}()
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
