// Package metrics holds the Prometheus collectors of the point of sale.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
)

var (
	SalesCommitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_sales_committed_total",
			Help: "Committed sales by payment status",
		},
		[]string{"status"},
	)

	SaleCommitFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_sale_commit_failures_total",
			Help: "Sale commits rolled back after a storage failure",
		},
	)

	SalesRevenue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_sales_revenue_total",
			Help: "Committed sale totals by payment status",
		},
		[]string{"status"},
	)

	DebtSettlements = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_debt_settlements_total",
			Help: "Pending sales moved to paid by debt settlement",
		},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)
)

// NewRegistry returns a registry with every collector of this package plus
// the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		SalesCommitted,
		SaleCommitFailures,
		SalesRevenue,
		DebtSettlements,
		HTTPRequestsTotal,
		HTTPRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ObserveSale records a committed sale.
func ObserveSale(status string, total decimal.Decimal) {
	SalesCommitted.WithLabelValues(status).Inc()
	SalesRevenue.WithLabelValues(status).Add(total.InexactFloat64())
}

// Middleware counts and times every request handled by a Fiber app.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		path := c.Route().Path
		if path == "" {
			path = "undefined"
		}

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		HTTPRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
		return err
	}
}
