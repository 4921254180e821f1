// Package metrics defines the Prometheus instrumentation for the service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RegistrationsTotal counts successful user registrations.
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitledger_registrations_total",
		Help: "Number of successful user registrations.",
	})

	// LoginsTotal counts login attempts by outcome.
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitledger_logins_total",
		Help: "Number of login attempts by outcome.",
	}, []string{"outcome"})

	// GroupsCreatedTotal counts created groups.
	GroupsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitledger_groups_created_total",
		Help: "Number of groups created.",
	})

	// ExpensesCreatedTotal counts recorded expenses by split kind.
	ExpensesCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitledger_expenses_created_total",
		Help: "Number of expenses recorded by split kind.",
	}, []string{"split"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "splitledger_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Instrument returns middleware that records request durations.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		requestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}
