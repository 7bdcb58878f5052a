package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewAssignmentsTotal returns a Prometheus counter for successful driver assignments
func NewAssignmentsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_assignments_total",
		Help: "Total number of successful driver auto-assignments",
	})
}

// NewAssignmentFailuresTotal returns a Prometheus counter for rejected auto-assignments
func NewAssignmentFailuresTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_assignment_failures_total",
		Help: "Total number of auto-assignments rejected by business rules",
	})
}

// NewNotificationFailuresTotal returns a Prometheus counter for swallowed notification errors
func NewNotificationFailuresTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_notification_failures_total",
		Help: "Total number of notification sends that failed and were dropped",
	})
}

// NewRateLimitExceededTotal returns a Prometheus counter for requests rejected by the per-client throttle
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_rate_limit_exceeded_total",
		Help: "Total number of HTTP requests rejected by the rate limiter",
	})
}

// NewOrderEventsTotal returns a Prometheus counter vector for consumed order events by outcome
func NewOrderEventsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_order_events_total",
		Help: "Total number of order events consumed by the worker",
	}, []string{"outcome"})
}
