package app

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"github.com/dankdash1/dispatch-service/internal/metrics"
)

type countersOut struct {
	dig.Out

	Assigned     prometheus.Counter `name:"assignments_total"`
	Failed       prometheus.Counter `name:"assignment_failures_total"`
	NotifyFailed prometheus.Counter `name:"notification_failures_total"`
	RateLimited  prometheus.Counter `name:"rate_limit_exceeded_total"`
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container,
		func() countersOut {
			return countersOut{
				Assigned:     registerCollector(metrics.NewAssignmentsTotal()),
				Failed:       registerCollector(metrics.NewAssignmentFailuresTotal()),
				NotifyFailed: registerCollector(metrics.NewNotificationFailuresTotal()),
				RateLimited:  registerCollector(metrics.NewRateLimitExceededTotal()),
			}
		},
	)
}

// registerCollector registers c with the default registry; a collector
// already registered (containers get rebuilt in tests) is reused as is.
func registerCollector[C prometheus.Collector](c C) C {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}
