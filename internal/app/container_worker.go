package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"github.com/dankdash1/dispatch-service/internal/config"
	"github.com/dankdash1/dispatch-service/internal/logx"
	"github.com/dankdash1/dispatch-service/internal/metrics"
	"github.com/dankdash1/dispatch-service/internal/service/dispatch"
	"github.com/dankdash1/dispatch-service/internal/service/orders"
	"github.com/dankdash1/dispatch-service/internal/transport/kafka"
)

// MustBuildWorkerContainer builds the DI container for the order-events worker
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

// MustBuildWorker builds and returns a new dig container for the worker
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerNotify(container); err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func() *prometheus.CounterVec {
			return registerCollector(metrics.NewOrderEventsTotal())
		},
		func(svc *dispatch.Service, logger logx.Logger) *orders.Processor {
			return orders.NewProcessor(svc, logger)
		},
		makeOrderEventsHandler,
		func(cfg *config.Config, logger logx.Logger, h kafka.HandleFunc) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h)
		},
	)
}

// makeOrderEventsHandler counts every consumed event by outcome before the
// consumer commits it.
func makeOrderEventsHandler(p *orders.Processor, events *prometheus.CounterVec) kafka.HandleFunc {
	return func(ctx context.Context, event orders.Event) error {
		if err := p.Handle(ctx, event); err != nil {
			events.WithLabelValues("error").Inc()
			return err
		}
		events.WithLabelValues("ok").Inc()
		return nil
	}
}
