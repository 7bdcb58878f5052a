package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"github.com/dankdash1/dispatch-service/internal/config"
	"github.com/dankdash1/dispatch-service/internal/geocode"
	"github.com/dankdash1/dispatch-service/internal/http/handlers"
	"github.com/dankdash1/dispatch-service/internal/http/router"
	"github.com/dankdash1/dispatch-service/internal/logx"
	"github.com/dankdash1/dispatch-service/internal/notify"
	"github.com/dankdash1/dispatch-service/internal/repository"
	"github.com/dankdash1/dispatch-service/internal/service/dispatch"
	"github.com/dankdash1/dispatch-service/internal/service/driver"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
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
	if err := registerRateLimit(container); err != nil {
		return nil, fmt.Errorf("ratelimit: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

type dispatchServiceIn struct {
	dig.In

	Repo     *repository.DeliveryRepo
	Drivers  *repository.DriverRepo
	Geocoder geocode.Resolver
	ETA      dispatch.ETAFactory
	Gateway  *notify.Gateway
	Assigned prometheus.Counter `name:"assignments_total"`
	Failed   prometheus.Counter `name:"assignment_failures_total"`
	Cfg      *config.Config
	Logger   logx.Logger
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewDeliveryRepo,
		repository.NewDriverRepo,
		func() time.Duration { return 3 * time.Second },
		func(repo *repository.DriverRepo, timeout time.Duration) *driver.Service {
			return driver.NewService(repo, timeout)
		},
		func(cfg *config.Config) geocode.Resolver {
			return geocode.NewStaticResolver(cfg.Dispatch.GeocodeFallback)
		},
		func(cfg *config.Config) dispatch.ETAFactory {
			return dispatch.NewETAFactory(cfg.Dispatch.ETABase, cfg.Dispatch.ETAPerMile)
		},
		func(in dispatchServiceIn) *dispatch.Service {
			settings := dispatch.Settings{
				SearchRadiusMiles: in.Cfg.Dispatch.SearchRadiusMiles,
				StoreLocation:     in.Cfg.Dispatch.StoreLocation,
				AvgDeliveryFloor:  in.Cfg.Dispatch.AvgDeliveryFloor,
				OperationTimeout:  in.Cfg.Dispatch.OperationTimeout,
			}
			return dispatch.NewService(
				in.Repo,
				in.Drivers,
				in.Geocoder,
				in.ETA,
				in.Gateway,
				in.Assigned,
				in.Failed,
				settings,
				in.Logger,
			)
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewDriverUsecase,
		handlers.NewDriverHandler,
		handlers.NewDispatchUsecase,
		handlers.NewDispatchHandler,
		router.New,
		serverProvider,
	)
}
