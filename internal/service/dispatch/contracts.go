package dispatch

import (
	"context"
	"time"

	"github.com/dankdash1/dispatch-service/internal/domain"
	"github.com/dankdash1/dispatch-service/internal/ports/dispatchtx"
)

// dispatchRepository abstracts the transactional storage used by the
// orchestrator plus the read-only aggregates.
type dispatchRepository interface {
	WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error
	Stats(ctx context.Context, since time.Time) (domain.AssignmentCounts, error)
}

// driverDirectory is the read/check-in view onto partner storage. The
// core does not own partner lifecycle; onboarding lives elsewhere.
type driverDirectory interface {
	ListAvailable(ctx context.Context) ([]domain.Driver, error)
	UpdateLocation(ctx context.Context, id int64, c domain.Coordinate) (bool, error)
	Counts(ctx context.Context) (domain.DriverCounts, error)
}

// notifier delivers best-effort messages; implementations never fail
// the dispatch operation.
type notifier interface {
	AssignmentCreated(ctx context.Context, order domain.Order, driver domain.Driver, eta time.Time)
	StatusChanged(ctx context.Context, order domain.Order, driver *domain.Driver, d domain.Delivery)
}

type counter interface {
	Inc()
}
