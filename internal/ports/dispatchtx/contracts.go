package dispatchtx

import (
	"context"
	"time"

	"github.com/dankdash1/dispatch-service/internal/domain"
)

// Repository is the set of storage operations available inside one
// dispatch transaction. Every mutation of driver status, assignment
// state and order dispatch fields goes through here so an operation
// commits or rolls back as a single unit.
type Repository interface {
	// orders (consumed, not owned)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	SetOrderDispatch(ctx context.Context, orderID int64, status domain.FulfillmentStatus, driverID *int64, eta *time.Time) error

	// delivery assignments
	GetAssignment(ctx context.Context, id int64) (*domain.Delivery, error)
	GetOpenByOrderID(ctx context.Context, orderID int64) (*domain.Delivery, error)
	UpsertAssignment(ctx context.Context, d *domain.Delivery) error
	UpdateAssignment(ctx context.Context, d *domain.Delivery) error

	// delivery partners
	GetDriver(ctx context.Context, id int64) (*domain.Driver, error)
	ListAvailableDrivers(ctx context.Context) ([]domain.Driver, error)
	// ClaimDriver flips a driver to busy only if they are still
	// available (compare-and-swap); false means somebody else won.
	ClaimDriver(ctx context.Context, id int64) (bool, error)
	// ReleaseDriver returns a driver to the pool; completed also
	// increments their delivery counter.
	ReleaseDriver(ctx context.Context, id int64, completed bool) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
