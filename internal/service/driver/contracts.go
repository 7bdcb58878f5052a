package driver

import (
	"context"

	"github.com/dankdash1/dispatch-service/internal/domain"
)

// driverRepository defines storage operations required by the business layer.
type driverRepository interface {
	Get(ctx context.Context, id int64) (*domain.Driver, error)
	List(ctx context.Context, limit, offset *int) ([]domain.Driver, error)
	Create(ctx context.Context, d *domain.Driver) (int64, error)
	UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error)
}
