package orders

import (
	"context"

	"github.com/dankdash1/dispatch-service/internal/domain"
)

// DispatchPort abstracts the subset of dispatch operations needed by
// the orders Processor when handling order events.
type DispatchPort interface {
	AutoAssign(ctx context.Context, orderID int64) (domain.AssignResult, error)
	CancelByOrder(ctx context.Context, orderID int64) error
}
