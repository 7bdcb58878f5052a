package orders

import (
	"context"
	"errors"

	"github.com/dankdash1/dispatch-service/internal/apperr"
	"github.com/dankdash1/dispatch-service/internal/logx"
	"github.com/dankdash1/dispatch-service/internal/service/dispatch"
)

// Processor reacts to order events by driving the dispatch engine.
// Business rejections (no drivers, duplicate assignment, non-delivery
// orders) are terminal for the event: retrying the same message cannot
// change the outcome, so they are logged and absorbed.
type Processor struct {
	dispatch DispatchPort
	factory  *actionFactory
	logger   logx.Logger
}

// NewProcessor creates a new orders.Processor
func NewProcessor(dispatchSvc DispatchPort, logger logx.Logger) *Processor {
	p := &Processor{
		dispatch: dispatchSvc,
		logger:   logger,
	}
	p.factory = newActionFactory(p.onConfirmed, p.onCanceled)
	return p
}

// Handle processes a single orders.Event
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onConfirmed(ctx context.Context, e Event) error {
	_, err := p.dispatch.AutoAssign(ctx, e.OrderID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, dispatch.ErrAlreadyAssigned),
		errors.Is(err, dispatch.ErrNotDelivery),
		errors.Is(err, apperr.ErrNotFound):
		return nil
	case errors.Is(err, dispatch.ErrNoDrivers):
		p.logger.Warn("no drivers for confirmed order", logx.Int64("order_id", e.OrderID))
		return nil
	default:
		return err
	}
}

func (p *Processor) onCanceled(ctx context.Context, e Event) error {
	err := p.dispatch.CancelByOrder(ctx, e.OrderID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	return err
}
