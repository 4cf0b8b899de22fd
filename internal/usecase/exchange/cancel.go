package exchange

import (
	"fmt"

	exchangev1 "github.com/swturbo14/lobSimulations/internal/domain/exchange/v1"
	orderv1 "github.com/swturbo14/lobSimulations/internal/domain/order/v1"
	"github.com/swturbo14/lobSimulations/pkg/logger"
)

// processCancel removes a resting order. Anonymous flow cancels target one
// random synthetic order at a level; agent cancels target an order id they
// own and are acknowledged with an execution notice.
func (e *Exchange) processCancel(o *orderv1.Order) error {
	d, _ := o.CancelDetail()
	if d.TargetID == 0 {
		return e.cancelAtLevel(o, d)
	}
	return e.cancelByID(o, d)
}

// cancelAtLevel picks one anonymous resting order at the targeted level
// uniformly at random. A level with no anonymous orders makes the cancel a
// no-op: agent orders are never touched by synthetic cancels.
func (e *Exchange) cancelAtLevel(o *orderv1.Order, d *orderv1.CancelDetail) error {
	lad := e.book(d.Level.Side)
	if d.Level.Index < 1 || d.Level.Index > lad.Depth() {
		return fmt.Errorf("%w: cancel level %s out of range", exchangev1.ErrInvalidOrderType, d.Level)
	}
	lvl := lad.Level(d.Level.Index - 1)

	ids := lvl.AnonymousOrders()
	if len(ids) == 0 {
		e.log.Debug("anonymous cancel found no target",
			logger.Field{Key: "level", Value: d.Level.String()},
			logger.Field{Key: "time", Value: e.clock},
		)
		return e.registry.MarkTerminal(o.ID, orderv1.StatusCancelled, 0, e.clock)
	}

	pick := ids[e.rng.Intn(len(ids))]
	target, _ := lvl.Remove(pick)
	if err := e.registry.MarkTerminal(target.ID, orderv1.StatusCancelled, 0, e.clock); err != nil {
		return err
	}

	if lvl.Empty() {
		if err := e.replenish(); err != nil {
			return err
		}
	}
	return e.registry.MarkTerminal(o.ID, orderv1.StatusFilled, 0, e.clock)
}

// cancelByID applies an agent's cancel of its own resting order and sends
// the acknowledgement.
func (e *Exchange) cancelByID(o *orderv1.Order, d *orderv1.CancelDetail) error {
	target, err := e.registry.Lookup(d.TargetID)
	if err != nil {
		return fmt.Errorf("%w: id %d", exchangev1.ErrCancelTargetNotFound, d.TargetID)
	}
	if !e.dispatcher.Has(o.Owner) {
		return fmt.Errorf("%w: %s", exchangev1.ErrAgentNotFound, o.Owner)
	}
	if target.Owner != o.Owner {
		return fmt.Errorf("%w: order %d belongs to %s, cancel from %s",
			exchangev1.ErrCancelOwnershipMismatch, target.ID, target.Owner, o.Owner)
	}

	td, ok := target.LimitDetail()
	if !ok || target.Status.Terminal() {
		return fmt.Errorf("%w: order %d is not resting", exchangev1.ErrCancelTargetNotFound, target.ID)
	}

	lad := e.book(target.Side)
	idx, ok := lad.FindPrice(td.Price)
	if !ok {
		return fmt.Errorf("%w: order %d price no longer active", exchangev1.ErrCancelTargetNotFound, target.ID)
	}
	lvl := lad.Level(idx)
	if _, ok := lvl.Remove(target.ID); !ok {
		return fmt.Errorf("%w: order %d not resting at %s", exchangev1.ErrCancelTargetNotFound, target.ID, lad.Label(idx))
	}
	d.Level = lad.Label(idx)

	if err := e.registry.MarkTerminal(target.ID, orderv1.StatusCancelled, 0, e.clock); err != nil {
		return err
	}
	if lvl.Empty() {
		if err := e.replenish(); err != nil {
			return err
		}
	}
	if err := e.registry.MarkTerminal(o.ID, orderv1.StatusFilled, 0, e.clock); err != nil {
		return err
	}

	ack := exchangev1.OrderExecuted{OrderID: o.ID, FillTime: e.clock}
	return e.dispatcher.Send(e.clock, o.Owner, ack)
}
