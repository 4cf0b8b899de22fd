package exchange

import (
	"fmt"

	exchangev1 "github.com/swturbo14/lobSimulations/internal/domain/exchange/v1"
	orderv1 "github.com/swturbo14/lobSimulations/internal/domain/order/v1"
)

// processLimit rests a limit order: appended to the active level at its
// price, or installed as a new best via the level-shift protocol when it
// improves the best by exactly one tick. Any other price is rejected.
func (e *Exchange) processLimit(o *orderv1.Order) error {
	d, _ := o.LimitDetail()
	if o.Size <= 0 {
		return fmt.Errorf("%w: limit order with size %d", exchangev1.ErrInvalidOrderType, o.Size)
	}

	lad := e.book(o.Side)

	if idx, ok := lad.FindPrice(d.Price); ok {
		d.Level = lad.Label(idx)
		lad.Level(idx).Append(o)
		o.Status = orderv1.StatusResting
		return nil
	}

	// an in-spread price must stay strictly between the bests; at a one tick
	// spread there is no room to improve
	if d.Price != lad.InSpreadPrice() || e.spreadTicks() <= 1 {
		return fmt.Errorf("%w: %s price %d matches no level and is not one tick in-spread",
			exchangev1.ErrInvalidPrice, o.Side, d.Price)
	}

	evicted := lad.ShiftIn(o)
	d.Level = lad.Label(0)
	o.Status = orderv1.StatusResting

	for _, ev := range evicted {
		if err := e.registry.MarkTerminal(ev.ID, orderv1.StatusCancelled, 0, e.clock); err != nil {
			return err
		}
		if ev.IsAnonymous() {
			continue
		}
		if err := e.dispatcher.Send(e.clock, ev.Owner, exchangev1.OrderAutoCancelled{OrderID: ev.ID}); err != nil {
			return err
		}
	}
	return nil
}
