package exchange

import (
	"fmt"

	exchangev1 "github.com/swturbo14/lobSimulations/internal/domain/exchange/v1"
	orderv1 "github.com/swturbo14/lobSimulations/internal/domain/order/v1"
)

// processMarket walks the opposite side from the best level in price-time
// priority, replenishing each level it depletes. The aggressor is filled at
// the size-weighted average of its executions.
func (e *Exchange) processMarket(o *orderv1.Order) error {
	md, _ := o.MarketDetail()
	if o.Size <= 0 {
		return fmt.Errorf("%w: market order with size %d", exchangev1.ErrInvalidOrderType, o.Size)
	}

	opp := e.book(o.Side.Opposite())
	if o.Size > opp.TotalVolume() {
		return fmt.Errorf("%w: size %d exceeds %s resting volume %d",
			exchangev1.ErrInsufficientLiquidity, o.Size, opp.Side(), opp.TotalVolume())
	}

	remaining := o.Size
	for remaining > 0 {
		best := opp.Level(0)
		if best.Empty() {
			if err := e.replenish(); err != nil {
				return err
			}
			continue
		}

		head := best.Head()
		price := best.Price.Value(e.cfg.TickSize)

		if head.Size > remaining {
			head.Size -= remaining
			head.Status = orderv1.StatusPartiallyFilled
			md.Notional += float64(remaining) * price
			remaining = 0

			if !head.IsAnonymous() {
				notice := exchangev1.PartialFill{OrderID: head.ID, Remaining: head.Size, FillPrice: price}
				if err := e.dispatcher.Send(e.clock, head.Owner, notice); err != nil {
					return err
				}
			}
			continue
		}

		best.Pop()
		md.Notional += float64(head.Size) * price
		remaining -= head.Size

		if err := e.registry.MarkTerminal(head.ID, orderv1.StatusFilled, price, e.clock); err != nil {
			return err
		}
		if !head.IsAnonymous() {
			notice := exchangev1.OrderExecuted{OrderID: head.ID, FillPrice: price, FillTime: e.clock}
			if err := e.dispatcher.Send(e.clock, head.Owner, notice); err != nil {
				return err
			}
		}
	}

	if best := opp.Level(0); best.Empty() {
		if err := e.replenish(); err != nil {
			return err
		}
	}

	avg := md.Notional / float64(o.Size)
	if err := e.registry.MarkTerminal(o.ID, orderv1.StatusFilled, avg, e.clock); err != nil {
		return err
	}
	e.trades++

	if !o.IsAnonymous() {
		notice := exchangev1.OrderExecuted{OrderID: o.ID, FillPrice: avg, FillTime: e.clock}
		if err := e.dispatcher.Send(e.clock, o.Owner, notice); err != nil {
			return err
		}
	}
	return nil
}
