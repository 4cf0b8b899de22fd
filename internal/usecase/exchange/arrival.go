package exchange

import (
	"fmt"

	arrivalv1 "github.com/swturbo14/lobSimulations/internal/domain/arrival/v1"
	exchangev1 "github.com/swturbo14/lobSimulations/internal/domain/exchange/v1"
	orderv1 "github.com/swturbo14/lobSimulations/internal/domain/order/v1"
)

// NextArrival pulls one unit of synthetic flow, turns it into a concrete
// priced order against the current book and processes it. The boolean is
// false once the flow model is exhausted.
func (e *Exchange) NextArrival() (bool, error) {
	arr, ok := e.flow.NextArrival()
	if !ok {
		return false, nil
	}

	o, err := e.orderFromArrival(arr)
	if err != nil {
		return true, err
	}
	return true, e.ProcessOrder(o)
}

// orderFromArrival resolves an arrival's level reference against the live
// ladder. Prices are resolved at arrival time, so the same flow stream
// produces different books depending on what traded before.
func (e *Exchange) orderFromArrival(arr arrivalv1.Arrival) (*orderv1.Order, error) {
	switch arr.Kind {
	case arrivalv1.KindLimit:
		lad := e.book(arr.Side)
		if arr.InSpread {
			// with no room to improve, the flow joins the best queue instead
			price := lad.InSpreadPrice()
			if e.spreadTicks() <= 1 {
				price = lad.Best()
			}
			return orderv1.NewLimit(arr.Time, arr.Side, arr.Size, e.cfg.Symbol, orderv1.Anonymous, price, lad.Label(0)), nil
		}
		if arr.Level.Index < 1 || arr.Level.Index > lad.Depth() {
			return nil, fmt.Errorf("%w: arrival level %s out of range", exchangev1.ErrInvalidOrderType, arr.Level)
		}
		price := lad.Level(arr.Level.Index - 1).Price
		return orderv1.NewLimit(arr.Time, arr.Side, arr.Size, e.cfg.Symbol, orderv1.Anonymous, price, arr.Level), nil

	case arrivalv1.KindMarket:
		return orderv1.NewMarket(arr.Time, arr.Side, arr.Size, e.cfg.Symbol, orderv1.Anonymous), nil

	case arrivalv1.KindCancel:
		return orderv1.NewLevelCancel(arr.Time, arr.Side, e.cfg.Symbol, arr.Level), nil

	default:
		return nil, fmt.Errorf("%w: arrival kind %q", exchangev1.ErrInvalidOrderType, arr.Kind)
	}
}
