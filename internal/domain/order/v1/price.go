package orderv1

import "math"

// Price is a price expressed as a tick index. All ladder arithmetic (one
// tick better, one tick worse) is integer math on this type; the float
// price exists only at the snapshot/notional edges.
type Price int64

// PriceFromValue converts a float price onto the tick grid.
func PriceFromValue(value, tickSize float64) Price {
	return Price(math.Round(value / tickSize))
}

// Value converts the tick index back to a float price.
func (p Price) Value(tickSize float64) float64 {
	return float64(p) * tickSize
}

// Improve moves p one tick toward the market on side s: down for asks,
// up for bids.
func (s Side) Improve(p Price) Price {
	if s == SideAsk {
		return p - 1
	}
	return p + 1
}

// Worsen moves p one tick away from the market on side s.
func (s Side) Worsen(p Price) Price {
	if s == SideAsk {
		return p + 1
	}
	return p - 1
}

// BetterThan reports whether a is closer to the market than b on side s.
func (s Side) BetterThan(a, b Price) bool {
	if s == SideAsk {
		return a < b
	}
	return a > b
}
