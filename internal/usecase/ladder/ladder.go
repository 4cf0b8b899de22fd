package ladder

import (
	"fmt"

	exchangev1 "github.com/swturbo14/lobSimulations/internal/domain/exchange/v1"
	orderv1 "github.com/swturbo14/lobSimulations/internal/domain/order/v1"
)

// Ladder is one side of the book: a fixed-size ordered array of exactly
// depth active levels, index 0 nearest to the market. Shifting is index
// arithmetic on this array, so a level can never end up keyed under the
// wrong side.
type Ladder struct {
	side   orderv1.Side
	levels []*Level
}

// New creates a ladder from nearest-to-market-first levels. len(levels) is
// the fixed depth for the lifetime of the ladder.
func New(side orderv1.Side, levels []*Level) (*Ladder, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: ladder needs at least one level", exchangev1.ErrLOBProcessing)
	}
	for i := 1; i < len(levels); i++ {
		if !side.BetterThan(levels[i-1].Price, levels[i].Price) {
			return nil, fmt.Errorf("%w: %s levels out of order", exchangev1.ErrLOBProcessing, side)
		}
	}
	return &Ladder{side: side, levels: levels}, nil
}

// Side returns which half of the book this ladder holds.
func (l *Ladder) Side() orderv1.Side {
	return l.side
}

// Depth returns the fixed number of active levels.
func (l *Ladder) Depth() int {
	return len(l.levels)
}

// Best returns the side's best price (level 1).
func (l *Ladder) Best() orderv1.Price {
	return l.levels[0].Price
}

// Level returns the i-th level, 0-based from the market.
func (l *Ladder) Level(i int) *Level {
	return l.levels[i]
}

// Label returns the name of the i-th level (0-based i gives L{i+1}).
func (l *Ladder) Label(i int) orderv1.Label {
	return orderv1.Label{Side: l.side, Index: i + 1}
}

// FindPrice returns the index of the active level at price p.
func (l *Ladder) FindPrice(p orderv1.Price) (int, bool) {
	for i, lvl := range l.levels {
		if lvl.Price == p {
			return i, true
		}
	}
	return 0, false
}

// InSpreadPrice returns the only admissible in-spread price on this side:
// exactly one tick better than the current best.
func (l *Ladder) InSpreadPrice() orderv1.Price {
	return l.side.Improve(l.Best())
}

// ShiftIn runs the level-shift protocol for an in-spread order: the deepest
// level is evicted, every remaining level moves one slot deeper, and a new
// level 1 is created at o's price with o as its sole entry. The evicted
// orders are returned for the exchange to cancel; the ladder itself never
// touches the registry or the dispatcher.
func (l *Ladder) ShiftIn(o *orderv1.Order) []*orderv1.Order {
	deepest := l.levels[len(l.levels)-1]
	evicted := deepest.Orders()

	copy(l.levels[1:], l.levels[:len(l.levels)-1])

	d, _ := o.LimitDetail()
	l.levels[0] = NewLevel(d.Price, []*orderv1.Order{o})

	return evicted
}

// FirstEmpty returns the index of the shallowest depleted level.
func (l *Ladder) FirstEmpty() (int, bool) {
	for i, lvl := range l.levels {
		if lvl.Empty() {
			return i, true
		}
	}
	return 0, false
}

// Replenish removes the depleted level at idx, shifts every deeper level
// one slot shallower and recreates the deepest level at exactly one tick
// worse than its now-adjacent shallower neighbour, with a queue produced by
// regen. The regenerated level keeps the ladder at its fixed depth.
func (l *Ladder) Replenish(idx int, regen func(label orderv1.Label, price orderv1.Price) []*orderv1.Order) error {
	if idx < 0 || idx >= len(l.levels) {
		return fmt.Errorf("%w: replenish index %d out of range", exchangev1.ErrLOBProcessing, idx)
	}
	if !l.levels[idx].Empty() {
		return fmt.Errorf("%w: replenish on non-empty level %s", exchangev1.ErrLOBProcessing, l.Label(idx))
	}

	copy(l.levels[idx:], l.levels[idx+1:])

	deepest := len(l.levels) - 1
	var price orderv1.Price
	if deepest == 0 {
		// depth-1 ladder: regenerate in place one tick worse than the old price
		price = l.side.Worsen(l.levels[0].Price)
	} else {
		price = l.side.Worsen(l.levels[deepest-1].Price)
	}
	label := l.Label(deepest)
	l.levels[deepest] = NewLevel(price, regen(label, price))

	return nil
}

// TotalVolume returns the resting size across all levels.
func (l *Ladder) TotalVolume() int64 {
	var total int64
	for _, lvl := range l.levels {
		total += lvl.Aggregate()
	}
	return total
}

// Validate checks the side's structural invariants: the best price is the
// level-1 price, levels are strictly ordered best-first (which also rules
// out duplicate prices) and the depth is intact.
func (l *Ladder) Validate() error {
	for i, lvl := range l.levels {
		if lvl == nil {
			return fmt.Errorf("%w: %s level %d missing", exchangev1.ErrLOBProcessing, l.side, i+1)
		}
		if i > 0 && !l.side.BetterThan(l.levels[i-1].Price, lvl.Price) {
			return fmt.Errorf("%w: %s levels out of order at %s", exchangev1.ErrLOBProcessing, l.side, l.Label(i))
		}
		if l.side.BetterThan(lvl.Price, l.Best()) {
			return fmt.Errorf("%w: %s best price is not the extreme", exchangev1.ErrLOBProcessing, l.side)
		}
	}
	return nil
}
