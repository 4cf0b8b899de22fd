package exchange

import (
	"fmt"
	"math/rand"

	arrivalv1 "github.com/swturbo14/lobSimulations/internal/domain/arrival/v1"
	exchangev1 "github.com/swturbo14/lobSimulations/internal/domain/exchange/v1"
	historyv1 "github.com/swturbo14/lobSimulations/internal/domain/history/v1"
	orderv1 "github.com/swturbo14/lobSimulations/internal/domain/order/v1"
	"github.com/swturbo14/lobSimulations/internal/usecase/dispatch"
	"github.com/swturbo14/lobSimulations/internal/usecase/ladder"
	"github.com/swturbo14/lobSimulations/internal/usecase/registry"
	"github.com/swturbo14/lobSimulations/pkg/logger"
)

// Config parameterises one exchange instance.
type Config struct {
	Symbol             string
	TickSize           float64
	Levels             int
	InitialMid         float64
	InitialSpreadTicks int64
	OrdersPerLevel     int
	Seed               int64
}

// Exchange is the single-symbol matching venue: two fixed-depth ladders, a
// registry of order records, synthetic flow, agent notifications and the
// snapshot history. It is single-threaded; one order is fully processed
// before the next arrives.
type Exchange struct {
	cfg Config
	log *logger.Logger

	registry   *registry.Registry
	asks       *ladder.Ladder
	bids       *ladder.Ladder
	flow       arrivalv1.Model
	dispatcher *dispatch.Dispatcher
	recorder   historyv1.Recorder

	// anonymous-cancel target selection
	rng *rand.Rand

	clock     float64
	seq       int64
	processed int64
	trades    int64
}

// New creates an exchange. Call InitializeBook before processing orders.
func New(cfg Config, log *logger.Logger, flow arrivalv1.Model, dispatcher *dispatch.Dispatcher, recorder historyv1.Recorder) *Exchange {
	return &Exchange{
		cfg:        cfg,
		log:        log,
		registry:   registry.New(),
		flow:       flow,
		dispatcher: dispatcher,
		recorder:   recorder,
		rng:        rand.New(rand.NewSource(cfg.Seed)),
	}
}

// InitializeBook seeds both ladders around the configured mid price, fills
// every level with synthetic resting orders and announces the session start.
func (e *Exchange) InitializeBook() error {
	mid := orderv1.PriceFromValue(e.cfg.InitialMid, e.cfg.TickSize)
	askBest := mid + orderv1.Price(e.cfg.InitialSpreadTicks/2)
	bidBest := askBest - orderv1.Price(e.cfg.InitialSpreadTicks)

	var err error
	if e.asks, err = e.seedSide(orderv1.SideAsk, askBest); err != nil {
		return err
	}
	if e.bids, err = e.seedSide(orderv1.SideBid, bidBest); err != nil {
		return err
	}

	if err := e.dispatcher.Broadcast(e.clock, exchangev1.BeginTrading{Time: e.clock}); err != nil {
		return err
	}

	e.recorder.Append(e.snapshot())

	e.log.Info("book initialized",
		logger.Field{Key: "symbol", Value: e.cfg.Symbol},
		logger.Field{Key: "best_ask", Value: askBest.Value(e.cfg.TickSize)},
		logger.Field{Key: "best_bid", Value: bidBest.Value(e.cfg.TickSize)},
		logger.Field{Key: "levels", Value: e.cfg.Levels},
	)
	return nil
}

func (e *Exchange) seedSide(side orderv1.Side, best orderv1.Price) (*ladder.Ladder, error) {
	levels := make([]*ladder.Level, e.cfg.Levels)
	price := best
	for i := range levels {
		label := orderv1.Label{Side: side, Index: i + 1}
		levels[i] = ladder.NewLevel(price, e.mintQueue(side, label, price))
		price = side.Worsen(price)
	}
	return ladder.New(side, levels)
}

// mintQueue creates registered anonymous resting orders for one level from
// the flow model's size draws.
func (e *Exchange) mintQueue(side orderv1.Side, label orderv1.Label, price orderv1.Price) []*orderv1.Order {
	sizes := e.flow.GenerateLevelQueue(label, e.cfg.OrdersPerLevel)
	queue := make([]*orderv1.Order, 0, len(sizes))
	for _, size := range sizes {
		o := orderv1.NewLimit(e.clock, side, size, e.cfg.Symbol, orderv1.Anonymous, price, label)
		e.registry.Create(o)
		o.Status = orderv1.StatusResting
		queue = append(queue, o)
	}
	return queue
}

// ProcessOrder runs one order through the full step: match, feed the flow
// model, validate the book, notify agents and record the snapshot. Any
// returned error leaves the run unusable; callers halt.
func (e *Exchange) ProcessOrder(o *orderv1.Order) error {
	if o.PlacedAt > e.clock {
		e.clock = o.PlacedAt
	}
	if o.ID == 0 {
		e.registry.Create(o)
	}

	prevSpread := e.spreadTicks()
	prevTrades := e.trades

	var err error
	switch o.Detail.(type) {
	case *orderv1.LimitDetail:
		err = e.processLimit(o)
	case *orderv1.MarketDetail:
		err = e.processMarket(o)
	case *orderv1.CancelDetail:
		err = e.processCancel(o)
	default:
		err = fmt.Errorf("%w: %T", exchangev1.ErrInvalidOrderType, o.Detail)
	}
	if err != nil {
		return fmt.Errorf("process order %d: %w", o.ID, err)
	}

	if !o.IsAnonymous() {
		e.flow.RecordEvent(arrivalv1.Event{
			Time:  e.clock,
			Side:  o.Side,
			Kind:  arrivalv1.Kind(o.Kind()),
			Level: orderLevel(o),
			Size:  o.Size,
		})
	}

	if err := e.Validate(); err != nil {
		return err
	}

	// at most one broadcast per order: a spread change preempts the trade
	// notification
	if spread := e.spreadTicks(); spread != prevSpread {
		if err := e.dispatcher.Broadcast(e.clock, exchangev1.SpreadChanged{Spread: e.Spread()}); err != nil {
			return err
		}
	} else if e.trades != prevTrades {
		if err := e.dispatcher.BroadcastTrades(e.clock, exchangev1.TradeOccurred{}); err != nil {
			return err
		}
	}

	e.processed++
	e.recorder.Append(e.snapshot())

	e.log.Debug("order processed",
		logger.Field{Key: "time", Value: e.clock},
		logger.Field{Key: "id", Value: o.ID},
		logger.Field{Key: "kind", Value: o.Kind()},
		logger.Field{Key: "side", Value: o.Side.String()},
		logger.Field{Key: "owner", Value: o.Owner},
		logger.Field{Key: "status", Value: o.Status.String()},
	)
	return nil
}

// book returns the ladder for the given side.
func (e *Exchange) book(side orderv1.Side) *ladder.Ladder {
	if side == orderv1.SideAsk {
		return e.asks
	}
	return e.bids
}

// replenish regenerates the shallowest depleted level, scanning asks before
// bids. At most one level is regenerated per call.
func (e *Exchange) replenish() error {
	for _, lad := range []*ladder.Ladder{e.asks, e.bids} {
		if idx, ok := lad.FirstEmpty(); ok {
			return lad.Replenish(idx, func(label orderv1.Label, price orderv1.Price) []*orderv1.Order {
				return e.mintQueue(lad.Side(), label, price)
			})
		}
	}
	return nil
}

// Validate checks both ladders and the cross-side invariant.
func (e *Exchange) Validate() error {
	if err := e.asks.Validate(); err != nil {
		return err
	}
	if err := e.bids.Validate(); err != nil {
		return err
	}
	if e.asks.Best() <= e.bids.Best() {
		return fmt.Errorf("%w: book crossed, best ask %d <= best bid %d",
			exchangev1.ErrLOBProcessing, e.asks.Best(), e.bids.Best())
	}
	return nil
}

func (e *Exchange) spreadTicks() orderv1.Price {
	return e.asks.Best() - e.bids.Best()
}

// Spread returns best ask minus best bid in price units.
func (e *Exchange) Spread() float64 {
	return e.spreadTicks().Value(e.cfg.TickSize)
}

// Clock returns the exchange's view of simulation time.
func (e *Exchange) Clock() float64 {
	return e.clock
}

// Processed returns the number of successfully processed orders.
func (e *Exchange) Processed() int64 {
	return e.processed
}

// Trades returns the number of executed market orders.
func (e *Exchange) Trades() int64 {
	return e.trades
}

// Asks returns the ask ladder.
func (e *Exchange) Asks() *ladder.Ladder {
	return e.asks
}

// Bids returns the bid ladder.
func (e *Exchange) Bids() *ladder.Ladder {
	return e.bids
}

// Registry returns the order registry.
func (e *Exchange) Registry() *registry.Registry {
	return e.registry
}

func (e *Exchange) snapshot() historyv1.Entry {
	e.seq++
	entry := historyv1.Entry{
		Seq:    e.seq,
		Time:   e.clock,
		Asks:   e.sideSnapshot(e.asks),
		Bids:   e.sideSnapshot(e.bids),
		Spread: e.Spread(),
	}
	return entry
}

func (e *Exchange) sideSnapshot(lad *ladder.Ladder) []historyv1.LevelSnapshot {
	out := make([]historyv1.LevelSnapshot, lad.Depth())
	for i := range out {
		lvl := lad.Level(i)
		out[i] = historyv1.LevelSnapshot{
			Level: lad.Label(i).String(),
			Price: lvl.Price.Value(e.cfg.TickSize),
			Size:  lvl.Aggregate(),
		}
	}
	return out
}

// orderLevel extracts the book level an order acted on, for flow feedback.
func orderLevel(o *orderv1.Order) orderv1.Label {
	switch d := o.Detail.(type) {
	case *orderv1.LimitDetail:
		return d.Level
	case *orderv1.CancelDetail:
		return d.Level
	default:
		return orderv1.Label{Side: o.Side.Opposite(), Index: 1}
	}
}
