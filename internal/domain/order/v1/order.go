package orderv1

// Anonymous is the sentinel owner of orders produced by the synthetic flow
// model rather than by a named agent.
const Anonymous = "anonymous"

// Side marks which half of the book an order belongs to.
type Side int8

const (
	// SideBid represents the buy side of the book.
	SideBid Side = iota
	// SideAsk represents the sell side of the book.
	SideAsk
)

// Opposite returns the side an aggressor on s consumes liquidity from.
func (s Side) Opposite() Side {
	if s == SideBid {
		return SideAsk
	}
	return SideBid
}

func (s Side) String() string {
	if s == SideBid {
		return "Bid"
	}
	return "Ask"
}

// Status tracks the order lifecycle. Limit orders move
// Created -> Resting -> PartiallyFilled* -> Filled | Cancelled; market and
// cancel orders skip Resting and resolve immediately.
type Status int8

const (
	// StatusCreated is the initial state of every order.
	StatusCreated Status = iota
	// StatusResting marks a limit order sitting in a level queue.
	StatusResting
	// StatusPartiallyFilled marks a resting order that lost part of its size.
	StatusPartiallyFilled
	// StatusFilled is terminal: the order was fully executed (or, for a
	// cancel order, successfully applied).
	StatusFilled
	// StatusCancelled is terminal.
	StatusCancelled
)

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusFilled || s == StatusCancelled
}

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusResting:
		return "resting"
	case StatusPartiallyFilled:
		return "partially_filled"
	case StatusFilled:
		return "filled"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Detail is the closed kind payload of an order. Exactly one of
// *LimitDetail, *MarketDetail or *CancelDetail; call sites type-switch over
// the full set.
type Detail interface {
	isDetail()
}

// LimitDetail carries the price and book level of a limit order.
type LimitDetail struct {
	Price Price
	Level Label
}

// MarketDetail accumulates the realized notional of a market order.
type MarketDetail struct {
	Notional float64
}

// CancelDetail identifies what a cancel order targets. TargetID is zero for
// an anonymous (public) cancel, which instead targets one random
// synthetic order at Level.
type CancelDetail struct {
	TargetID int64
	Level    Label
}

func (*LimitDetail) isDetail()  {}
func (*MarketDetail) isDetail() {}
func (*CancelDetail) isDetail() {}

// Order is a single order record. Shared fields plus the kind payload in
// Detail. Records are owned by the registry and mutated only by the exchange.
type Order struct {
	ID        int64
	PlacedAt  float64 // simulation seconds
	Side      Side
	Size      int64 // remaining unfilled quantity for limit orders
	Symbol    string
	Owner     string
	Status    Status
	FillPrice float64
	FilledAt  float64
	Detail    Detail
}

// NewLimit creates a limit order at the given tick price and book level.
func NewLimit(placedAt float64, side Side, size int64, symbol, owner string, price Price, level Label) *Order {
	return &Order{
		PlacedAt: placedAt,
		Side:     side,
		Size:     size,
		Symbol:   symbol,
		Owner:    owner,
		Status:   StatusCreated,
		Detail:   &LimitDetail{Price: price, Level: level},
	}
}

// NewMarket creates a market order consuming the opposite side.
func NewMarket(placedAt float64, side Side, size int64, symbol, owner string) *Order {
	return &Order{
		PlacedAt: placedAt,
		Side:     side,
		Size:     size,
		Symbol:   symbol,
		Owner:    owner,
		Status:   StatusCreated,
		Detail:   &MarketDetail{},
	}
}

// NewCancel creates an agent cancel order referencing a resting order id.
func NewCancel(placedAt float64, side Side, symbol, owner string, targetID int64) *Order {
	return &Order{
		PlacedAt: placedAt,
		Side:     side,
		Symbol:   symbol,
		Owner:    owner,
		Status:   StatusCreated,
		Detail:   &CancelDetail{TargetID: targetID},
	}
}

// NewLevelCancel creates an anonymous cancel aimed at one random synthetic
// order resting at the given level.
func NewLevelCancel(placedAt float64, side Side, symbol string, level Label) *Order {
	return &Order{
		PlacedAt: placedAt,
		Side:     side,
		Symbol:   symbol,
		Owner:    Anonymous,
		Status:   StatusCreated,
		Detail:   &CancelDetail{Level: level},
	}
}

// IsAnonymous reports whether the order came from the synthetic flow model.
func (o *Order) IsAnonymous() bool {
	return o.Owner == Anonymous
}

// LimitDetail returns the limit payload when the order is a limit order.
func (o *Order) LimitDetail() (*LimitDetail, bool) {
	d, ok := o.Detail.(*LimitDetail)
	return d, ok
}

// MarketDetail returns the market payload when the order is a market order.
func (o *Order) MarketDetail() (*MarketDetail, bool) {
	d, ok := o.Detail.(*MarketDetail)
	return d, ok
}

// CancelDetail returns the cancel payload when the order is a cancel order.
func (o *Order) CancelDetail() (*CancelDetail, bool) {
	d, ok := o.Detail.(*CancelDetail)
	return d, ok
}

// Kind returns a short label of the order's kind for logging.
func (o *Order) Kind() string {
	switch o.Detail.(type) {
	case *LimitDetail:
		return "limit"
	case *MarketDetail:
		return "market"
	case *CancelDetail:
		return "cancel"
	default:
		return "invalid"
	}
}
