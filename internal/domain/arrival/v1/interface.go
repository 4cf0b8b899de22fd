package arrivalv1

import (
	orderv1 "github.com/swturbo14/lobSimulations/internal/domain/order/v1"
)

// Kind is the order kind carried by a synthetic arrival.
type Kind string

const (
	// KindLimit is a resting limit order arrival.
	KindLimit Kind = "limit"
	// KindMarket is an aggressing market order arrival.
	KindMarket Kind = "market"
	// KindCancel is an anonymous level-targeted cancel arrival.
	KindCancel Kind = "cancel"
)

// Arrival is one unit of externally sequenced synthetic flow.
type Arrival struct {
	Time     float64
	Side     orderv1.Side
	Kind     Kind
	Level    orderv1.Label
	InSpread bool // limit order priced one tick inside the current best
	Size     int64
}

// Event is realized exchange activity fed back to the arrival model so it
// can update its own internal state.
type Event struct {
	Time  float64
	Side  orderv1.Side
	Kind  Kind
	Level orderv1.Label
	Size  int64
}

// Model is the stochastic order-flow collaborator. Implementations return
// data by value and never touch the book.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=arrivalv1_mock
type Model interface {
	// GenerateLevelQueue returns synthetic resting-order sizes for
	// replenishing the named level.
	GenerateLevelQueue(level orderv1.Label, count int) []int64
	// NextArrival returns the next unit of synthetic flow, or false when the
	// flow is exhausted.
	NextArrival() (Arrival, bool)
	// RecordEvent feeds realized agent activity back into the model.
	RecordEvent(event Event)
}
