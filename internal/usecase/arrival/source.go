package arrival

import (
	"math/rand"

	arrivalv1 "github.com/swturbo14/lobSimulations/internal/domain/arrival/v1"
	orderv1 "github.com/swturbo14/lobSimulations/internal/domain/order/v1"
)

// Config parameterises the seeded synthetic flow source.
type Config struct {
	Seed      int64
	Depth     int     // book levels per side
	Rate      float64 // mean arrivals per simulated second
	MeanSize  int64   // mean order size
	MaxEvents int64   // arrivals before exhaustion; 0 means unbounded
}

// Source is a seeded stochastic order-flow model: exponential inter-arrival
// times, geometric sizes, and a fixed kind/side mix. It stands in for a
// calibrated Hawkes model behind the same interface: the exchange only sees
// arrivalv1.Model.
type Source struct {
	cfg     Config
	rng     *rand.Rand
	clock   float64
	emitted int64
	// realized activity fed back through RecordEvent, by kind
	observed map[arrivalv1.Kind]int64
}

// NewSource creates a seeded source. The same seed reproduces the same flow.
func NewSource(cfg Config) *Source {
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.MeanSize <= 0 {
		cfg.MeanSize = 5
	}
	return &Source{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		observed: make(map[arrivalv1.Kind]int64),
	}
}

// GenerateLevelQueue returns geometric resting-order sizes for one level.
func (s *Source) GenerateLevelQueue(level orderv1.Label, count int) []int64 {
	sizes := make([]int64, count)
	for i := range sizes {
		sizes[i] = s.drawSize()
	}
	return sizes
}

// NextArrival returns the next unit of flow, or false once MaxEvents have
// been emitted.
func (s *Source) NextArrival() (arrivalv1.Arrival, bool) {
	if s.cfg.MaxEvents > 0 && s.emitted >= s.cfg.MaxEvents {
		return arrivalv1.Arrival{}, false
	}
	s.emitted++
	s.clock += s.rng.ExpFloat64() / s.cfg.Rate

	side := orderv1.SideBid
	if s.rng.Intn(2) == 0 {
		side = orderv1.SideAsk
	}

	arr := arrivalv1.Arrival{
		Time: s.clock,
		Side: side,
		Size: s.drawSize(),
	}

	// roughly the mix of the recorded flow: mostly passive limit orders,
	// occasional aggression and cancels, rare in-spread improvement
	switch roll := s.rng.Float64(); {
	case roll < 0.70:
		arr.Kind = arrivalv1.KindLimit
		arr.Level = s.drawLevel(side)
	case roll < 0.75:
		arr.Kind = arrivalv1.KindLimit
		arr.InSpread = true
	case roll < 0.85:
		arr.Kind = arrivalv1.KindMarket
	default:
		arr.Kind = arrivalv1.KindCancel
		arr.Level = s.drawLevel(side)
	}

	return arr, true
}

// RecordEvent folds realized agent activity back into the model state.
func (s *Source) RecordEvent(event arrivalv1.Event) {
	s.observed[event.Kind]++
}

// Observed returns how many realized events of the given kind were fed back.
func (s *Source) Observed(kind arrivalv1.Kind) int64 {
	return s.observed[kind]
}

func (s *Source) drawLevel(side orderv1.Side) orderv1.Label {
	return orderv1.Label{Side: side, Index: 1 + s.rng.Intn(s.cfg.Depth)}
}

// drawSize draws a geometric size with the configured mean, at least 1.
func (s *Source) drawSize() int64 {
	p := 1.0 / float64(s.cfg.MeanSize)
	size := int64(1)
	for s.rng.Float64() > p && size < 100*s.cfg.MeanSize {
		size++
	}
	return size
}
