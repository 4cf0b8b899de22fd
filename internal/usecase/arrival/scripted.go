package arrival

import (
	arrivalv1 "github.com/swturbo14/lobSimulations/internal/domain/arrival/v1"
	orderv1 "github.com/swturbo14/lobSimulations/internal/domain/order/v1"
)

// Scripted replays a fixed arrival sequence and serves fixed-size
// replenishment queues. Used for deterministic runs and tests.
type Scripted struct {
	QueueSize int64 // size of every order in a generated queue
	arrivals  []arrivalv1.Arrival
	pos       int
	events    []arrivalv1.Event
}

// NewScripted creates a scripted model over the given sequence.
func NewScripted(queueSize int64, arrivals ...arrivalv1.Arrival) *Scripted {
	return &Scripted{QueueSize: queueSize, arrivals: arrivals}
}

// GenerateLevelQueue returns count orders of the fixed size.
func (s *Scripted) GenerateLevelQueue(level orderv1.Label, count int) []int64 {
	sizes := make([]int64, count)
	for i := range sizes {
		sizes[i] = s.QueueSize
	}
	return sizes
}

// NextArrival replays the scripted sequence until exhaustion.
func (s *Scripted) NextArrival() (arrivalv1.Arrival, bool) {
	if s.pos >= len(s.arrivals) {
		return arrivalv1.Arrival{}, false
	}
	arr := s.arrivals[s.pos]
	s.pos++
	return arr, true
}

// RecordEvent retains the feedback for inspection.
func (s *Scripted) RecordEvent(event arrivalv1.Event) {
	s.events = append(s.events, event)
}

// Events returns the recorded feedback in delivery order.
func (s *Scripted) Events() []arrivalv1.Event {
	return s.events
}
