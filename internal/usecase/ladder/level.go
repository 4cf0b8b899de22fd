package ladder

import (
	orderv1 "github.com/swturbo14/lobSimulations/internal/domain/order/v1"
)

// Level is one active price level: a tick-aligned price and the FIFO queue
// of resting limit orders at that price.
type Level struct {
	Price orderv1.Price
	queue []*orderv1.Order
}

// NewLevel creates a level holding the given queue. Every order in the
// queue shares the level's price by construction.
func NewLevel(price orderv1.Price, queue []*orderv1.Order) *Level {
	return &Level{Price: price, queue: queue}
}

// Append puts o at the back of the FIFO queue.
func (l *Level) Append(o *orderv1.Order) {
	l.queue = append(l.queue, o)
}

// Head returns the order at the front of the queue.
func (l *Level) Head() *orderv1.Order {
	return l.queue[0]
}

// Pop removes and returns the order at the front of the queue.
func (l *Level) Pop() *orderv1.Order {
	head := l.queue[0]
	l.queue = l.queue[1:]
	return head
}

// Remove deletes the order with the given id, preserving FIFO order of the
// remainder. It reports whether the id was present.
func (l *Level) Remove(id int64) (*orderv1.Order, bool) {
	for i, o := range l.queue {
		if o.ID == id {
			l.queue = append(l.queue[:i], l.queue[i+1:]...)
			return o, true
		}
	}
	return nil, false
}

// Empty reports whether the queue is depleted.
func (l *Level) Empty() bool {
	return len(l.queue) == 0
}

// Len returns the number of resting orders.
func (l *Level) Len() int {
	return len(l.queue)
}

// Aggregate returns the total resting size at this level.
func (l *Level) Aggregate() int64 {
	var total int64
	for _, o := range l.queue {
		total += o.Size
	}
	return total
}

// Orders returns a copy of the queue in FIFO order.
func (l *Level) Orders() []*orderv1.Order {
	out := make([]*orderv1.Order, len(l.queue))
	copy(out, l.queue)
	return out
}

// AnonymousOrders returns the ids of synthetic-flow orders in the queue,
// in FIFO order.
func (l *Level) AnonymousOrders() []int64 {
	var ids []int64
	for _, o := range l.queue {
		if o.IsAnonymous() {
			ids = append(ids, o.ID)
		}
	}
	return ids
}
