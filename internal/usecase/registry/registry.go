package registry

import (
	"fmt"

	exchangev1 "github.com/swturbo14/lobSimulations/internal/domain/exchange/v1"
	orderv1 "github.com/swturbo14/lobSimulations/internal/domain/order/v1"
)

// Registry allocates order ids and owns the canonical order records for one
// exchange instance. Ids are exchange-scoped, strictly increasing and never
// reused; records persist after terminal status for audit and history.
type Registry struct {
	nextID int64
	orders map[int64]*orderv1.Order
}

// New creates an empty registry. Ids start at 1 so that zero stays free as
// the anonymous-cancel sentinel.
func New() *Registry {
	return &Registry{
		nextID: 1,
		orders: make(map[int64]*orderv1.Order),
	}
}

// Create assigns the next id to o, stores the record and returns the id.
func (r *Registry) Create(o *orderv1.Order) int64 {
	o.ID = r.nextID
	r.nextID++
	r.orders[o.ID] = o
	return o.ID
}

// Lookup returns the order record for id.
func (r *Registry) Lookup(id int64) (*orderv1.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", exchangev1.ErrOrderNotFound, id)
	}
	return o, nil
}

// MarkTerminal moves the order to Filled or Cancelled and records fill
// metadata. A second terminal transition fails with ErrAlreadyTerminal.
func (r *Registry) MarkTerminal(id int64, status orderv1.Status, fillPrice, fillTime float64) error {
	o, err := r.Lookup(id)
	if err != nil {
		return err
	}
	if o.Status.Terminal() {
		return fmt.Errorf("%w: id %d is %s", exchangev1.ErrAlreadyTerminal, id, o.Status)
	}
	if !status.Terminal() {
		return fmt.Errorf("%w: %s is not a terminal status", exchangev1.ErrInvalidOrderType, status)
	}

	o.Status = status
	if status == orderv1.StatusFilled {
		o.FillPrice = fillPrice
		o.FilledAt = fillTime
	}
	return nil
}

// Count returns the number of records ever created.
func (r *Registry) Count() int {
	return len(r.orders)
}
