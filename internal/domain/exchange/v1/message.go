package exchangev1

// Message is the closed set of notifications the exchange delivers to
// participants. Agents type-switch over the full set; an unknown message is
// a protocol violation (ErrUnexpectedMessage).
type Message interface {
	isMessage()
}

// BeginTrading is broadcast to every agent once the book is initialized.
type BeginTrading struct {
	Time float64
}

// SpreadChanged is broadcast to every agent when a processed order moved
// best_ask - best_bid.
type SpreadChanged struct {
	Spread float64
}

// TradeOccurred is broadcast to the trade-subscriber subset when a trade
// happened and the spread did not change.
type TradeOccurred struct{}

// OrderExecuted notifies an owner of a full fill (or acknowledges an
// applied cancel, with a zero fill price).
type OrderExecuted struct {
	OrderID   int64
	FillPrice float64
	FillTime  float64
}

// PartialFill notifies a resting order's owner of partial consumption. The
// consumed portion traded at FillPrice, the order's own limit price.
type PartialFill struct {
	OrderID   int64
	Remaining int64
	FillPrice float64
}

// OrderAutoCancelled notifies an owner that a level-shift eviction removed
// their resting order.
type OrderAutoCancelled struct {
	OrderID int64
}

// WakeAgent is a scheduler-driven activation; the exchange never sends it.
type WakeAgent struct {
	Time float64
}

func (BeginTrading) isMessage()       {}
func (SpreadChanged) isMessage()      {}
func (TradeOccurred) isMessage()      {}
func (OrderExecuted) isMessage()      {}
func (PartialFill) isMessage()        {}
func (OrderAutoCancelled) isMessage() {}
func (WakeAgent) isMessage()          {}
