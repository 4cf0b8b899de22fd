package agent

import (
	"fmt"

	exchangev1 "github.com/swturbo14/lobSimulations/internal/domain/exchange/v1"
	orderv1 "github.com/swturbo14/lobSimulations/internal/domain/order/v1"
	"github.com/swturbo14/lobSimulations/pkg/logger"
)

// TradingAgent is a named participant that keeps its own books: cash,
// per-symbol inventory and open positions. It holds no reference into the
// exchange; everything it knows arrives through messages and the order
// records it submitted itself.
type TradingAgent struct {
	id      string
	onTrade bool
	log     *logger.Logger

	clock  float64
	spread float64

	Cash      float64
	Inventory map[string]int64

	// open orders this agent submitted, by id
	positions map[int64]*orderv1.Order
	// last known remaining size per tracked limit order, to price partial fills
	remaining map[int64]int64
}

// NewTradingAgent creates an agent with the given starting cash.
func NewTradingAgent(id string, cash float64, onTrade bool, log *logger.Logger) *TradingAgent {
	return &TradingAgent{
		id:        id,
		onTrade:   onTrade,
		log:       log,
		Cash:      cash,
		Inventory: make(map[string]int64),
		positions: make(map[int64]*orderv1.Order),
		remaining: make(map[int64]int64),
	}
}

// ID returns the agent's identifier.
func (a *TradingAgent) ID() string {
	return a.id
}

// SubscribesToTrades reports the construction-time subscription flag.
func (a *TradingAgent) SubscribesToTrades() bool {
	return a.onTrade
}

// Track registers an order this agent submitted so later fill and cancel
// notices can be resolved against it.
func (a *TradingAgent) Track(o *orderv1.Order) {
	a.positions[o.ID] = o
	if _, ok := o.LimitDetail(); ok {
		a.remaining[o.ID] = o.Size
	}
}

// OpenPositions returns the number of tracked open orders.
func (a *TradingAgent) OpenPositions() int {
	return len(a.positions)
}

// Clock returns the agent's view of simulation time.
func (a *TradingAgent) Clock() float64 {
	return a.clock
}

// Spread returns the last broadcast spread.
func (a *TradingAgent) Spread() float64 {
	return a.spread
}

// ReceiveMessage updates the agent's books from one exchange message.
func (a *TradingAgent) ReceiveMessage(now float64, msg exchangev1.Message) error {
	a.clock = now

	switch m := msg.(type) {
	case exchangev1.BeginTrading:
		a.clock = m.Time
	case exchangev1.WakeAgent:
		a.clock = m.Time
	case exchangev1.SpreadChanged:
		a.spread = m.Spread
	case exchangev1.TradeOccurred:
		// strategy hook; the base agent keeps no trade state
	case exchangev1.OrderExecuted:
		return a.onExecuted(m)
	case exchangev1.PartialFill:
		return a.onPartialFill(m)
	case exchangev1.OrderAutoCancelled:
		a.drop(m.OrderID)
	default:
		return fmt.Errorf("%w: %T delivered to agent %s", exchangev1.ErrUnexpectedMessage, msg, a.id)
	}
	return nil
}

func (a *TradingAgent) onExecuted(m exchangev1.OrderExecuted) error {
	o, ok := a.positions[m.OrderID]
	if !ok {
		return fmt.Errorf("%w: execution notice for untracked order %d at agent %s",
			exchangev1.ErrUnexpectedMessage, m.OrderID, a.id)
	}

	switch d := o.Detail.(type) {
	case *orderv1.MarketDetail:
		if o.Side == orderv1.SideAsk {
			a.Cash += d.Notional
			a.Inventory[o.Symbol] -= o.Size
		} else {
			a.Cash -= d.Notional
			a.Inventory[o.Symbol] += o.Size
		}
		a.drop(o.ID)
	case *orderv1.LimitDetail:
		qty := a.remaining[o.ID]
		if o.Side == orderv1.SideAsk {
			a.Cash += m.FillPrice * float64(qty)
			a.Inventory[o.Symbol] -= qty
		} else {
			a.Cash -= m.FillPrice * float64(qty)
			a.Inventory[o.Symbol] += qty
		}
		a.drop(o.ID)
	case *orderv1.CancelDetail:
		// acknowledgement of an applied cancel
		a.drop(d.TargetID)
		a.drop(o.ID)
	default:
		return fmt.Errorf("%w: execution notice for %s order %d",
			exchangev1.ErrUnexpectedMessage, o.Kind(), o.ID)
	}
	return nil
}

func (a *TradingAgent) onPartialFill(m exchangev1.PartialFill) error {
	o, ok := a.positions[m.OrderID]
	if !ok {
		return fmt.Errorf("%w: partial fill notice for untracked order %d at agent %s",
			exchangev1.ErrUnexpectedMessage, m.OrderID, a.id)
	}
	if _, ok := o.LimitDetail(); !ok {
		return fmt.Errorf("%w: partial fill notice for %s order %d",
			exchangev1.ErrUnexpectedMessage, o.Kind(), o.ID)
	}

	filled := a.remaining[o.ID] - m.Remaining
	value := float64(filled) * m.FillPrice

	if o.Side == orderv1.SideAsk {
		a.Cash += value
		a.Inventory[o.Symbol] -= filled
	} else {
		a.Cash -= value
		a.Inventory[o.Symbol] += filled
	}
	a.remaining[o.ID] = m.Remaining
	return nil
}

func (a *TradingAgent) drop(id int64) {
	delete(a.positions, id)
	delete(a.remaining, id)
}
