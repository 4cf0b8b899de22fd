package dispatch

import (
	"fmt"

	agentv1 "github.com/swturbo14/lobSimulations/internal/domain/agent/v1"
	exchangev1 "github.com/swturbo14/lobSimulations/internal/domain/exchange/v1"
	"github.com/swturbo14/lobSimulations/pkg/logger"
)

// Dispatcher turns matching outcomes into point-to-point and broadcast
// deliveries. Delivery is synchronous: the simulation is single-threaded
// and one order is fully processed before the next arrives.
type Dispatcher struct {
	log    *logger.Logger
	agents map[string]agentv1.Agent
	// registration order, for deterministic broadcast delivery
	roster      []string
	subscribers []string
}

// New creates a dispatcher over the registered agents. The trade-subscriber
// subset is fixed at construction from each agent's subscription flag.
func New(log *logger.Logger, agents []agentv1.Agent) *Dispatcher {
	d := &Dispatcher{
		log:    log,
		agents: make(map[string]agentv1.Agent, len(agents)),
	}
	for _, a := range agents {
		d.agents[a.ID()] = a
		d.roster = append(d.roster, a.ID())
		if a.SubscribesToTrades() {
			d.subscribers = append(d.subscribers, a.ID())
		}
	}
	return d
}

// Has reports whether agentID is registered.
func (d *Dispatcher) Has(agentID string) bool {
	_, ok := d.agents[agentID]
	return ok
}

// Agents returns the registered agent ids in registration order.
func (d *Dispatcher) Agents() []string {
	out := make([]string, len(d.roster))
	copy(out, d.roster)
	return out
}

// Send delivers msg to one named agent.
func (d *Dispatcher) Send(now float64, agentID string, msg exchangev1.Message) error {
	a, ok := d.agents[agentID]
	if !ok {
		return fmt.Errorf("%w: %s", exchangev1.ErrAgentNotFound, agentID)
	}
	return a.ReceiveMessage(now, msg)
}

// Broadcast delivers msg to every registered agent.
func (d *Dispatcher) Broadcast(now float64, msg exchangev1.Message) error {
	return d.deliver(now, d.roster, msg)
}

// BroadcastTrades delivers msg to the trade-subscriber subset.
func (d *Dispatcher) BroadcastTrades(now float64, msg exchangev1.Message) error {
	return d.deliver(now, d.subscribers, msg)
}

func (d *Dispatcher) deliver(now float64, ids []string, msg exchangev1.Message) error {
	for _, id := range ids {
		if err := d.agents[id].ReceiveMessage(now, msg); err != nil {
			return fmt.Errorf("deliver to %s: %w", id, err)
		}
	}
	return nil
}
