package agentv1

import (
	exchangev1 "github.com/swturbo14/lobSimulations/internal/domain/exchange/v1"
)

// Agent is a named simulation participant. The dispatcher delivers messages
// synchronously; an agent returning an error halts the run.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=agentv1_mock
type Agent interface {
	// ID returns the agent's unique identifier.
	ID() string
	// SubscribesToTrades reports whether the agent opted into trade
	// notifications at construction.
	SubscribesToTrades() bool
	// ReceiveMessage delivers one exchange message. now is the simulation
	// time of delivery.
	ReceiveMessage(now float64, msg exchangev1.Message) error
}
