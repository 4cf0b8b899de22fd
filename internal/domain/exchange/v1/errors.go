package exchangev1

import "errors"

var (
	// ErrInvalidOrderType marks a malformed or unsupported order shape,
	// including a limit price that skips ticks or crosses levels.
	ErrInvalidOrderType = errors.New("invalid order type")
	// ErrInvalidPrice marks a limit price that neither matches an active
	// level nor improves the best by exactly one tick.
	ErrInvalidPrice = errors.New("invalid limit price")
	// ErrAgentNotFound marks a submission or cancel from an unregistered agent.
	ErrAgentNotFound = errors.New("agent not found")
	// ErrCancelTargetNotFound marks a cancel referencing an unknown or
	// no-longer-resting order id.
	ErrCancelTargetNotFound = errors.New("cancel target not found")
	// ErrCancelOwnershipMismatch marks a cancel issued by an agent that does
	// not own the target order.
	ErrCancelOwnershipMismatch = errors.New("cancel ownership mismatch")
	// ErrInsufficientLiquidity marks a market order larger than the resting
	// liquidity across the configured depth. The flow model is contracted
	// never to produce one, so this is fatal.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	// ErrLOBProcessing marks a broken post-condition on the book. Always
	// fatal: the ladder and registry have diverged.
	ErrLOBProcessing = errors.New("LOB processed incorrectly")
	// ErrUnexpectedMessage marks a protocol violation at the message layer.
	ErrUnexpectedMessage = errors.New("unexpected message type")
	// ErrOrderNotFound marks a registry lookup miss.
	ErrOrderNotFound = errors.New("order not found")
	// ErrAlreadyTerminal marks a second terminal transition on one order.
	ErrAlreadyTerminal = errors.New("order already terminal")
)
