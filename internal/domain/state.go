package domain

import (
	"context"
	"fmt"

	"github.com/davidbz/howl/internal/observability"
)

// DeliveryState is the lifecycle position of one completion request.
type DeliveryState int

const (
	StatePending DeliveryState = iota
	StateProducing
	StateStreaming
	StateAggregating
	StateCompleted
	StateFailed
)

func (s DeliveryState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateProducing:
		return "producing"
	case StateStreaming:
		return "streaming"
	case StateAggregating:
		return "aggregating"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition is allowed.
func (s DeliveryState) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

//nolint:gochecknoglobals // Read-only transition table
var deliveryTransitions = map[DeliveryState][]DeliveryState{
	StatePending:     {StateProducing, StateFailed},
	StateProducing:   {StateStreaming, StateAggregating, StateFailed},
	StateStreaming:   {StateCompleted, StateFailed},
	StateAggregating: {StateCompleted, StateFailed},
}

// CanTransition reports whether from -> to is a legal step.
func CanTransition(from, to DeliveryState) bool {
	for _, next := range deliveryTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// deliveryTracker follows one request through the state machine.
type deliveryTracker struct {
	state DeliveryState
}

func newDeliveryTracker() *deliveryTracker {
	return &deliveryTracker{state: StatePending}
}

func (t *deliveryTracker) advance(ctx context.Context, to DeliveryState) {
	if t.state.Terminal() {
		observability.FromContext(ctx).Warn("delivery already finished",
			observability.String("state", t.state.String()),
			observability.String("to", to.String()))
		return
	}

	if !CanTransition(t.state, to) {
		observability.FromContext(ctx).Warn("illegal delivery transition",
			observability.String("from", t.state.String()),
			observability.String("to", to.String()))
		return
	}

	observability.FromContext(ctx).Debug("delivery state changed",
		observability.String("from", t.state.String()),
		observability.String("to", to.String()))
	t.state = to
}

func (t *deliveryTracker) current() DeliveryState {
	return t.state
}
