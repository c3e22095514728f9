package domain

import "context"

// Producer generates the assistant reply for a conversation.
type Producer interface {
	// Produce returns the reply as an ordered, lazily filled fragment channel.
	// The channel is unbuffered and closed after the last fragment or after a
	// fragment carrying an error. Cancelling ctx stops production.
	Produce(ctx context.Context, req *CompletionRequest) (<-chan Fragment, error)

	// Name returns the producer identifier.
	Name() string

	// IsModelSupported checks if the producer serves the given model.
	IsModelSupported(ctx context.Context, model string) bool
}

// ProducerRegistry manages available producers.
type ProducerRegistry interface {
	// Register adds a producer to the registry.
	Register(ctx context.Context, producer Producer) error

	// Get retrieves a producer by name.
	Get(ctx context.Context, producerName string) (Producer, error)

	// List returns all registered producer names.
	List(ctx context.Context) ([]string, error)
}

// Router determines which producer handles a request.
type Router interface {
	// Route selects a producer based on request criteria.
	Route(ctx context.Context, req *RouteRequest) (string, error)
}

// RouteRequest contains criteria for producer selection.
type RouteRequest struct {
	Model string
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}

// DeliveryObserver records delivery metrics.
type DeliveryObserver interface {
	ObserveRequest(mode, state string, seconds float64)
	ObserveFragments(mode string, n int)
	ObserveUsage(prompt, completion int)
}

// EventSink receives framed stream events, one at a time.
type EventSink interface {
	Emit(ctx context.Context, event StreamEvent) error
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(ctx context.Context, event StreamEvent) error

// Emit calls f.
func (f EventSinkFunc) Emit(ctx context.Context, event StreamEvent) error {
	return f(ctx, event)
}
