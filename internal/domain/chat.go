package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/davidbz/howl/internal/observability"
)

const (
	modeStream    = "stream"
	modeAggregate = "aggregate"
)

//nolint:gochecknoglobals // Package tracer
var chatTracer = otel.Tracer("howl/internal/domain/chat")

// ChatService delivers completions either as an event stream or as a single
// aggregated result.
type ChatService struct {
	registry ProducerRegistry
	router   Router
	framer   *Framer
	config   DeliveryConfig
	events   EventPublisher
	metrics  DeliveryObserver
}

// NewChatService creates a new chat service (DI constructor).
func NewChatService(
	registry ProducerRegistry,
	router Router,
	cfg *DeliveryConfig,
	events EventPublisher,
	metrics DeliveryObserver,
) *ChatService {
	var config DeliveryConfig
	if cfg != nil {
		config = *cfg
	}

	return &ChatService{
		registry: registry,
		router:   router,
		framer:   NewFramer(config.PacingDelay),
		config:   config,
		events:   events,
		metrics:  metrics,
	}
}

// Deliver dispatches on the request's stream flag. In streaming mode events
// go to sink and the returned result is nil.
func (s *ChatService) Deliver(ctx context.Context, req *CompletionRequest, sink EventSink) (*CompletionResult, error) {
	if req != nil && req.IsStream() {
		if sink == nil {
			return nil, fmt.Errorf("%w: streaming requires an event sink", ErrInvalidRequest)
		}
		return nil, s.Stream(ctx, req, sink)
	}

	return s.Complete(ctx, req)
}

// Stream frames the producer output into sink. Usage is accounted server-side
// once the stream completes but is not part of the wire protocol.
func (s *ChatService) Stream(ctx context.Context, req *CompletionRequest, sink EventSink) error {
	start := time.Now()
	tracker := newDeliveryTracker()

	ctx, span := chatTracer.Start(ctx, "chat.stream",
		trace.WithAttributes(
			attribute.String("chat.mode", modeStream),
			attribute.Int64("chat.pacing_ms", s.framer.Pacing().Milliseconds())))
	defer span.End()

	if sink == nil {
		err := fmt.Errorf("%w: event sink cannot be nil", ErrInvalidRequest)
		s.fail(ctx, span, tracker, modeStream, start, err)
		return err
	}

	ctx, producer, normalized, err := s.prepare(ctx, req)
	if err != nil {
		s.fail(ctx, span, tracker, modeStream, start, err)
		return err
	}
	span.SetAttributes(
		attribute.String("chat.model", normalized.Model),
		attribute.String("chat.producer", producer.Name()))

	produceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tracker.advance(ctx, StateProducing)
	fragments, err := producer.Produce(produceCtx, normalized)
	if err != nil {
		err = fmt.Errorf("%w: producer %s: %w", ErrUpstream, producer.Name(), err)
		s.fail(ctx, span, tracker, modeStream, start, err)
		return err
	}

	tracker.advance(ctx, StateStreaming)

	var content strings.Builder
	tee := EventSinkFunc(func(ctx context.Context, event StreamEvent) error {
		if err := sink.Emit(ctx, event); err != nil {
			return err
		}
		if event.Kind == EventChunk {
			content.WriteString(event.Content)
		}
		return nil
	})

	emitted, err := s.framer.Run(produceCtx, fragments, tee)
	s.observeFragments(modeStream, emitted)
	if err != nil {
		span.SetAttributes(attribute.Int("chat.chunks_sent", emitted))
		s.fail(ctx, span, tracker, modeStream, start, err)
		return err
	}

	usage := ComputeUsage(normalized.Messages, content.String())
	tracker.advance(ctx, StateCompleted)
	s.succeed(ctx, tracker, modeStream, start, normalized.Model, producer.Name(), usage)

	return nil
}

// Complete drives the producer to completion without pacing and returns the
// aggregated reply. Once started, aggregation ignores caller cancellation.
func (s *ChatService) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	start := time.Now()
	tracker := newDeliveryTracker()

	ctx, span := chatTracer.Start(ctx, "chat.complete",
		trace.WithAttributes(attribute.String("chat.mode", modeAggregate)))
	defer span.End()

	ctx, producer, normalized, err := s.prepare(ctx, req)
	if err != nil {
		s.fail(ctx, span, tracker, modeAggregate, start, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("chat.model", normalized.Model),
		attribute.String("chat.producer", producer.Name()))

	produceCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()

	tracker.advance(ctx, StateProducing)
	fragments, err := producer.Produce(produceCtx, normalized)
	if err != nil {
		err = fmt.Errorf("%w: producer %s: %w", ErrUpstream, producer.Name(), err)
		s.fail(ctx, span, tracker, modeAggregate, start, err)
		return nil, err
	}

	tracker.advance(ctx, StateAggregating)

	agg := &aggregator{}
	emitted, err := s.framer.Unpaced().Run(produceCtx, fragments, agg)
	s.observeFragments(modeAggregate, emitted)
	if err == nil && !agg.done {
		err = fmt.Errorf("%w: stream ended without done event", ErrUpstream)
	}
	if err != nil {
		s.fail(ctx, span, tracker, modeAggregate, start, err)
		return nil, err
	}

	content := agg.content.String()
	usage := ComputeUsage(normalized.Messages, content)
	tracker.advance(ctx, StateCompleted)
	s.succeed(ctx, tracker, modeAggregate, start, normalized.Model, producer.Name(), usage)

	return &CompletionResult{
		ID:      CompletionID(content),
		Content: content,
		Model:   normalized.Model,
		Usage:   usage,
	}, nil
}

// prepare validates the request, applies defaults and resolves the producer.
// The caller's request is never modified.
func (s *ChatService) prepare(
	ctx context.Context,
	req *CompletionRequest,
) (context.Context, Producer, *CompletionRequest, error) {
	if err := validate(req); err != nil {
		return ctx, nil, nil, err
	}

	normalized := *req
	if normalized.Model == "" {
		normalized.Model = s.config.DefaultModel
	}
	ctx = observability.WithModel(ctx, normalized.Model)

	producerName, err := s.router.Route(ctx, &RouteRequest{Model: normalized.Model})
	if err != nil {
		return ctx, nil, nil, fmt.Errorf("%w: routing failed: %w", ErrUpstream, err)
	}

	producer, err := s.registry.Get(ctx, producerName)
	if err != nil {
		return ctx, nil, nil, fmt.Errorf("%w: producer not found: %w", ErrUpstream, err)
	}
	ctx = observability.WithProducer(ctx, producer.Name())

	return ctx, producer, &normalized, nil
}

func validate(req *CompletionRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request cannot be nil", ErrInvalidRequest)
	}

	if len(req.Messages) == 0 {
		return fmt.Errorf("%w: messages cannot be empty", ErrInvalidRequest)
	}

	for i, msg := range req.Messages {
		if !msg.Role.Valid() {
			return fmt.Errorf("%w: message %d has unknown role %q", ErrInvalidRequest, i, msg.Role)
		}
	}

	return nil
}

func (s *ChatService) succeed(
	ctx context.Context,
	tracker *deliveryTracker,
	mode string,
	start time.Time,
	model, producer string,
	usage Usage,
) {
	elapsed := time.Since(start)

	observability.FromContext(ctx).Info("completion delivered",
		observability.String("mode", mode),
		observability.Int("prompt_tokens", usage.PromptTokens),
		observability.Int("completion_tokens", usage.CompletionTokens),
		observability.Duration("elapsed", elapsed))

	if s.metrics != nil {
		s.metrics.ObserveRequest(mode, tracker.current().String(), elapsed.Seconds())
		s.metrics.ObserveUsage(usage.PromptTokens, usage.CompletionTokens)
	}

	if s.events != nil {
		s.events.Publish(ctx, "chat.completed", map[string]interface{}{
			"mode":              mode,
			"model":             model,
			"producer":          producer,
			"prompt_tokens":     usage.PromptTokens,
			"completion_tokens": usage.CompletionTokens,
			"total_tokens":      usage.TotalTokens,
		})
	}
}

func (s *ChatService) fail(
	ctx context.Context,
	span trace.Span,
	tracker *deliveryTracker,
	mode string,
	start time.Time,
	err error,
) {
	tracker.advance(ctx, StateFailed)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	logger := observability.FromContext(ctx)
	switch {
	case errors.Is(err, ErrInvalidRequest):
		logger.Info("completion rejected", observability.String("mode", mode), observability.Error(err))
	case errors.Is(err, ErrTransport):
		logger.Info("completion aborted", observability.String("mode", mode), observability.Error(err))
	default:
		logger.Error("completion failed", observability.String("mode", mode), observability.Error(err))
	}

	if s.metrics != nil {
		s.metrics.ObserveRequest(mode, tracker.current().String(), time.Since(start).Seconds())
	}

	if s.events != nil {
		s.events.Publish(ctx, "chat.failed", map[string]interface{}{
			"mode":  mode,
			"error": err.Error(),
		})
	}
}

func (s *ChatService) observeFragments(mode string, n int) {
	if s.metrics != nil {
		s.metrics.ObserveFragments(mode, n)
	}
}

// aggregator collects chunk events in order.
type aggregator struct {
	content strings.Builder
	done    bool
}

func (a *aggregator) Emit(_ context.Context, event StreamEvent) error {
	switch event.Kind {
	case EventChunk:
		a.content.WriteString(event.Content)
	case EventDone:
		a.done = true
	}
	return nil
}
