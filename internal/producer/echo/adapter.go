// Package echo provides a testing producer that echoes back input messages.
// It implements the domain.Producer interface without making external calls,
// giving deterministic replies for testing and development purposes.
package echo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/davidbz/howl/internal/domain"
	"github.com/davidbz/howl/internal/observability"
)

const (
	producerName = "echo"
	modelName    = "echo4"
)

// Producer implements the domain.Producer interface for echo testing.
type Producer struct {
	name            string
	supportedModels map[string]bool
}

// NewProducer creates a new echo producer.
// No configuration is required as this producer operates entirely in-memory.
func NewProducer() *Producer {
	return &Producer{
		name: producerName,
		supportedModels: map[string]bool{
			modelName: true,
		},
	}
}

// Produce streams the echoed conversation word by word.
func (p *Producer) Produce(ctx context.Context, req *domain.CompletionRequest) (<-chan domain.Fragment, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	if !p.supportedModels[req.Model] {
		return nil, fmt.Errorf("model %s is not supported by echo producer", req.Model)
	}

	echoContent := buildEchoContent(req.Messages)

	observability.FromContext(ctx).Debug("echoing request",
		observability.Int("messages", len(req.Messages)))

	return domain.StreamFragments(ctx, domain.SplitFragments(echoContent)), nil
}

// Name returns the producer identifier.
func (p *Producer) Name() string {
	return p.name
}

// IsModelSupported checks if the producer supports the given model.
func (p *Producer) IsModelSupported(_ context.Context, model string) bool {
	return p.supportedModels[model]
}

// buildEchoContent constructs the echo reply from request messages.
func buildEchoContent(messages []domain.Message) string {
	var builder strings.Builder
	for _, msg := range messages {
		fmt.Fprintf(&builder, "[%s]: %s\n", msg.Role, msg.Content)
	}
	return builder.String()
}
