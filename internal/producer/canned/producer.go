// Package canned provides the demo producer. It answers every model with a
// fixed reply picked by keyword routing on the newest message.
package canned

import (
	"context"
	"errors"

	"github.com/davidbz/howl/internal/domain"
	"github.com/davidbz/howl/internal/observability"
)

const producerName = "canned"

// Producer implements domain.Producer over a routing table.
type Producer struct {
	name  string
	table *Table
}

// NewProducer creates a producer over table.
func NewProducer(table *Table) (*Producer, error) {
	if table == nil {
		return nil, errors.New("response table cannot be nil")
	}

	return &Producer{
		name:  producerName,
		table: table,
	}, nil
}

// Produce streams the canned reply selected by the last message.
func (p *Producer) Produce(ctx context.Context, req *domain.CompletionRequest) (<-chan domain.Fragment, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	last, ok := req.LastMessage()
	if !ok {
		return nil, errors.New("conversation cannot be empty")
	}

	route := p.table.Select(last.Content)

	observability.FromContext(ctx).Debug("canned route selected",
		observability.String("route", route.Name),
		observability.Int("fragments", len(route.Fragments())))

	return domain.StreamFragments(ctx, route.Fragments()), nil
}

// Name returns the producer identifier.
func (p *Producer) Name() string {
	return p.name
}

// IsModelSupported always reports false: the demo producer is only reached
// through the router's fallback.
func (p *Producer) IsModelSupported(_ context.Context, _ string) bool {
	return false
}
