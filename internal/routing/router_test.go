package routing_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/howl/internal/domain"
	"github.com/davidbz/howl/internal/routing"
)

// mockRegistry is a mock implementation of ProducerRegistry for testing.
type mockRegistry struct {
	producers map[string]domain.Producer
	listErr   error
}

func newMockRegistry() *mockRegistry {
	return &mockRegistry{
		producers: make(map[string]domain.Producer),
	}
}

func (m *mockRegistry) Register(_ context.Context, producer domain.Producer) error {
	m.producers[producer.Name()] = producer
	return nil
}

func (m *mockRegistry) Get(_ context.Context, producerName string) (domain.Producer, error) {
	producer, exists := m.producers[producerName]
	if !exists {
		return nil, fmt.Errorf("producer %s not found", producerName)
	}
	return producer, nil
}

func (m *mockRegistry) List(_ context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	names := make([]string, 0, len(m.producers))
	for name := range m.producers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// mockProducer is a mock implementation of Producer for testing.
type mockProducer struct {
	name   string
	models map[string]struct{}
}

func (m *mockProducer) Produce(_ context.Context, _ *domain.CompletionRequest) (<-chan domain.Fragment, error) {
	return nil, nil
}

func (m *mockProducer) Name() string {
	return m.name
}

func (m *mockProducer) IsModelSupported(_ context.Context, model string) bool {
	_, supported := m.models[model]
	return supported
}

func TestRouter_Route(t *testing.T) {
	t.Run("should route to producer supporting the model", func(t *testing.T) {
		registry := newMockRegistry()
		router := routing.NewRouter(registry, "")

		registry.Register(context.Background(), &mockProducer{
			name: "openai",
			models: map[string]struct{}{
				"gpt-4":         {},
				"gpt-3.5-turbo": {},
			},
		})

		producerName, err := router.Route(context.Background(), &domain.RouteRequest{Model: "gpt-4"})

		require.NoError(t, err)
		require.Equal(t, "openai", producerName)
	})

	t.Run("should return error when request is nil", func(t *testing.T) {
		router := routing.NewRouter(newMockRegistry(), "canned")

		producerName, err := router.Route(context.Background(), nil)

		require.Error(t, err)
		require.Empty(t, producerName)
		require.Contains(t, err.Error(), "route request cannot be nil")
	})

	t.Run("should return error when model is empty", func(t *testing.T) {
		router := routing.NewRouter(newMockRegistry(), "canned")

		producerName, err := router.Route(context.Background(), &domain.RouteRequest{Model: ""})

		require.Error(t, err)
		require.Empty(t, producerName)
		require.Contains(t, err.Error(), "model name is required")
	})

	t.Run("should return error when no producer supports the model and no fallback", func(t *testing.T) {
		registry := newMockRegistry()
		router := routing.NewRouter(registry, "")

		registry.Register(context.Background(), &mockProducer{
			name:   "openai",
			models: map[string]struct{}{"gpt-4": {}},
		})

		producerName, err := router.Route(context.Background(), &domain.RouteRequest{Model: "claude-3"})

		require.Error(t, err)
		require.Empty(t, producerName)
		require.Contains(t, err.Error(), "no producer found for model")
	})

	t.Run("should route unclaimed models to the fallback producer", func(t *testing.T) {
		registry := newMockRegistry()
		router := routing.NewRouter(registry, "canned")

		registry.Register(context.Background(), &mockProducer{name: "canned"})
		registry.Register(context.Background(), &mockProducer{
			name:   "echo",
			models: map[string]struct{}{"echo4": {}},
		})

		tests := []struct {
			model    string
			expected string
		}{
			{model: "gpt-4", expected: "canned"},
			{model: "claude-3-opus", expected: "canned"},
			{model: "echo4", expected: "echo"},
		}

		for _, tt := range tests {
			t.Run(tt.model, func(t *testing.T) {
				producerName, err := router.Route(context.Background(), &domain.RouteRequest{Model: tt.model})
				require.NoError(t, err)
				require.Equal(t, tt.expected, producerName)
			})
		}
	})

	t.Run("should fail when fallback producer is not registered", func(t *testing.T) {
		registry := newMockRegistry()
		router := routing.NewRouter(registry, "canned")

		registry.Register(context.Background(), &mockProducer{name: "echo"})

		producerName, err := router.Route(context.Background(), &domain.RouteRequest{Model: "gpt-4"})

		require.Error(t, err)
		require.Empty(t, producerName)
	})

	t.Run("should select correct producer when multiple producers exist", func(t *testing.T) {
		registry := newMockRegistry()
		router := routing.NewRouter(registry, "")

		registry.Register(context.Background(), &mockProducer{
			name:   "openai",
			models: map[string]struct{}{"gpt-4": {}, "gpt-3.5-turbo": {}},
		})
		registry.Register(context.Background(), &mockProducer{
			name:   "anthropic",
			models: map[string]struct{}{"claude-3-opus": {}, "claude-3-sonnet": {}},
		})

		producerName, err := router.Route(context.Background(), &domain.RouteRequest{Model: "claude-3-opus"})

		require.NoError(t, err)
		require.Equal(t, "anthropic", producerName)
	})

	t.Run("should return error when no producers available", func(t *testing.T) {
		router := routing.NewRouter(newMockRegistry(), "canned")

		producerName, err := router.Route(context.Background(), &domain.RouteRequest{Model: "gpt-4"})

		require.Error(t, err)
		require.Empty(t, producerName)
		require.Contains(t, err.Error(), "no producers available")
	})

	t.Run("should wrap registry list failure", func(t *testing.T) {
		registry := newMockRegistry()
		registry.listErr = errors.New("boom")
		router := routing.NewRouter(registry, "canned")

		_, err := router.Route(context.Background(), &domain.RouteRequest{Model: "gpt-4"})

		require.Error(t, err)
		require.ErrorIs(t, err, registry.listErr)
	})
}
