package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/davidbz/howl/internal/domain"
)

// Registry implements the ProducerRegistry interface.
type Registry struct {
	mu        sync.RWMutex
	producers map[string]domain.Producer
}

// NewRegistry creates a new producer registry.
func NewRegistry() *Registry {
	return &Registry{
		mu:        sync.RWMutex{},
		producers: make(map[string]domain.Producer),
	}
}

// Register adds a producer to the registry.
func (r *Registry) Register(_ context.Context, producer domain.Producer) error {
	if producer == nil {
		return errors.New("producer cannot be nil")
	}

	name := producer.Name()
	if name == "" {
		return errors.New("producer name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.producers[name]; exists {
		return fmt.Errorf("producer %s already registered", name)
	}

	r.producers[name] = producer

	return nil
}

// Get retrieves a producer by name.
func (r *Registry) Get(_ context.Context, producerName string) (domain.Producer, error) {
	if producerName == "" {
		return nil, errors.New("producer name cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	producer, exists := r.producers[producerName]
	if !exists {
		return nil, fmt.Errorf("producer %s not found", producerName)
	}

	return producer, nil
}

// List returns all registered producer names in lexical order.
func (r *Registry) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.producers))
	for name := range r.producers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}
