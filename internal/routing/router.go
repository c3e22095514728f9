package routing

import (
	"context"
	"errors"
	"fmt"

	"github.com/davidbz/howl/internal/domain"
	"github.com/davidbz/howl/internal/observability"
)

// SimpleRouter selects the first registered producer that claims the model.
// When none does, requests go to the fallback producer.
type SimpleRouter struct {
	registry domain.ProducerRegistry
	fallback string
}

// NewRouter creates a new router. An empty fallback disables fallback routing.
func NewRouter(registry domain.ProducerRegistry, fallback string) *SimpleRouter {
	return &SimpleRouter{
		registry: registry,
		fallback: fallback,
	}
}

// Route selects a producer based on the model name.
func (r *SimpleRouter) Route(ctx context.Context, req *domain.RouteRequest) (string, error) {
	if req == nil {
		return "", errors.New("route request cannot be nil")
	}

	if req.Model == "" {
		return "", errors.New("model name is required")
	}

	producerNames, err := r.registry.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list producers: %w", err)
	}

	if len(producerNames) == 0 {
		return "", errors.New("no producers available")
	}

	for _, name := range producerNames {
		producer, getErr := r.registry.Get(ctx, name)
		if getErr != nil {
			continue
		}

		if producer.IsModelSupported(ctx, req.Model) {
			return name, nil
		}
	}

	if r.fallback != "" {
		if _, err := r.registry.Get(ctx, r.fallback); err == nil {
			observability.FromContext(ctx).Debug("routing to fallback producer",
				observability.String("fallback", r.fallback))
			return r.fallback, nil
		}
	}

	return "", fmt.Errorf("no producer found for model: %s", req.Model)
}
