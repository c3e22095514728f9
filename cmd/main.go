package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/howl/internal/catalog"
	"github.com/davidbz/howl/internal/config"
	"github.com/davidbz/howl/internal/document"
	"github.com/davidbz/howl/internal/document/redisstore"
	"github.com/davidbz/howl/internal/domain"
	"github.com/davidbz/howl/internal/httpserver"
	"github.com/davidbz/howl/internal/httpserver/middleware"
	"github.com/davidbz/howl/internal/observability"
	"github.com/davidbz/howl/internal/producer/breaker"
	"github.com/davidbz/howl/internal/producer/canned"
	"github.com/davidbz/howl/internal/producer/echo"
	"github.com/davidbz/howl/internal/producer/openai"
	"github.com/davidbz/howl/internal/producer/registry"
	"github.com/davidbz/howl/internal/routing"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *httpserver.Server, serverCfg *config.ServerConfig, logger *zap.Logger) error {
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(serverCfg.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	})
	if err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(func(logger *zap.Logger) domain.EventPublisher {
		return observability.NewEventBus(logger)
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}
	if err := container.Provide(func() domain.DeliveryObserver {
		return observability.NewChatMetrics(prometheus.DefaultRegisterer)
	}); err != nil {
		log.Fatalf("Failed to provide metrics: %v", err)
	}

	// Producer Registry
	if err := container.Provide(func() domain.ProducerRegistry {
		return registry.NewRegistry()
	}); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}

	// Producers
	if err := container.Provide(func(cfg *canned.Config) (*canned.Producer, error) {
		table, err := canned.Load(cfg)
		if err != nil {
			return nil, err
		}
		return canned.NewProducer(table)
	}); err != nil {
		log.Fatalf("Failed to provide canned producer: %v", err)
	}
	if err := container.Provide(echo.NewProducer); err != nil {
		log.Fatalf("Failed to provide echo producer: %v", err)
	}
	if err := container.Provide(provideUpstream); err != nil {
		log.Fatalf("Failed to provide OpenAI producer: %v", err)
	}

	// Register producers with registry (invoked for side effects)
	if err := container.Invoke(registerProducers); err != nil {
		log.Fatalf("Failed to register producers: %v", err)
	}

	// Routing
	if err := container.Provide(func(reg domain.ProducerRegistry, cfg *domain.DeliveryConfig) domain.Router {
		return routing.NewRouter(reg, cfg.DefaultProducer)
	}); err != nil {
		log.Fatalf("Failed to provide router: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewChatService); err != nil {
		log.Fatalf("Failed to provide chat service: %v", err)
	}
	if err := container.Provide(catalog.NewCatalog); err != nil {
		log.Fatalf("Failed to provide model catalog: %v", err)
	}

	// Documents
	if err := container.Provide(provideDocumentStore); err != nil {
		log.Fatalf("Failed to provide document store: %v", err)
	}
	if err := container.Provide(document.NewService); err != nil {
		log.Fatalf("Failed to provide document service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(httpserver.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(httpserver.NewDocumentHandler); err != nil {
		log.Fatalf("Failed to provide document handler: %v", err)
	}
	if err := container.Provide(httpserver.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

// provideUpstream builds the OpenAI producer behind a circuit breaker. It
// returns nil when no API key is configured.
func provideUpstream(cfg *openai.Config, breakerCfg *breaker.Config) (*breaker.Producer, error) {
	if cfg.APIKey == "" {
		return nil, nil //nolint:nilnil // Optional producer
	}

	producer, err := openai.NewProducer(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI producer: %w", err)
	}

	return breaker.NewProducer(producer, *breakerCfg), nil
}

func registerProducers(
	_ *zap.Logger,
	reg domain.ProducerRegistry,
	cannedProducer *canned.Producer,
	echoProducer *echo.Producer,
	upstream *breaker.Producer,
) error {
	ctx := context.Background()
	logger := observability.FromContext(ctx)

	producers := []domain.Producer{cannedProducer, echoProducer}
	if upstream != nil {
		producers = append(producers, upstream)
	} else {
		logger.Info("OpenAI producer not configured, serving canned replies")
	}

	for _, producer := range producers {
		if err := reg.Register(ctx, producer); err != nil {
			return fmt.Errorf("failed to register %s producer: %w", producer.Name(), err)
		}
		logger.Info("producer registered", observability.String("producer", producer.Name()))
	}

	return nil
}

// provideDocumentStore selects Redis when an address is configured.
func provideDocumentStore(cfg *redisstore.Config) (document.Store, error) {
	if !cfg.Enabled() {
		return document.NewMemoryStore(), nil
	}

	store, err := redisstore.NewStore(redisstore.NewClient(cfg), cfg.KeyPrefix, cfg.TTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis document store: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		observability.FromContext(ctx).Warn("redis not reachable at startup", observability.Error(err))
	}

	return store, nil
}
