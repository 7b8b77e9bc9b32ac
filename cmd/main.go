package main

import (
	"context"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"github.com/davidbz/haku/internal/analytics"
	rediscache "github.com/davidbz/haku/internal/cache/redis"
	"github.com/davidbz/haku/internal/config"
	"github.com/davidbz/haku/internal/domain"
	"github.com/davidbz/haku/internal/http"
	"github.com/davidbz/haku/internal/http/middleware"
	"github.com/davidbz/haku/internal/observability"
	"github.com/davidbz/haku/internal/product"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
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
	if err := container.Provide(func() domain.EventPublisher {
		return observability.NewEventBus()
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}

	// Pricing
	if err := container.Provide(func() domain.PricingRegistry {
		return domain.NewInMemoryPricingRegistry()
	}); err != nil {
		log.Fatalf("Failed to provide pricing registry: %v", err)
	}
	if err := container.Invoke(func(registry domain.PricingRegistry) error {
		return product.RegisterDefaultPricing(context.Background(), registry)
	}); err != nil {
		log.Fatalf("Failed to register pricing: %v", err)
	}

	// Analytics source
	if err := container.Provide(func(cfg *analytics.Config) domain.AnalyticsSource {
		return analytics.NewClient(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide analytics client: %v", err)
	}

	// Summary cache (disabled when no Redis address is configured)
	if err := container.Provide(func(cfg *config.CacheConfig) domain.UsageCache {
		if cfg.RedisAddr == "" {
			return nil
		}
		return rediscache.NewUsageCache(goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}))
	}); err != nil {
		log.Fatalf("Failed to provide usage cache: %v", err)
	}

	// Account aggregation service with one aggregator per product
	if err := container.Provide(func(
		cfCfg *analytics.Config,
		billing *config.BillingConfig,
		source domain.AnalyticsSource,
		pricing domain.PricingRegistry,
		events domain.EventPublisher,
	) (*domain.AccountService, error) {
		service := domain.NewAccountService(cfCfg.AccountID, billing.BaseFee, events)

		aggregators := []domain.ProductAggregator{
			product.NewWorkersAggregator(source, pricing),
			product.NewR2Aggregator(source, pricing),
			product.NewKVAggregator(source, pricing),
			product.NewD1Aggregator(source, pricing),
			product.NewImagesAggregator(source, pricing),
			product.NewAIAggregator(source, pricing),
			product.NewVectorizeAggregator(source, pricing),
		}
		for _, aggregator := range aggregators {
			if err := service.Register(aggregator); err != nil {
				return nil, err
			}
		}

		return service, nil
	}); err != nil {
		log.Fatalf("Failed to provide account service: %v", err)
	}
	if err := container.Provide(func(service *domain.AccountService) domain.UsageFetcher {
		return service
	}); err != nil {
		log.Fatalf("Failed to provide usage fetcher: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(func(
		fetcher domain.UsageFetcher,
		cache domain.UsageCache,
		cfCfg *analytics.Config,
		cacheCfg *config.CacheConfig,
	) *http.Handler {
		ttl := time.Duration(cacheCfg.TTLSeconds) * time.Second
		return http.NewHandler(fetcher, cache, cfCfg.AccountID, ttl)
	}); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
