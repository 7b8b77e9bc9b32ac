package domain

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss indicates that no summary is cached for the account.
var ErrCacheMiss = errors.New("cache miss")

// AnalyticsSource delivers already-deserialized counter groups for one
// dataset over the billing period. Implementations own transport, auth and
// payload parsing; the aggregation engine never sees raw responses.
type AnalyticsSource interface {
	Groups(ctx context.Context, dataset Dataset, period BillingPeriod) ([]CounterGroup, error)
}

// ProductAggregator turns one product's raw counter groups into a
// ProductUsage. Aggregators are independent: none may read another's output.
type ProductAggregator interface {
	// Name returns the product identifier.
	Name() string

	// Aggregate fetches and rolls up the product's usage for the period.
	// An empty result set yields all-zero metrics, not an error; errors are
	// reserved for upstream fetch failures.
	Aggregate(ctx context.Context, period BillingPeriod) (*ProductUsage, error)
}

// UsageFetcher produces the whole-account summary.
type UsageFetcher interface {
	FetchAllUsage(ctx context.Context) (*AccountUsage, error)
}

// UsageCache stores account summaries outside the engine. The engine itself
// is stateless; caching cadence belongs to the caller.
type UsageCache interface {
	// Get retrieves the cached summary, or ErrCacheMiss.
	Get(ctx context.Context, account string) (*AccountUsage, error)

	// Set stores the summary with a TTL.
	Set(ctx context.Context, account string, usage *AccountUsage, ttl time.Duration) error
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}
