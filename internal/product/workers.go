package product

import (
	"context"
	"fmt"

	"github.com/davidbz/haku/internal/domain"
	"github.com/davidbz/haku/internal/observability"
)

const microsecondsPerMs = 1000.0

// WorkersAggregator estimates Workers cost from invocation counters:
// requests and CPU time.
type WorkersAggregator struct {
	source  domain.AnalyticsSource
	pricing domain.PricingRegistry
}

// NewWorkersAggregator creates a new Workers aggregator.
func NewWorkersAggregator(source domain.AnalyticsSource, pricing domain.PricingRegistry) *WorkersAggregator {
	return &WorkersAggregator{source: source, pricing: pricing}
}

// Name returns the product identifier.
func (a *WorkersAggregator) Name() string { return domain.ProductWorkers }

// Aggregate fetches Workers invocation counters and prices them.
func (a *WorkersAggregator) Aggregate(ctx context.Context, period domain.BillingPeriod) (*domain.ProductUsage, error) {
	ctx = observability.WithService(ctx, domain.ProductWorkers)

	groups, err := a.source.Groups(ctx, domain.DatasetWorkersInvocations, period)
	if err != nil {
		return nil, fmt.Errorf("fetching workers invocations: %w", err)
	}

	var requests, cpuMs float64
	for _, g := range groups {
		requests += g.SumOf("requests")
		cpuMs += g.SumOf("cpuTimeUs") / microsecondsPerMs
	}

	requestRule := lookupRule(ctx, a.pricing, domain.ProductWorkers, DimRequests)
	requestCost, err := domain.OveragePerMillion(requests, requestRule.FreeLimit, requestRule.Rate)
	if err != nil {
		return nil, fmt.Errorf("pricing workers requests: %w", err)
	}

	cpuRule := lookupRule(ctx, a.pricing, domain.ProductWorkers, DimCPUTime)
	cpuCost, err := domain.OveragePerMillion(cpuMs, cpuRule.FreeLimit, cpuRule.Rate)
	if err != nil {
		return nil, fmt.Errorf("pricing workers cpu time: %w", err)
	}

	return domain.NewProductUsage(domain.ProductWorkers,
		domain.BuildMetric("Requests", requests, requestRule.FreeLimit, "requests", requestRule.RateLabel, requestCost),
		domain.BuildMetric("CPU Time", cpuMs, cpuRule.FreeLimit, "CPU-ms", cpuRule.RateLabel, cpuCost),
	), nil
}
