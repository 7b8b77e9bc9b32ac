package product

import (
	"context"
	"fmt"

	"github.com/davidbz/haku/internal/domain"
	"github.com/davidbz/haku/internal/observability"
)

// VectorizeAggregator estimates vector index cost from queried and stored
// vector dimensions.
type VectorizeAggregator struct {
	source  domain.AnalyticsSource
	pricing domain.PricingRegistry
}

// NewVectorizeAggregator creates a new Vectorize aggregator.
func NewVectorizeAggregator(source domain.AnalyticsSource, pricing domain.PricingRegistry) *VectorizeAggregator {
	return &VectorizeAggregator{source: source, pricing: pricing}
}

// Name returns the product identifier.
func (a *VectorizeAggregator) Name() string { return domain.ProductVectorize }

// Aggregate fetches vector index counters and prices them.
func (a *VectorizeAggregator) Aggregate(ctx context.Context, period domain.BillingPeriod) (*domain.ProductUsage, error) {
	ctx = observability.WithService(ctx, domain.ProductVectorize)

	queries, err := a.source.Groups(ctx, domain.DatasetVectorizeQueries, period)
	if err != nil {
		return nil, fmt.Errorf("fetching vectorize queries: %w", err)
	}

	storage, err := a.source.Groups(ctx, domain.DatasetVectorizeStorage, period)
	if err != nil {
		return nil, fmt.Errorf("fetching vectorize storage: %w", err)
	}

	var queriedDims float64
	for _, g := range queries {
		queriedDims += g.SumOf("queriedVectorDimensions")
	}

	// Stored dimensions are a storage-like level: use the period maximum.
	var storedDims float64
	for _, g := range storage {
		if d := g.MaxOf("storedVectorDimensions"); d > storedDims {
			storedDims = d
		}
	}

	queriedRule := lookupRule(ctx, a.pricing, domain.ProductVectorize, DimQueriedDims)
	queriedCost, err := domain.OveragePerMillion(queriedDims, queriedRule.FreeLimit, queriedRule.Rate)
	if err != nil {
		return nil, fmt.Errorf("pricing vectorize queried dimensions: %w", err)
	}

	storedRule := lookupRule(ctx, a.pricing, domain.ProductVectorize, DimStoredDims)
	storedCost, err := domain.OveragePerMillion(storedDims, storedRule.FreeLimit, storedRule.Rate)
	if err != nil {
		return nil, fmt.Errorf("pricing vectorize stored dimensions: %w", err)
	}

	return domain.NewProductUsage(domain.ProductVectorize,
		domain.BuildMetric("Queried Dimensions", queriedDims, queriedRule.FreeLimit, "dimensions", queriedRule.RateLabel, queriedCost),
		domain.BuildMetric("Stored Dimensions", storedDims, storedRule.FreeLimit, "dimensions", storedRule.RateLabel, storedCost),
	), nil
}
