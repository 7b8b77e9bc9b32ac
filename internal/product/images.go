package product

import (
	"context"
	"fmt"

	"github.com/davidbz/haku/internal/domain"
	"github.com/davidbz/haku/internal/observability"
)

// ImagesAggregator estimates image delivery cost. Images has no included
// quota: delivery is billed flat per 100k from the first image.
type ImagesAggregator struct {
	source  domain.AnalyticsSource
	pricing domain.PricingRegistry
}

// NewImagesAggregator creates a new Images aggregator.
func NewImagesAggregator(source domain.AnalyticsSource, pricing domain.PricingRegistry) *ImagesAggregator {
	return &ImagesAggregator{source: source, pricing: pricing}
}

// Name returns the product identifier.
func (a *ImagesAggregator) Name() string { return domain.ProductImages }

// Aggregate fetches image delivery counters and prices them.
func (a *ImagesAggregator) Aggregate(ctx context.Context, period domain.BillingPeriod) (*domain.ProductUsage, error) {
	ctx = observability.WithService(ctx, domain.ProductImages)

	groups, err := a.source.Groups(ctx, domain.DatasetImagesRequests, period)
	if err != nil {
		return nil, fmt.Errorf("fetching images requests: %w", err)
	}

	var delivered float64
	for _, g := range groups {
		delivered += g.SumOf("requests")
	}

	rule := lookupRule(ctx, a.pricing, domain.ProductImages, DimDelivered)
	cost, err := domain.FlatPer100K(delivered, rule.Rate)
	if err != nil {
		return nil, fmt.Errorf("pricing images delivered: %w", err)
	}

	// FreeLimit is zero here: pay-per-use, so the percentage reads as 0.
	return domain.NewProductUsage(domain.ProductImages,
		domain.BuildMetric("Images Delivered", delivered, rule.FreeLimit, "images", rule.RateLabel, cost),
	), nil
}
