package product

import (
	"context"
	"fmt"

	"github.com/davidbz/haku/internal/domain"
	"github.com/davidbz/haku/internal/observability"
)

// AIAggregator estimates Workers AI cost from consumed neurons. The free
// allowance is a daily quota, so the monthly limit is derived from the
// billing period's day count on every invocation rather than cached.
type AIAggregator struct {
	source  domain.AnalyticsSource
	pricing domain.PricingRegistry
}

// NewAIAggregator creates a new Workers AI aggregator.
func NewAIAggregator(source domain.AnalyticsSource, pricing domain.PricingRegistry) *AIAggregator {
	return &AIAggregator{source: source, pricing: pricing}
}

// Name returns the product identifier.
func (a *AIAggregator) Name() string { return domain.ProductAI }

// Aggregate fetches inference counters and prices them.
func (a *AIAggregator) Aggregate(ctx context.Context, period domain.BillingPeriod) (*domain.ProductUsage, error) {
	ctx = observability.WithService(ctx, domain.ProductAI)

	groups, err := a.source.Groups(ctx, domain.DatasetAIInference, period)
	if err != nil {
		return nil, fmt.Errorf("fetching ai inference: %w", err)
	}

	var neurons float64
	for _, g := range groups {
		neurons += g.SumOf("neurons")
	}

	rule := lookupRule(ctx, a.pricing, domain.ProductAI, DimNeurons)
	monthlyFree := rule.FreeLimit * float64(period.Days())

	cost, err := domain.OveragePerThousand(neurons, monthlyFree, rule.Rate)
	if err != nil {
		return nil, fmt.Errorf("pricing ai neurons: %w", err)
	}

	return domain.NewProductUsage(domain.ProductAI,
		domain.BuildMetric("Neurons", neurons, monthlyFree, "neurons", rule.RateLabel, cost),
	), nil
}
