package product

import (
	"context"
	"fmt"

	"github.com/davidbz/haku/internal/domain"
	"github.com/davidbz/haku/internal/observability"
)

// D1Aggregator estimates D1 database cost from rows read and rows written,
// summed across all databases in the account.
type D1Aggregator struct {
	source  domain.AnalyticsSource
	pricing domain.PricingRegistry
}

// NewD1Aggregator creates a new D1 aggregator.
func NewD1Aggregator(source domain.AnalyticsSource, pricing domain.PricingRegistry) *D1Aggregator {
	return &D1Aggregator{source: source, pricing: pricing}
}

// Name returns the product identifier.
func (a *D1Aggregator) Name() string { return domain.ProductD1 }

// Aggregate fetches per-database D1 counters and prices them.
func (a *D1Aggregator) Aggregate(ctx context.Context, period domain.BillingPeriod) (*domain.ProductUsage, error) {
	ctx = observability.WithService(ctx, domain.ProductD1)

	groups, err := a.source.Groups(ctx, domain.DatasetD1Analytics, period)
	if err != nil {
		return nil, fmt.Errorf("fetching d1 analytics: %w", err)
	}

	// One group per database; the product is billed on the account total.
	var rowsRead, rowsWritten float64
	for _, g := range groups {
		rowsRead += g.SumOf("rowsRead")
		rowsWritten += g.SumOf("rowsWritten")
	}

	readRule := lookupRule(ctx, a.pricing, domain.ProductD1, DimRowsRead)
	readCost, err := domain.OveragePerMillion(rowsRead, readRule.FreeLimit, readRule.Rate)
	if err != nil {
		return nil, fmt.Errorf("pricing d1 rows read: %w", err)
	}

	writeRule := lookupRule(ctx, a.pricing, domain.ProductD1, DimRowsWritten)
	writeCost, err := domain.OveragePerMillion(rowsWritten, writeRule.FreeLimit, writeRule.Rate)
	if err != nil {
		return nil, fmt.Errorf("pricing d1 rows written: %w", err)
	}

	return domain.NewProductUsage(domain.ProductD1,
		domain.BuildMetric("Rows Read", rowsRead, readRule.FreeLimit, "rows", readRule.RateLabel, readCost),
		domain.BuildMetric("Rows Written", rowsWritten, writeRule.FreeLimit, "rows", writeRule.RateLabel, writeCost),
	), nil
}
