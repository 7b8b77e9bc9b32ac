package product

import (
	"context"
	"fmt"

	"github.com/davidbz/haku/internal/domain"
)

// Dimension keys used to register and look up pricing rules.
const (
	DimRequests     = "requests"
	DimCPUTime      = "cpu_time"
	DimClassAOps    = "class_a_operations"
	DimClassBOps    = "class_b_operations"
	DimStorage      = "storage"
	DimReads        = "reads"
	DimWrites       = "writes"
	DimDeletes      = "deletes"
	DimLists        = "lists"
	DimRowsRead     = "rows_read"
	DimRowsWritten  = "rows_written"
	DimDelivered    = "images_delivered"
	DimNeurons      = "neurons"
	DimQueriedDims  = "queried_dimensions"
	DimStoredDims   = "stored_dimensions"
)

// Workers Paid plan rates. FreeLimit units match each dimension's counter
// (requests, operations, rows, neurons, dimensions) or GB for storage; the
// Workers AI allowance is per day and is scaled by the billing period.
var defaultRules = []struct {
	product   string
	dimension string
	rule      domain.PricingRule
}{
	{domain.ProductWorkers, DimRequests, domain.PricingRule{FreeLimit: 10_000_000, Rate: 0.30, RateLabel: "$0.30 / million requests"}},
	{domain.ProductWorkers, DimCPUTime, domain.PricingRule{FreeLimit: 30_000_000, Rate: 0.02, RateLabel: "$0.02 / million CPU-ms"}},

	{domain.ProductR2, DimClassAOps, domain.PricingRule{FreeLimit: 1_000_000, Rate: 4.50, RateLabel: "$4.50 / million class A"}},
	{domain.ProductR2, DimClassBOps, domain.PricingRule{FreeLimit: 10_000_000, Rate: 0.36, RateLabel: "$0.36 / million class B"}},
	{domain.ProductR2, DimStorage, domain.PricingRule{FreeLimit: 10, Rate: 0.015, RateLabel: "$0.015 / GB-month"}},

	{domain.ProductKV, DimReads, domain.PricingRule{FreeLimit: 10_000_000, Rate: 0.50, RateLabel: "$0.50 / million reads"}},
	{domain.ProductKV, DimWrites, domain.PricingRule{FreeLimit: 1_000_000, Rate: 5.00, RateLabel: "$5.00 / million writes"}},
	{domain.ProductKV, DimDeletes, domain.PricingRule{FreeLimit: 1_000_000, Rate: 5.00, RateLabel: "$5.00 / million deletes"}},
	{domain.ProductKV, DimLists, domain.PricingRule{FreeLimit: 1_000_000, Rate: 5.00, RateLabel: "$5.00 / million lists"}},
	{domain.ProductKV, DimStorage, domain.PricingRule{FreeLimit: 1, Rate: 0.50, RateLabel: "$0.50 / GB-month"}},

	{domain.ProductD1, DimRowsRead, domain.PricingRule{FreeLimit: 25_000_000_000, Rate: 0.001, RateLabel: "$0.001 / million rows read"}},
	{domain.ProductD1, DimRowsWritten, domain.PricingRule{FreeLimit: 50_000_000, Rate: 1.00, RateLabel: "$1.00 / million rows written"}},

	{domain.ProductImages, DimDelivered, domain.PricingRule{FreeLimit: 0, Rate: 1.00, RateLabel: "$1.00 / 100k delivered"}},

	{domain.ProductAI, DimNeurons, domain.PricingRule{FreeLimit: 10_000, Rate: 0.011, RateLabel: "$0.011 / 1k neurons"}},

	{domain.ProductVectorize, DimQueriedDims, domain.PricingRule{FreeLimit: 30_000_000, Rate: 0.01, RateLabel: "$0.01 / million queried dimensions"}},
	{domain.ProductVectorize, DimStoredDims, domain.PricingRule{FreeLimit: 5_000_000, Rate: 0.0005, RateLabel: "$0.05 / 100M stored dimensions"}},
}

// RegisterDefaultPricing registers the Workers Paid plan rates with the
// registry.
func RegisterDefaultPricing(ctx context.Context, registry domain.PricingRegistry) error {
	for _, r := range defaultRules {
		if err := registry.RegisterRule(ctx, r.product, r.dimension, r.rule); err != nil {
			return fmt.Errorf("failed to register pricing for %s/%s: %w", r.product, r.dimension, err)
		}
	}

	return nil
}
