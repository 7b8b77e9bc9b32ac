package domain

import "context"

// PricingRule is one product dimension's tier: a free allowance plus a
// per-unit overage rate. Rules are static, process-wide configuration and
// are never mutated after registration.
type PricingRule struct {
	// FreeLimit is the included allowance in the dimension's own unit.
	// For daily allowances (Workers AI neurons) this is the per-day figure;
	// the aggregator scales it by the billing period's day count.
	FreeLimit float64

	// Rate is the overage price per billing unit (per 1M, per GB, per 100K
	// or per 1K depending on the calculator the dimension uses).
	Rate float64

	// RateLabel is the human-readable rate, e.g. "$0.30 / million requests".
	RateLabel string
}

// PricingRegistry maintains pricing rules keyed by product and dimension.
// It is injected into aggregators so pricing can be versioned and tested
// independently of fetch logic.
type PricingRegistry interface {
	// Rule returns the pricing rule for a product dimension.
	Rule(ctx context.Context, product, dimension string) (PricingRule, error)

	// RegisterRule adds a pricing rule for a product dimension.
	RegisterRule(ctx context.Context, product, dimension string, rule PricingRule) error
}
