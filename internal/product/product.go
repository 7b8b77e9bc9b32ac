// Package product contains one aggregator per billable Cloudflare product.
// Each aggregator consumes its own analytics datasets, classifies and sums
// the raw counter groups, and prices each dimension bucket through the
// injected pricing registry. Aggregators are independent of one another.
package product

import (
	"context"

	"github.com/davidbz/haku/internal/domain"
	"github.com/davidbz/haku/internal/observability"
)

// lookupRule fetches a pricing rule, degrading to a zero rule (no allowance,
// no cost) when the dimension is not registered. An unknown dimension should
// surface as a free metric, not abort the product's aggregation.
func lookupRule(ctx context.Context, pricing domain.PricingRegistry, product, dimension string) domain.PricingRule {
	rule, err := pricing.Rule(ctx, product, dimension)
	if err != nil {
		observability.FromContext(ctx).Warn("pricing rule missing, metric will be free",
			observability.String("product", product),
			observability.String("dimension", dimension))
		return domain.PricingRule{}
	}
	return rule
}

// bucketRule pairs an ordered classification predicate with its target
// bucket. Rules are evaluated in priority order; the first match wins.
type bucketRule struct {
	bucket string
	match  func(actionType string) bool
}

// classifyGroups sums a counter field into buckets chosen by the ordered
// rules. Groups matching no rule land in an explicit unclassified sink and
// are reported via the returned drop counts (operations, groups).
func classifyGroups(groups []domain.CounterGroup, field string, rules []bucketRule) (map[string]float64, float64, int) {
	buckets := make(map[string]float64, len(rules))
	for _, r := range rules {
		buckets[r.bucket] = 0
	}

	var droppedOps float64
	var droppedGroups int

	for _, g := range groups {
		action := g.Dimension("actionType")
		matched := false
		for _, r := range rules {
			if r.match(action) {
				buckets[r.bucket] += g.SumOf(field)
				matched = true
				break
			}
		}
		if !matched {
			droppedOps += g.SumOf(field)
			droppedGroups++
		}
	}

	return buckets, droppedOps, droppedGroups
}

// reportDropped surfaces operations that matched no classification bucket.
// They stay uncounted (mirroring the upstream dashboards, which likely
// undercount cost here) but are never silently discarded.
func reportDropped(ctx context.Context, product string, droppedOps float64, droppedGroups int) {
	if droppedGroups == 0 {
		return
	}
	observability.FromContext(ctx).Warn("unclassified operations dropped from cost estimate",
		observability.String("product", product),
		observability.Float64("dropped_operations", droppedOps),
		observability.Int("dropped_groups", droppedGroups))
}
