package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/davidbz/haku/internal/domain"
	"github.com/davidbz/haku/internal/observability"
)

const (
	bucketReads   = "reads"
	bucketWrites  = "writes"
	bucketDeletes = "deletes"
	bucketLists   = "lists"
)

// KV action types form an open-ended label set, so classification is a
// best-effort substring match evaluated in priority order. Anything matching
// none of the patterns is dropped and reported.
var kvBuckets = []bucketRule{
	{bucket: bucketReads, match: containsAny("read", "get")},
	{bucket: bucketWrites, match: containsAny("write", "put")},
	{bucket: bucketDeletes, match: containsAny("delete")},
	{bucket: bucketLists, match: containsAny("list")},
}

func containsAny(keywords ...string) func(string) bool {
	return func(actionType string) bool {
		lower := strings.ToLower(actionType)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}
}

// KVAggregator estimates Workers KV cost: read/write/delete/list operations
// plus stored bytes.
type KVAggregator struct {
	source  domain.AnalyticsSource
	pricing domain.PricingRegistry
}

// NewKVAggregator creates a new Workers KV aggregator.
func NewKVAggregator(source domain.AnalyticsSource, pricing domain.PricingRegistry) *KVAggregator {
	return &KVAggregator{source: source, pricing: pricing}
}

// Name returns the product identifier.
func (a *KVAggregator) Name() string { return domain.ProductKV }

// Aggregate fetches KV operation and storage counters and prices them.
func (a *KVAggregator) Aggregate(ctx context.Context, period domain.BillingPeriod) (*domain.ProductUsage, error) {
	ctx = observability.WithService(ctx, domain.ProductKV)

	operations, err := a.source.Groups(ctx, domain.DatasetKVOperations, period)
	if err != nil {
		return nil, fmt.Errorf("fetching kv operations: %w", err)
	}

	storage, err := a.source.Groups(ctx, domain.DatasetKVStorage, period)
	if err != nil {
		return nil, fmt.Errorf("fetching kv storage: %w", err)
	}

	buckets, droppedOps, droppedGroups := classifyGroups(operations, "requests", kvBuckets)
	reportDropped(ctx, domain.ProductKV, droppedOps, droppedGroups)

	var storedBytes float64
	for _, g := range storage {
		if b := g.MaxOf("byteCount"); b > storedBytes {
			storedBytes = b
		}
	}
	storageGB := domain.BytesToGB(storedBytes)

	type opMetric struct {
		name      string
		bucket    string
		dimension string
	}
	opMetrics := []opMetric{
		{"Reads", bucketReads, DimReads},
		{"Writes", bucketWrites, DimWrites},
		{"Deletes", bucketDeletes, DimDeletes},
		{"Lists", bucketLists, DimLists},
	}

	metrics := make([]domain.UsageMetric, 0, len(opMetrics)+1)
	for _, m := range opMetrics {
		rule := lookupRule(ctx, a.pricing, domain.ProductKV, m.dimension)
		cost, costErr := domain.OveragePerMillion(buckets[m.bucket], rule.FreeLimit, rule.Rate)
		if costErr != nil {
			return nil, fmt.Errorf("pricing kv %s: %w", m.bucket, costErr)
		}
		metrics = append(metrics, domain.BuildMetric(m.name, buckets[m.bucket], rule.FreeLimit, "operations", rule.RateLabel, cost))
	}

	storageRule := lookupRule(ctx, a.pricing, domain.ProductKV, DimStorage)
	storageCost, err := domain.OveragePerGB(storageGB, storageRule.FreeLimit, storageRule.Rate)
	if err != nil {
		return nil, fmt.Errorf("pricing kv storage: %w", err)
	}
	metrics = append(metrics, domain.BuildMetric("Storage", storageGB, storageRule.FreeLimit, "GB", storageRule.RateLabel, storageCost))

	return domain.NewProductUsage(domain.ProductKV, metrics...), nil
}
