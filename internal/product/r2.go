package product

import (
	"context"
	"fmt"

	"github.com/davidbz/haku/internal/domain"
	"github.com/davidbz/haku/internal/observability"
)

const (
	bucketClassA = "class_a"
	bucketClassB = "class_b"
)

// R2 operation classes. An actionType absent from both sets is dropped into
// the unclassified sink.
var (
	r2ClassAActions = map[string]bool{
		"PutObject":                        true,
		"CopyObject":                       true,
		"CompleteMultipartUpload":          true,
		"CreateMultipartUpload":            true,
		"UploadPart":                       true,
		"UploadPartCopy":                   true,
		"ListMultipartUploads":             true,
		"ListParts":                        true,
		"ListObjects":                      true,
		"PutBucket":                        true,
		"ListBuckets":                      true,
		"PutBucketEncryption":              true,
		"PutBucketCors":                    true,
		"PutBucketLifecycleConfiguration":  true,
		"LifecycleStorageTierTransition":   true,
	}

	r2ClassBActions = map[string]bool{
		"GetObject":                        true,
		"HeadObject":                       true,
		"HeadBucket":                       true,
		"UsageSummary":                     true,
		"GetBucketEncryption":              true,
		"GetBucketLocation":                true,
		"GetBucketCors":                    true,
		"GetBucketLifecycleConfiguration":  true,
	}
)

var r2Buckets = []bucketRule{
	{bucket: bucketClassA, match: func(action string) bool { return r2ClassAActions[action] }},
	{bucket: bucketClassB, match: func(action string) bool { return r2ClassBActions[action] }},
}

// R2Aggregator estimates R2 object storage cost: class A operations, class B
// operations and stored payload bytes.
type R2Aggregator struct {
	source  domain.AnalyticsSource
	pricing domain.PricingRegistry
}

// NewR2Aggregator creates a new R2 aggregator.
func NewR2Aggregator(source domain.AnalyticsSource, pricing domain.PricingRegistry) *R2Aggregator {
	return &R2Aggregator{source: source, pricing: pricing}
}

// Name returns the product identifier.
func (a *R2Aggregator) Name() string { return domain.ProductR2 }

// Aggregate fetches R2 operation and storage counters and prices them.
func (a *R2Aggregator) Aggregate(ctx context.Context, period domain.BillingPeriod) (*domain.ProductUsage, error) {
	ctx = observability.WithService(ctx, domain.ProductR2)

	operations, err := a.source.Groups(ctx, domain.DatasetR2Operations, period)
	if err != nil {
		return nil, fmt.Errorf("fetching r2 operations: %w", err)
	}

	storage, err := a.source.Groups(ctx, domain.DatasetR2Storage, period)
	if err != nil {
		return nil, fmt.Errorf("fetching r2 storage: %w", err)
	}

	buckets, droppedOps, droppedGroups := classifyGroups(operations, "requests", r2Buckets)
	reportDropped(ctx, domain.ProductR2, droppedOps, droppedGroups)

	// Storage is a point-in-time maximum, not a sum over the period.
	var payloadBytes float64
	for _, g := range storage {
		if b := g.MaxOf("payloadSize"); b > payloadBytes {
			payloadBytes = b
		}
	}
	storageGB := domain.BytesToGB(payloadBytes)

	classARule := lookupRule(ctx, a.pricing, domain.ProductR2, DimClassAOps)
	classACost, err := domain.OveragePerMillion(buckets[bucketClassA], classARule.FreeLimit, classARule.Rate)
	if err != nil {
		return nil, fmt.Errorf("pricing r2 class A operations: %w", err)
	}

	classBRule := lookupRule(ctx, a.pricing, domain.ProductR2, DimClassBOps)
	classBCost, err := domain.OveragePerMillion(buckets[bucketClassB], classBRule.FreeLimit, classBRule.Rate)
	if err != nil {
		return nil, fmt.Errorf("pricing r2 class B operations: %w", err)
	}

	storageRule := lookupRule(ctx, a.pricing, domain.ProductR2, DimStorage)
	storageCost, err := domain.OveragePerGB(storageGB, storageRule.FreeLimit, storageRule.Rate)
	if err != nil {
		return nil, fmt.Errorf("pricing r2 storage: %w", err)
	}

	return domain.NewProductUsage(domain.ProductR2,
		domain.BuildMetric("Class A Operations", buckets[bucketClassA], classARule.FreeLimit, "operations", classARule.RateLabel, classACost),
		domain.BuildMetric("Class B Operations", buckets[bucketClassB], classBRule.FreeLimit, "operations", classBRule.RateLabel, classBCost),
		domain.BuildMetric("Storage", storageGB, storageRule.FreeLimit, "GB", storageRule.RateLabel, storageCost),
	), nil
}
