package product_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/haku/internal/domain"
	"github.com/davidbz/haku/internal/product"
)

func TestVectorizeAggregator(t *testing.T) {
	source := &stubSource{data: map[domain.Dataset][]domain.CounterGroup{
		domain.DatasetVectorizeQueries: {
			{Sum: map[string]float64{"queriedVectorDimensions": 20_000_000}},
			{Sum: map[string]float64{"queriedVectorDimensions": 15_000_000}},
		},
		domain.DatasetVectorizeStorage: {
			{Max: map[string]float64{"storedVectorDimensions": 4_000_000}},
			{Max: map[string]float64{"storedVectorDimensions": 6_000_000}},
		},
	}}
	aggregator := product.NewVectorizeAggregator(source, defaultPricing(t))

	usage, err := aggregator.Aggregate(context.Background(), testPeriod())
	require.NoError(t, err)
	require.Equal(t, domain.ProductVectorize, usage.Product)
	require.Len(t, usage.Metrics, 2)

	// Queried dimensions sum: 35M against the 30M allowance at $0.01/million.
	queried := findMetric(t, usage, "Queried Dimensions")
	require.InDelta(t, 35_000_000, queried.Current, costTolerance)
	require.InDelta(t, 0.05, queried.OverageCost, costTolerance)

	// Stored dimensions are a level: 6M maximum, 1M over at $0.0005/million.
	stored := findMetric(t, usage, "Stored Dimensions")
	require.InDelta(t, 6_000_000, stored.Current, costTolerance)
	require.InDelta(t, 0.0005, stored.OverageCost, costTolerance)

	require.InDelta(t, 0.0505, usage.TotalOverageCost, costTolerance)
}

func TestVectorizeAggregator_NoUsage(t *testing.T) {
	source := &stubSource{data: map[domain.Dataset][]domain.CounterGroup{}}
	aggregator := product.NewVectorizeAggregator(source, defaultPricing(t))

	usage, err := aggregator.Aggregate(context.Background(), testPeriod())
	require.NoError(t, err)
	require.InDelta(t, 0, findMetric(t, usage, "Queried Dimensions").Current, costTolerance)
	require.InDelta(t, 0, findMetric(t, usage, "Stored Dimensions").Current, costTolerance)
	require.InDelta(t, 0, usage.TotalOverageCost, costTolerance)
}

func TestVectorizeAggregator_FetchErrors(t *testing.T) {
	for _, dataset := range []domain.Dataset{domain.DatasetVectorizeQueries, domain.DatasetVectorizeStorage} {
		t.Run(string(dataset), func(t *testing.T) {
			source := &stubSource{errs: map[domain.Dataset]error{
				dataset: errors.New("analytics unavailable"),
			}}
			aggregator := product.NewVectorizeAggregator(source, defaultPricing(t))

			usage, err := aggregator.Aggregate(context.Background(), testPeriod())
			require.Error(t, err)
			require.Nil(t, usage)
		})
	}
}

func TestRegisterDefaultPricing_CoversAllDimensions(t *testing.T) {
	ctx := context.Background()
	registry := domain.NewInMemoryPricingRegistry()
	require.NoError(t, product.RegisterDefaultPricing(ctx, registry))

	lookups := []struct {
		product   string
		dimension string
	}{
		{domain.ProductWorkers, product.DimRequests},
		{domain.ProductWorkers, product.DimCPUTime},
		{domain.ProductR2, product.DimClassAOps},
		{domain.ProductR2, product.DimClassBOps},
		{domain.ProductR2, product.DimStorage},
		{domain.ProductKV, product.DimReads},
		{domain.ProductKV, product.DimWrites},
		{domain.ProductKV, product.DimDeletes},
		{domain.ProductKV, product.DimLists},
		{domain.ProductKV, product.DimStorage},
		{domain.ProductD1, product.DimRowsRead},
		{domain.ProductD1, product.DimRowsWritten},
		{domain.ProductImages, product.DimDelivered},
		{domain.ProductAI, product.DimNeurons},
		{domain.ProductVectorize, product.DimQueriedDims},
		{domain.ProductVectorize, product.DimStoredDims},
	}

	for _, l := range lookups {
		_, err := registry.Rule(ctx, l.product, l.dimension)
		require.NoError(t, err, "%s/%s", l.product, l.dimension)
	}
}
