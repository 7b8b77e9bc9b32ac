package product_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/haku/internal/domain"
	"github.com/davidbz/haku/internal/product"
)

func d1Group(database string, rowsRead, rowsWritten float64) domain.CounterGroup {
	return domain.CounterGroup{
		Dimensions: map[string]string{"databaseId": database},
		Sum:        map[string]float64{"rowsRead": rowsRead, "rowsWritten": rowsWritten},
	}
}

func TestD1Aggregator(t *testing.T) {
	tests := []struct {
		name                string
		groups              []domain.CounterGroup
		expectedRowsRead    float64
		expectedRowsWritten float64
		expectedCost        float64
	}{
		{
			name:   "no usage yields zero metrics",
			groups: nil,
		},
		{
			name: "rows sum across databases",
			groups: []domain.CounterGroup{
				d1Group("db-1", 1_000_000, 200_000),
				d1Group("db-2", 3_000_000, 300_000),
			},
			expectedRowsRead:    4_000_000,
			expectedRowsWritten: 500_000,
			expectedCost:        0,
		},
		{
			name: "writes over the free tier",
			groups: []domain.CounterGroup{
				d1Group("db-1", 100, 52_000_000),
			},
			expectedRowsRead:    100,
			expectedRowsWritten: 52_000_000,
			// 2M over at $1.00/million.
			expectedCost: 2.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &stubSource{data: map[domain.Dataset][]domain.CounterGroup{
				domain.DatasetD1Analytics: tt.groups,
			}}
			aggregator := product.NewD1Aggregator(source, defaultPricing(t))

			usage, err := aggregator.Aggregate(context.Background(), testPeriod())
			require.NoError(t, err)
			require.Equal(t, domain.ProductD1, usage.Product)
			require.Len(t, usage.Metrics, 2)

			require.InDelta(t, tt.expectedRowsRead, findMetric(t, usage, "Rows Read").Current, costTolerance)
			require.InDelta(t, tt.expectedRowsWritten, findMetric(t, usage, "Rows Written").Current, costTolerance)
			require.InDelta(t, tt.expectedCost, usage.TotalOverageCost, costTolerance)
		})
	}
}

func TestD1Aggregator_FetchError(t *testing.T) {
	source := &stubSource{errs: map[domain.Dataset]error{
		domain.DatasetD1Analytics: errors.New("analytics unavailable"),
	}}
	aggregator := product.NewD1Aggregator(source, defaultPricing(t))

	usage, err := aggregator.Aggregate(context.Background(), testPeriod())
	require.Error(t, err)
	require.Nil(t, usage)
}
