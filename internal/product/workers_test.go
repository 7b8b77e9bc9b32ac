package product_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/haku/internal/domain"
	"github.com/davidbz/haku/internal/product"
)

func TestWorkersAggregator(t *testing.T) {
	tests := []struct {
		name             string
		groups           []domain.CounterGroup
		expectedRequests float64
		expectedCPUMs    float64
		expectedCost     float64
	}{
		{
			name:             "no usage yields zero metrics",
			groups:           nil,
			expectedRequests: 0,
			expectedCPUMs:    0,
			expectedCost:     0,
		},
		{
			name: "usage within free allowances",
			groups: []domain.CounterGroup{
				{
					Dimensions: map[string]string{"scriptName": "api"},
					Sum:        map[string]float64{"requests": 4_000_000, "cpuTimeUs": 8_000_000_000},
				},
			},
			expectedRequests: 4_000_000,
			expectedCPUMs:    8_000_000,
			expectedCost:     0,
		},
		{
			name: "requests over the free tier",
			groups: []domain.CounterGroup{
				{
					Dimensions: map[string]string{"scriptName": "api"},
					Sum:        map[string]float64{"requests": 12_000_000, "cpuTimeUs": 1_000_000_000},
				},
			},
			expectedRequests: 12_000_000,
			expectedCPUMs:    1_000_000,
			// 2M over at $0.30/million.
			expectedCost: 0.60,
		},
		{
			name: "counters sum across scripts",
			groups: []domain.CounterGroup{
				{
					Dimensions: map[string]string{"scriptName": "api"},
					Sum:        map[string]float64{"requests": 6_000_000, "cpuTimeUs": 500_000_000},
				},
				{
					Dimensions: map[string]string{"scriptName": "cron"},
					Sum:        map[string]float64{"requests": 5_000_000, "cpuTimeUs": 500_000_000},
				},
			},
			expectedRequests: 11_000_000,
			expectedCPUMs:    1_000_000,
			// 1M over at $0.30/million.
			expectedCost: 0.30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &stubSource{data: map[domain.Dataset][]domain.CounterGroup{
				domain.DatasetWorkersInvocations: tt.groups,
			}}
			aggregator := product.NewWorkersAggregator(source, defaultPricing(t))

			usage, err := aggregator.Aggregate(context.Background(), testPeriod())
			require.NoError(t, err)
			require.Equal(t, domain.ProductWorkers, usage.Product)
			require.Len(t, usage.Metrics, 2)

			requests := findMetric(t, usage, "Requests")
			require.InDelta(t, tt.expectedRequests, requests.Current, costTolerance)

			cpu := findMetric(t, usage, "CPU Time")
			require.InDelta(t, tt.expectedCPUMs, cpu.Current, costTolerance)

			require.InDelta(t, tt.expectedCost, usage.TotalOverageCost, costTolerance)
		})
	}
}

func TestWorkersAggregator_FetchError(t *testing.T) {
	source := &stubSource{errs: map[domain.Dataset]error{
		domain.DatasetWorkersInvocations: errors.New("analytics unavailable"),
	}}
	aggregator := product.NewWorkersAggregator(source, defaultPricing(t))

	usage, err := aggregator.Aggregate(context.Background(), testPeriod())
	require.Error(t, err)
	require.Nil(t, usage)
}
