package product_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/haku/internal/domain"
	"github.com/davidbz/haku/internal/product"
)

const costTolerance = 1e-9

// stubSource serves canned counter groups per dataset. An entry in errs
// takes priority over data for the same dataset.
type stubSource struct {
	data map[domain.Dataset][]domain.CounterGroup
	errs map[domain.Dataset]error
}

func (s *stubSource) Groups(
	_ context.Context,
	dataset domain.Dataset,
	_ domain.BillingPeriod,
) ([]domain.CounterGroup, error) {
	if err, ok := s.errs[dataset]; ok {
		return nil, err
	}
	return s.data[dataset], nil
}

func defaultPricing(t *testing.T) domain.PricingRegistry {
	t.Helper()
	registry := domain.NewInMemoryPricingRegistry()
	require.NoError(t, product.RegisterDefaultPricing(context.Background(), registry))
	return registry
}

func testPeriod() domain.BillingPeriod {
	return domain.CurrentBillingPeriod(time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC))
}

func operationsGroup(actionType string, requests float64) domain.CounterGroup {
	return domain.CounterGroup{
		Dimensions: map[string]string{"actionType": actionType},
		Sum:        map[string]float64{"requests": requests},
		Count:      requests,
	}
}

func findMetric(t *testing.T, usage *domain.ProductUsage, name string) domain.UsageMetric {
	t.Helper()
	for _, m := range usage.Metrics {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("metric %q not found in %s", name, usage.Product)
	return domain.UsageMetric{}
}
