package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/haku/internal/domain"
)

type stubAggregator struct {
	name      string
	aggregate func(ctx context.Context, period domain.BillingPeriod) (*domain.ProductUsage, error)
}

func (s *stubAggregator) Name() string {
	return s.name
}

func (s *stubAggregator) Aggregate(
	ctx context.Context,
	period domain.BillingPeriod,
) (*domain.ProductUsage, error) {
	return s.aggregate(ctx, period)
}

func successAggregator(name string, overageCost float64) *stubAggregator {
	return &stubAggregator{
		name: name,
		aggregate: func(_ context.Context, _ domain.BillingPeriod) (*domain.ProductUsage, error) {
			return &domain.ProductUsage{
				Product:          name,
				TotalOverageCost: overageCost,
			}, nil
		},
	}
}

func failingAggregator(name string, err error) *stubAggregator {
	return &stubAggregator{
		name: name,
		aggregate: func(_ context.Context, _ domain.BillingPeriod) (*domain.ProductUsage, error) {
			return nil, err
		},
	}
}

func TestFetchAllUsage_AllBranchesSucceed(t *testing.T) {
	service := domain.NewAccountService("acc-123", 5.00, nil)
	require.NoError(t, service.Register(successAggregator(domain.ProductWorkers, 0.30)))
	require.NoError(t, service.Register(successAggregator(domain.ProductR2, 0.075)))
	require.NoError(t, service.Register(successAggregator(domain.ProductKV, 1.00)))

	summary, err := service.FetchAllUsage(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Products, 3)
	require.Empty(t, summary.Errors)
	require.InDelta(t, 5.00+0.30+0.075+1.00, summary.TotalEstimatedCost, costTolerance)
	require.NotNil(t, summary.Products[domain.ProductR2])
	require.InDelta(t, 0.075, summary.Products[domain.ProductR2].TotalOverageCost, costTolerance)
}

func TestFetchAllUsage_OneBranchFails(t *testing.T) {
	service := domain.NewAccountService("acc-123", 5.00, nil)
	require.NoError(t, service.Register(successAggregator(domain.ProductWorkers, 0.30)))
	require.NoError(t, service.Register(failingAggregator(domain.ProductR2, errors.New("upstream timeout"))))
	require.NoError(t, service.Register(successAggregator(domain.ProductKV, 1.00)))

	summary, err := service.FetchAllUsage(context.Background())
	require.NoError(t, err)

	// The failed branch keeps its slot so the response shape is stable.
	require.Len(t, summary.Products, 3)
	require.Contains(t, summary.Products, domain.ProductR2)
	require.Nil(t, summary.Products[domain.ProductR2])

	require.Len(t, summary.Errors, 1)
	require.Equal(t, domain.ProductR2, summary.Errors[0].Service)
	require.Equal(t, "upstream timeout", summary.Errors[0].Message)

	require.InDelta(t, 5.00+0.30+1.00, summary.TotalEstimatedCost, costTolerance)
}

func TestFetchAllUsage_AllBranchesFail(t *testing.T) {
	products := []string{
		domain.ProductWorkers,
		domain.ProductR2,
		domain.ProductKV,
		domain.ProductD1,
		domain.ProductImages,
		domain.ProductAI,
		domain.ProductVectorize,
	}

	service := domain.NewAccountService("acc-123", 5.00, nil)
	for _, product := range products {
		require.NoError(t, service.Register(failingAggregator(product, errors.New("analytics unavailable"))))
	}

	summary, err := service.FetchAllUsage(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Errors, len(products))
	require.InDelta(t, 5.00, summary.TotalEstimatedCost, costTolerance)
	for _, product := range products {
		require.Contains(t, summary.Products, product)
		require.Nil(t, summary.Products[product])
	}
}

func TestFetchAllUsage_ErrorOrderFollowsRegistration(t *testing.T) {
	service := domain.NewAccountService("acc-123", 5.00, nil)
	require.NoError(t, service.Register(failingAggregator(domain.ProductWorkers, errors.New("first"))))
	require.NoError(t, service.Register(successAggregator(domain.ProductR2, 0)))
	require.NoError(t, service.Register(failingAggregator(domain.ProductKV, errors.New("second"))))

	summary, err := service.FetchAllUsage(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Errors, 2)
	require.Equal(t, domain.ProductWorkers, summary.Errors[0].Service)
	require.Equal(t, domain.ProductKV, summary.Errors[1].Service)
}

func TestFetchAllUsage_MissingAccountID(t *testing.T) {
	service := domain.NewAccountService("", 5.00, nil)
	require.NoError(t, service.Register(successAggregator(domain.ProductWorkers, 0.30)))

	summary, err := service.FetchAllUsage(context.Background())
	require.ErrorIs(t, err, domain.ErrMissingCredentials)
	require.Nil(t, summary)
}

func TestFetchAllUsage_Idempotent(t *testing.T) {
	service := domain.NewAccountService("acc-123", 5.00, nil)
	require.NoError(t, service.Register(successAggregator(domain.ProductWorkers, 0.30)))

	first, err := service.FetchAllUsage(context.Background())
	require.NoError(t, err)
	second, err := service.FetchAllUsage(context.Background())
	require.NoError(t, err)
	require.InDelta(t, first.TotalEstimatedCost, second.TotalEstimatedCost, costTolerance)
}

func TestRegister_Validation(t *testing.T) {
	service := domain.NewAccountService("acc-123", 5.00, nil)

	require.Error(t, service.Register(nil))
	require.Error(t, service.Register(&stubAggregator{name: ""}))

	require.NoError(t, service.Register(successAggregator(domain.ProductWorkers, 0)))
	require.Error(t, service.Register(successAggregator(domain.ProductWorkers, 0)))
}
