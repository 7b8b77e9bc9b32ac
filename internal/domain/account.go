package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/davidbz/haku/internal/observability"
)

// ErrMissingCredentials indicates that no account identifier was configured.
// It is checked once, before any fetch is attempted.
var ErrMissingCredentials = errors.New("account identifier is not configured")

// AccountService fans out to the registered product aggregators and combines
// their results into a whole-account cost summary. A failed aggregator
// contributes a nil product slot and one ServiceError; it never prevents the
// siblings from completing. The service holds no state between invocations.
type AccountService struct {
	accountID   string
	baseFee     float64
	events      EventPublisher
	mu          sync.Mutex
	aggregators []ProductAggregator
}

// NewAccountService creates a new account aggregation service (DI
// constructor). events may be nil to disable event publication.
func NewAccountService(accountID string, baseFee float64, events EventPublisher) *AccountService {
	return &AccountService{
		accountID:   accountID,
		baseFee:     baseFee,
		events:      events,
		aggregators: nil,
	}
}

// Register adds a product aggregator. Registration order determines the
// order of captured errors in the summary.
func (s *AccountService) Register(aggregator ProductAggregator) error {
	if aggregator == nil {
		return errors.New("aggregator cannot be nil")
	}

	name := aggregator.Name()
	if name == "" {
		return errors.New("aggregator name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.aggregators {
		if existing.Name() == name {
			return fmt.Errorf("aggregator %s already registered", name)
		}
	}

	s.aggregators = append(s.aggregators, aggregator)
	return nil
}

// branchResult wraps one aggregator's outcome as a success/failure variant
// so branches can be combined without one failure cancelling the others.
type branchResult struct {
	name  string
	usage *ProductUsage
	err   error
}

// FetchAllUsage runs every registered aggregator concurrently and returns
// the combined summary. It returns an error only for structurally missing
// credentials; partial or total upstream failure still yields a summary.
func (s *AccountService) FetchAllUsage(ctx context.Context) (*AccountUsage, error) {
	if s.accountID == "" {
		return nil, ErrMissingCredentials
	}

	period := CurrentBillingPeriod(time.Now())
	logger := observability.FromContext(ctx)

	s.mu.Lock()
	aggregators := make([]ProductAggregator, len(s.aggregators))
	copy(aggregators, s.aggregators)
	s.mu.Unlock()

	// Scatter: each branch writes only its own slot, so no locks are needed.
	results := make([]branchResult, len(aggregators))
	var wg sync.WaitGroup
	for i, aggregator := range aggregators {
		wg.Add(1)
		go func(i int, aggregator ProductAggregator) {
			defer wg.Done()
			usage, err := aggregator.Aggregate(ctx, period)
			results[i] = branchResult{
				name:  aggregator.Name(),
				usage: usage,
				err:   err,
			}
		}(i, aggregator)
	}
	wg.Wait()

	// Gather.
	summary := &AccountUsage{
		Products:           make(map[string]*ProductUsage, len(results)),
		Errors:             nil,
		TotalEstimatedCost: s.baseFee,
		BillingPeriod:      period,
	}

	for _, r := range results {
		if r.err != nil {
			summary.Products[r.name] = nil
			summary.Errors = append(summary.Errors, ServiceError{
				Service: r.name,
				Message: r.err.Error(),
			})
			logger.Warn("product aggregation failed",
				observability.String("service", r.name),
				observability.Error(r.err))
			continue
		}

		summary.Products[r.name] = r.usage
		summary.TotalEstimatedCost += r.usage.TotalOverageCost
	}

	if s.events != nil {
		s.events.Publish(ctx, "usage.aggregated", map[string]interface{}{
			"products":             len(results),
			"failures":             len(summary.Errors),
			"total_estimated_cost": summary.TotalEstimatedCost,
		})
	}

	return summary, nil
}
