package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// InMemoryPricingRegistry stores pricing rules in memory.
type InMemoryPricingRegistry struct {
	mu    sync.RWMutex
	rules map[string]PricingRule
}

// NewInMemoryPricingRegistry creates a new in-memory pricing registry.
func NewInMemoryPricingRegistry() *InMemoryPricingRegistry {
	return &InMemoryPricingRegistry{
		mu:    sync.RWMutex{},
		rules: make(map[string]PricingRule),
	}
}

// Rule retrieves the pricing rule for a product dimension.
func (r *InMemoryPricingRegistry) Rule(
	_ context.Context,
	product, dimension string,
) (PricingRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, exists := r.rules[ruleKey(product, dimension)]
	if !exists {
		return PricingRule{}, fmt.Errorf("pricing not found for %s/%s", product, dimension)
	}

	return rule, nil
}

// RegisterRule adds a pricing rule for a product dimension.
func (r *InMemoryPricingRegistry) RegisterRule(
	_ context.Context,
	product, dimension string,
	rule PricingRule,
) error {
	if product == "" {
		return errors.New("product cannot be empty")
	}
	if dimension == "" {
		return errors.New("dimension cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules[ruleKey(product, dimension)] = rule
	return nil
}

func ruleKey(product, dimension string) string {
	return product + "/" + dimension
}
