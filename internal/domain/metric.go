package domain

// BuildMetric assembles a UsageMetric from a counter reading, its limit and a
// pre-computed overage cost. A limit of zero or below means pay-per-use with
// no quota to exceed, so the percentage is reported as 0 regardless of the
// current value.
func BuildMetric(name string, current, limit float64, unit, rateLabel string, overageCost float64) UsageMetric {
	var percentage float64
	if limit > 0 {
		percentage = current / limit * 100
	}

	return UsageMetric{
		Name:        name,
		Current:     current,
		Limit:       limit,
		Unit:        unit,
		Percentage:  percentage,
		OverageCost: overageCost,
		Rate:        rateLabel,
	}
}

// NewProductUsage builds a ProductUsage from metrics in declaration order,
// summing their overage costs.
func NewProductUsage(product string, metrics ...UsageMetric) *ProductUsage {
	var total float64
	for _, m := range metrics {
		total += m.OverageCost
	}

	return &ProductUsage{
		Product:          product,
		Metrics:          metrics,
		TotalOverageCost: total,
	}
}
