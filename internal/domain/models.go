package domain

import "time"

// Product display names, used as aggregator identifiers and as keys in
// AccountUsage.Products.
const (
	ProductWorkers   = "Workers"
	ProductR2        = "R2 Storage"
	ProductKV        = "Workers KV"
	ProductD1        = "D1 Database"
	ProductImages    = "Images"
	ProductAI        = "Workers AI"
	ProductVectorize = "Vectorize"
)

// UsageMetric is a single normalized usage reading for one billable dimension.
type UsageMetric struct {
	Name        string  `json:"name"`
	Current     float64 `json:"current"`
	Limit       float64 `json:"limit"`
	Unit        string  `json:"unit"`
	Percentage  float64 `json:"percentage"`
	OverageCost float64 `json:"overageCost"`
	Rate        string  `json:"rate,omitempty"`
}

// ProductUsage groups the metrics of one product. Metric order is the
// product's declaration order and is meaningful for display.
type ProductUsage struct {
	Product          string        `json:"product"`
	Metrics          []UsageMetric `json:"metrics"`
	TotalOverageCost float64       `json:"totalOverageCost"`
}

// ServiceError records a per-product aggregation failure without aborting
// the sibling products.
type ServiceError struct {
	Service string `json:"service"`
	Message string `json:"message"`
}

// BillingPeriod is the aggregation window: the current calendar month in UTC.
type BillingPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AccountUsage is the whole-account cost summary. Products maps each product
// name to its usage, or nil when that product's aggregation failed.
type AccountUsage struct {
	Products           map[string]*ProductUsage `json:"products"`
	Errors             []ServiceError           `json:"errors"`
	TotalEstimatedCost float64                  `json:"totalEstimatedCost"`
	BillingPeriod      BillingPeriod            `json:"billingPeriod"`
}

// CounterGroup is one pre-aggregated row from the analytics source: a set of
// dimension labels plus summed and maximum numeric fields for the period.
type CounterGroup struct {
	Dimensions map[string]string
	Sum        map[string]float64
	Max        map[string]float64
	Count      float64
}

// Dimension returns a dimension label, or "" when absent.
func (g CounterGroup) Dimension(key string) string {
	return g.Dimensions[key]
}

// SumOf returns a summed field. Absent counters read as 0: partial upstream
// data degrades to zero-valued metrics, never to an error.
func (g CounterGroup) SumOf(key string) float64 {
	return g.Sum[key]
}

// MaxOf returns a maximum field, or 0 when absent.
func (g CounterGroup) MaxOf(key string) float64 {
	return g.Max[key]
}

// Dataset identifies an analytics dataset queried for counter groups.
type Dataset string

const (
	DatasetWorkersInvocations Dataset = "workersInvocationsAdaptive"
	DatasetR2Operations       Dataset = "r2OperationsAdaptiveGroups"
	DatasetR2Storage          Dataset = "r2StorageAdaptiveGroups"
	DatasetKVOperations       Dataset = "kvOperationsAdaptiveGroups"
	DatasetKVStorage          Dataset = "kvStorageAdaptiveGroups"
	DatasetD1Analytics        Dataset = "d1AnalyticsAdaptiveGroups"
	DatasetImagesRequests     Dataset = "imagesRequestsAdaptiveGroups"
	DatasetAIInference        Dataset = "aiInferenceAdaptiveGroups"
	DatasetVectorizeQueries   Dataset = "vectorizeQueriesAdaptiveGroups"
	DatasetVectorizeStorage   Dataset = "vectorizeStorageAdaptiveGroups"
)
