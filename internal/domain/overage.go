package domain

import "errors"

const (
	unitsPerMillion  = 1_000_000.0
	unitsPer100K     = 100_000.0
	unitsPerThousand = 1_000.0

	// Storage metrics use binary gibibytes consistently.
	bytesPerGB = 1 << 30
)

// ErrNegativeInput indicates a caller contract violation: usage counters and
// limits from the analytics source are always non-negative.
var ErrNegativeInput = errors.New("usage counters and limits cannot be negative")

// OveragePerMillion prices usage beyond a free allowance at a rate per one
// million units. Used for request, row and operation counters.
func OveragePerMillion(current, free, ratePerMillion float64) (float64, error) {
	if current < 0 || free < 0 {
		return 0, ErrNegativeInput
	}
	if current <= free {
		return 0, nil
	}
	return (current - free) / unitsPerMillion * ratePerMillion, nil
}

// OveragePerGB prices storage beyond a free allowance at a rate per GB.
// Callers convert bytes with BytesToGB first.
func OveragePerGB(currentGB, freeGB, ratePerGB float64) (float64, error) {
	if currentGB < 0 || freeGB < 0 {
		return 0, ErrNegativeInput
	}
	if currentGB <= freeGB {
		return 0, nil
	}
	return (currentGB - freeGB) * ratePerGB, nil
}

// FlatPer100K prices usage at a rate per 100,000 units with no free tier:
// billing starts from zero.
func FlatPer100K(current, ratePer100K float64) (float64, error) {
	if current < 0 {
		return 0, ErrNegativeInput
	}
	return current / unitsPer100K * ratePer100K, nil
}

// OveragePerThousand prices usage beyond a free allowance at a rate per
// 1,000 units. The allowance may itself be derived per invocation (a daily
// quota scaled by the current month's day count).
func OveragePerThousand(current, free, ratePerThousand float64) (float64, error) {
	if current < 0 || free < 0 {
		return 0, ErrNegativeInput
	}
	if current <= free {
		return 0, nil
	}
	return (current - free) / unitsPerThousand * ratePerThousand, nil
}

// BytesToGB converts a byte count to binary gigabytes (GiB).
func BytesToGB(bytes float64) float64 {
	return bytes / bytesPerGB
}
