package domain

import "time"

// CurrentBillingPeriod returns the calendar month containing now, in UTC:
// day 1 at 00:00:00.000 through the last day at 23:59:59.999.
func CurrentBillingPeriod(now time.Time) BillingPeriod {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)

	return BillingPeriod{Start: start, End: end}
}

// Days returns the number of calendar days in the period's month. Derived
// daily allowances must use this rather than a hardcoded 30 or 31.
func (p BillingPeriod) Days() int {
	// Day zero of the following month is the last day of this one.
	return time.Date(p.Start.Year(), p.Start.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
