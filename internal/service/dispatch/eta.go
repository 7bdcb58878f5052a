package dispatch

import "time"

// ETAFactory estimates the delivery time for a run of the given length.
type ETAFactory interface {
	EstimatedDelivery(now time.Time, distanceMiles float64) time.Time
}

type fixedRateETA struct {
	base    time.Duration
	perMile time.Duration
}

// NewETAFactory - creates an ETAFactory that estimates a fixed handling
// base plus a per-mile increment.
func NewETAFactory(base, perMile time.Duration) ETAFactory {
	if base <= 0 {
		base = 30 * time.Minute
	}
	if perMile <= 0 {
		perMile = 5 * time.Minute
	}
	return fixedRateETA{base: base, perMile: perMile}
}

// EstimatedDelivery returns now + base + perMile × distance.
func (f fixedRateETA) EstimatedDelivery(now time.Time, distanceMiles float64) time.Time {
	return now.Add(f.base + time.Duration(distanceMiles*float64(f.perMile)))
}
