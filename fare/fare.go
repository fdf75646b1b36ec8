// Package fare provides the deterministic fare quote used during ride
// request entry.
package fare

import "math"

// Schedule holds the tariff components of a fare quote.
type Schedule struct {
	Base      float64 // flat charge per ride
	PerKm     float64 // charge per kilometre of route distance
	PerMinute float64 // charge per minute of estimated travel time
}

// DefaultSchedule is the standard city tariff.
var DefaultSchedule = Schedule{
	Base:      60,
	PerKm:     12,
	PerMinute: 2,
}

// Estimate quotes a fare for the given route estimate. The multiplier is a
// demand adjustment; anything below 1.0 is treated as no adjustment. The
// result is rounded to two decimals so repeated quotes for the same inputs
// are identical.
func (s Schedule) Estimate(distanceKm, durationMin, multiplier float64) float64 {
	if distanceKm < 0 {
		distanceKm = 0
	}
	if durationMin < 0 {
		durationMin = 0
	}
	if multiplier < 1.0 {
		multiplier = 1.0
	}

	total := (s.Base + s.PerKm*distanceKm + s.PerMinute*durationMin) * multiplier
	return math.Round(total*100) / 100
}
