package dispatch

import (
	"sort"

	"github.com/dankdash1/dispatch-service/internal/domain"
	"github.com/dankdash1/dispatch-service/internal/geo"
)

// DefaultSearchRadiusMiles bounds the nearest-driver search when no
// radius is configured.
const DefaultSearchRadiusMiles = 10.0

// Candidate is an eligible driver with their distance to the destination.
type Candidate struct {
	Driver        domain.Driver
	DistanceMiles float64
}

// RankCandidates filters the available drivers down to those with a
// known location inside the radius and orders them nearest-first.
// The sort is stable, so ties resolve to the earlier driver in the
// input list and the result is deterministic for deterministic input.
func RankCandidates(dest domain.Coordinate, radiusMiles float64, drivers []domain.Driver) []Candidate {
	if radiusMiles <= 0 {
		radiusMiles = DefaultSearchRadiusMiles
	}

	out := make([]Candidate, 0, len(drivers))
	for _, d := range drivers {
		if d.Location == nil {
			continue
		}
		dist := geo.Distance(*d.Location, dest)
		if dist > radiusMiles {
			continue
		}
		out = append(out, Candidate{Driver: d, DistanceMiles: dist})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceMiles < out[j].DistanceMiles
	})
	return out
}
