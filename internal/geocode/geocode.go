// Package geocode resolves shipping addresses to coordinates.
//
// Resolution is a capability boundary: production deployments would sit a
// real mapping provider behind the Resolver interface. The built-in static
// resolver keeps dispatch total: an unknown address degrades to the
// configured default coordinate instead of failing the operation.
package geocode

import (
	"strings"

	"github.com/dankdash1/dispatch-service/internal/domain"
)

// Resolver turns a structured address into a coordinate. Implementations
// must not fail: best-effort resolution falls back to a default location.
type Resolver interface {
	Resolve(addr domain.Address) domain.Coordinate
}

// StaticResolver resolves by city name from a fixed lookup table.
type StaticResolver struct {
	cities   map[string]domain.Coordinate
	fallback domain.Coordinate
}

// Service area cities. Coordinates are city centroids.
var defaultCities = map[string]domain.Coordinate{
	"los angeles":   {Lat: 34.0522, Lon: -118.2437},
	"san francisco": {Lat: 37.7749, Lon: -122.4194},
	"san diego":     {Lat: 32.7157, Lon: -117.1611},
	"sacramento":    {Lat: 38.5816, Lon: -121.4944},
	"fresno":        {Lat: 36.7378, Lon: -119.7871},
}

// NewStaticResolver creates a resolver over the built-in city table with
// the given fallback coordinate for unknown cities.
func NewStaticResolver(fallback domain.Coordinate) *StaticResolver {
	return &StaticResolver{cities: defaultCities, fallback: fallback}
}

// Resolve returns the centroid of the address city, or the fallback
// coordinate when the city is unknown or empty.
func (r *StaticResolver) Resolve(addr domain.Address) domain.Coordinate {
	city := strings.ToLower(strings.TrimSpace(addr.City))
	if c, ok := r.cities[city]; ok {
		return c
	}
	return r.fallback
}

var _ Resolver = (*StaticResolver)(nil)
