package config

import (
	"time"

	"github.com/dankdash1/dispatch-service/internal/domain"
)

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "dispatch",
	Pass: "dispatch",
	Name: "dispatch_db",
}

// The store is the pickup point for every delivery run; the geocode
// fallback keeps dispatch total when an address city is unknown.
var defaultDispatch = Dispatch{
	SearchRadiusMiles: 10,
	ETABase:           30 * time.Minute,
	ETAPerMile:        5 * time.Minute,
	StoreLocation:     domain.Coordinate{Lat: 34.0522, Lon: -118.2437},
	GeocodeFallback:   domain.Coordinate{Lat: 34.0522, Lon: -118.2437},
	OperationTimeout:  3 * time.Second,
	AvgDeliveryFloor:  35,
}

var defaultNotify = Notify{
	Timeout: 3 * time.Second,
}

var defaultKafka = Kafka{
	Topic:   "order-events",
	GroupID: "dispatch-worker",
}

// Generous per-IP budget: a legitimate dispatch dashboard polls a few
// times a second, a flood does not.
var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       20,
	Burst:      40,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultDispatch returns the default dispatch settings.
func DefaultDispatch() Dispatch {
	return defaultDispatch
}

// DefaultNotify returns the default notification settings.
func DefaultNotify() Notify {
	return defaultNotify
}

// DefaultKafka returns the default Kafka settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRateLimit returns the default HTTP throttle settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
