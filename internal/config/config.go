package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/dankdash1/dispatch-service/internal/domain"
)

// Config stores dispatch service settings.
type Config struct {
	Port      int
	DB        DB
	Dispatch  Dispatch
	Notify    Notify
	Kafka     Kafka
	RateLimit RateLimit
}

// DB stores relational storage settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a postgres connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Dispatch stores the tunables of the assignment engine.
type Dispatch struct {
	SearchRadiusMiles float64
	ETABase           time.Duration
	ETAPerMile        time.Duration
	StoreLocation     domain.Coordinate
	GeocodeFallback   domain.Coordinate
	OperationTimeout  time.Duration
	AvgDeliveryFloor  float64 // reported average when nothing was delivered today
}

// Notify stores the outbound notification webhook settings. Empty
// endpoints disable the corresponding channel.
type Notify struct {
	EmailEndpoint string
	SMSEndpoint   string
	Timeout       time.Duration
}

// Kafka stores order-event consumer settings. No brokers means the
// worker has nothing to do and refuses to start.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// RateLimit stores the per-client HTTP throttle settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64 // tokens per second per client
	Burst      int
	TTL        time.Duration // idle client buckets are dropped after this
	MaxBuckets int
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	fs := pflag.NewFlagSet("dispatch", pflag.ContinueOnError)
	return load(fs, os.Args[1:])
}

func load(fs *pflag.FlagSet, args []string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      DefaultPort(),
		DB:        DefaultDB(),
		Dispatch:  DefaultDispatch(),
		Notify:    DefaultNotify(),
		Kafka:     DefaultKafka(),
		RateLimit: DefaultRateLimit(),
	}

	var errs []error

	setIntFromEnv(&cfg.Port, "PORT", &errs)

	setStringFromEnv(&cfg.DB.Host, "DB_HOST")
	setStringFromEnv(&cfg.DB.Port, "DB_PORT")
	setStringFromEnv(&cfg.DB.User, "DB_USER")
	setStringFromEnv(&cfg.DB.Pass, "DB_PASS")
	setStringFromEnv(&cfg.DB.Name, "DB_NAME")

	setFloatFromEnv(&cfg.Dispatch.SearchRadiusMiles, "DISPATCH_RADIUS_MILES", &errs)
	setDurationFromEnv(&cfg.Dispatch.ETABase, "DISPATCH_ETA_BASE", &errs)
	setDurationFromEnv(&cfg.Dispatch.ETAPerMile, "DISPATCH_ETA_PER_MILE", &errs)
	setCoordinateFromEnv(&cfg.Dispatch.StoreLocation, "DISPATCH_STORE_LOCATION", &errs)
	setCoordinateFromEnv(&cfg.Dispatch.GeocodeFallback, "DISPATCH_GEOCODE_FALLBACK", &errs)
	setDurationFromEnv(&cfg.Dispatch.OperationTimeout, "DISPATCH_OP_TIMEOUT", &errs)

	setStringFromEnv(&cfg.Notify.EmailEndpoint, "NOTIFY_EMAIL_ENDPOINT")
	setStringFromEnv(&cfg.Notify.SMSEndpoint, "NOTIFY_SMS_ENDPOINT")
	setDurationFromEnv(&cfg.Notify.Timeout, "NOTIFY_TIMEOUT", &errs)

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitAndTrim(v)
	}
	setStringFromEnv(&cfg.Kafka.Topic, "KAFKA_TOPIC")
	setStringFromEnv(&cfg.Kafka.GroupID, "KAFKA_GROUP")

	setBoolFromEnv(&cfg.RateLimit.Enabled, "RATE_LIMIT_ENABLED", &errs)
	setFloatFromEnv(&cfg.RateLimit.Rate, "RATE_LIMIT_RATE", &errs)
	setIntFromEnv(&cfg.RateLimit.Burst, "RATE_LIMIT_BURST", &errs)
	setDurationFromEnv(&cfg.RateLimit.TTL, "RATE_LIMIT_TTL", &errs)
	setIntFromEnv(&cfg.RateLimit.MaxBuckets, "RATE_LIMIT_MAX_BUCKETS", &errs)

	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", cfg.Port))
	}
	if cfg.Dispatch.SearchRadiusMiles <= 0 {
		errs = append(errs, fmt.Errorf("DISPATCH_RADIUS_MILES must be > 0"))
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.Rate <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RATE must be > 0 when rate limiting is enabled"))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func setStringFromEnv(target *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*target = v
	}
}

func setIntFromEnv(target *int, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = i
	}
}

func setBoolFromEnv(target *bool, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = b
	}
}

func setFloatFromEnv(target *float64, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = f
	}
}

func setDurationFromEnv(target *time.Duration, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = d
	}
}

func setCoordinateFromEnv(target *domain.Coordinate, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		c, err := domain.ParseCoordinate(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = c
	}
}

func splitAndTrim(v string) []string {
	raw := strings.Split(v, ",")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
