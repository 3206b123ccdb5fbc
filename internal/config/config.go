// Package config loads process settings from the environment, with an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable of the server
type Config struct {
	// Server
	Port     string
	LogLevel string

	// Auth
	JWTSecret string
	JWTTTL    time.Duration
	DevLogin  bool

	// Auction engine
	MinBidIncrement      int64
	LockTimeout          time.Duration
	SweepInterval        time.Duration
	EndingSoonWindow     time.Duration
	AllowEarlyAcceptance bool

	// Real-time channel
	HeartbeatInterval    time.Duration
	HeartbeatMissedLimit int
	SubscriberBuffer     int

	SeedDemoData bool
}

// Defaults returns the configuration used when nothing is set
func Defaults() Config {
	return Config{
		Port:                 "8080",
		LogLevel:             "info",
		JWTSecret:            "dev-secret-change-me",
		JWTTTL:               24 * time.Hour,
		DevLogin:             true,
		MinBidIncrement:      50,
		LockTimeout:          2 * time.Second,
		SweepInterval:        time.Second,
		EndingSoonWindow:     time.Hour,
		AllowEarlyAcceptance: true,
		HeartbeatInterval:    30 * time.Second,
		HeartbeatMissedLimit: 3,
		SubscriberBuffer:     64,
		SeedDemoData:         true,
	}
}

// Load reads .env files (a missing file is fine) and then the environment
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load env file: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from any key lookup, starting from Defaults
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Defaults()
	p := parser{lookup: lookup}

	p.str("PORT", &cfg.Port)
	p.str("LOG_LEVEL", &cfg.LogLevel)
	p.str("JWT_SECRET", &cfg.JWTSecret)
	p.duration("JWT_TTL", &cfg.JWTTTL)
	p.boolean("DEV_LOGIN", &cfg.DevLogin)
	p.int64("MIN_BID_INCREMENT", &cfg.MinBidIncrement)
	p.duration("LOCK_TIMEOUT", &cfg.LockTimeout)
	p.duration("SWEEP_INTERVAL", &cfg.SweepInterval)
	p.duration("ENDING_SOON_WINDOW", &cfg.EndingSoonWindow)
	p.boolean("ALLOW_EARLY_ACCEPTANCE", &cfg.AllowEarlyAcceptance)
	p.duration("HEARTBEAT_INTERVAL", &cfg.HeartbeatInterval)
	p.integer("HEARTBEAT_MISSED_LIMIT", &cfg.HeartbeatMissedLimit)
	p.integer("SUBSCRIBER_BUFFER", &cfg.SubscriberBuffer)
	p.boolean("SEED_DEMO_DATA", &cfg.SeedDemoData)

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with. An increment below one
// would allow two bids of the same amount, so it is refused outright.
func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("config: PORT must not be empty"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("config: JWT_SECRET must not be empty"))
	}
	if c.MinBidIncrement < 1 {
		errs = append(errs, fmt.Errorf("config: MIN_BID_INCREMENT must be at least 1, got %d", c.MinBidIncrement))
	}
	for name, d := range map[string]time.Duration{
		"JWT_TTL":            c.JWTTTL,
		"LOCK_TIMEOUT":       c.LockTimeout,
		"SWEEP_INTERVAL":     c.SweepInterval,
		"ENDING_SOON_WINDOW": c.EndingSoonWindow,
		"HEARTBEAT_INTERVAL": c.HeartbeatInterval,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("config: %s must be positive, got %s", name, d))
		}
	}
	if c.HeartbeatMissedLimit < 1 {
		errs = append(errs, fmt.Errorf("config: HEARTBEAT_MISSED_LIMIT must be at least 1, got %d", c.HeartbeatMissedLimit))
	}
	if c.SubscriberBuffer < 1 {
		errs = append(errs, fmt.Errorf("config: SUBSCRIBER_BUFFER must be at least 1, got %d", c.SubscriberBuffer))
	}
	return errors.Join(errs...)
}

type parser struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (p *parser) raw(key string) (string, bool) {
	v, ok := p.lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (p *parser) str(key string, dst *string) {
	if v, ok := p.raw(key); ok {
		*dst = v
	}
}

func (p *parser) duration(key string, dst *time.Duration) {
	v, ok := p.raw(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("config: %s: %w", key, err))
		return
	}
	*dst = d
}

func (p *parser) boolean(key string, dst *bool) {
	v, ok := p.raw(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("config: %s: %w", key, err))
		return
	}
	*dst = b
}

func (p *parser) int64(key string, dst *int64) {
	v, ok := p.raw(key)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("config: %s: %w", key, err))
		return
	}
	*dst = n
}

func (p *parser) integer(key string, dst *int) {
	n := int64(*dst)
	p.int64(key, &n)
	*dst = int(n)
}
