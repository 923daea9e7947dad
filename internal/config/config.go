// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/logging"
)

// EnvPrefix prefixes every environment variable, e.g. ALMANAC_OBSERVER_LAT.
const EnvPrefix = "ALMANAC"

// DefaultEnvFile is loaded by Load when present.
const DefaultEnvFile = ".env"

var (
	ErrInvalidLatitude  = errors.New("latitude must be within [-90, 90]")
	ErrInvalidLongitude = errors.New("longitude must be within [-180, 180]")
	ErrInvalidHeight    = errors.New("height must not be negative")
	ErrInvalidTimezone  = errors.New("unknown time zone")
	ErrInvalidRateLimit = errors.New("rate limit must be positive")
)

// Config is the full application configuration.
type Config struct {
	Observer ObserverConfig `envconfig:"OBSERVER"`
	Log      logging.Config `envconfig:"LOG"`
	Server   ServerConfig   `envconfig:"SERVER"`

	// Timezone is an IANA zone name used to display times.
	Timezone string `envconfig:"TIMEZONE" default:"Local"`

	// UTCMidnight starts the moon rise/set day at UTC midnight instead of
	// local midnight.
	UTCMidnight bool `envconfig:"UTC_MIDNIGHT" default:"false"`
}

// ObserverConfig is the default observer location.
type ObserverConfig struct {
	Name   string  `envconfig:"NAME" default:"Dundee"`
	Lat    float64 `envconfig:"LAT" default:"56.4578"`
	Lon    float64 `envconfig:"LON" default:"-3.0219"`
	Height float64 `envconfig:"HEIGHT" default:"0"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"5s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	RateLimit       float64       `envconfig:"RATE_LIMIT" default:"20"` // requests per second
	RateBurst       int           `envconfig:"RATE_BURST" default:"40"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"*"`
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables already set, then processes the environment.
// An empty envFile skips the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return cfg, nil
}

// Validate checks values the engine itself does not guard.
func (c *Config) Validate() error {
	if c.Observer.Lat < -90 || c.Observer.Lat > 90 {
		return fmt.Errorf("%w: %v", ErrInvalidLatitude, c.Observer.Lat)
	}
	if c.Observer.Lon < -180 || c.Observer.Lon > 180 {
		return fmt.Errorf("%w: %v", ErrInvalidLongitude, c.Observer.Lon)
	}
	if c.Observer.Height < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidHeight, c.Observer.Height)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Server.RateLimit <= 0 || c.Server.RateBurst <= 0 {
		return fmt.Errorf("%w: %v/s burst %d", ErrInvalidRateLimit, c.Server.RateLimit, c.Server.RateBurst)
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidTimezone, c.Timezone, err)
	}
	return loc, nil
}

// DefaultObserver returns the configured observer.
func (c *Config) DefaultObserver() almanac.Observer {
	return almanac.NewObserver(c.Observer.Name, c.Observer.Lat, c.Observer.Lon, c.Observer.Height)
}
