package config

import (
	"errors"
	"os"
	"time"
)

// Config holds runtime settings for the client.
//
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - SaveDebounce: quiet period after the last edit before the profile is saved.
//   - SaveTimeout: deadline of a single remote save.
//   - DatabaseDSN: SQLite file holding the session.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	SaveDebounce        time.Duration
	SaveTimeout         time.Duration
	DatabaseDSN         string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.SaveDebounce = time.Second
	c.SaveTimeout = 10 * time.Second
	c.DatabaseDSN = "fuel.db"
	c.LogLevel = "warn"
}

func (c *Config) Validate() error {
	var errs []error
	if c.ServerEndpointAddr == "" {
		errs = append(errs, errors.New("server address is required"))
	}
	if c.SaveDebounce <= 0 {
		errs = append(errs, errors.New("save debounce must be positive"))
	}
	if c.SaveTimeout <= 0 {
		errs = append(errs, errors.New("save timeout must be positive"))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database path is required"))
	}
	return errors.Join(errs...)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
