// Package config holds the settings the server reads once at startup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvHost            = "HOST"
	EnvPort            = "PORT"
	EnvDebug           = "DEBUG"
	EnvTrustedProxies  = "TRUSTED_PROXIES"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
	EnvRuntimeInterval = "RUNTIME_INTERVAL"
)

// Defaults applied when a variable is unset or empty.
const (
	DefaultHost            = "127.0.0.1"
	DefaultPort            = 8080
	DefaultShutdownTimeout = 20 * time.Second
	DefaultRuntimeInterval = time.Second
)

var (
	// ErrInvalidPort is returned when PORT is not a number in 1..65535.
	ErrInvalidPort = errors.New("invalid port")
	// ErrInvalidValue is returned when any other variable cannot be parsed.
	ErrInvalidValue = errors.New("invalid value")
)

// Config is the server configuration.
type Config struct {
	Host            string
	Port            int
	Debug           bool
	TrustedProxies  []string
	ShutdownTimeout time.Duration
	RuntimeInterval time.Duration
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		ShutdownTimeout: DefaultShutdownTimeout,
		RuntimeInterval: DefaultRuntimeInterval,
	}
}

// Addr returns the host:port bind address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Load reads envFile (if it exists) into the process environment and then
// builds a Config from it. Variables already set in the environment win over
// the file. An empty envFile skips file loading.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config using lookup to resolve variables.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvHost); ok {
		cfg.Host = v
	}

	if v, ok := get(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidPort, EnvPort, v)
		}
		cfg.Port = port
	}

	if v, ok := get(EnvDebug); ok {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidValue, EnvDebug, v)
		}
		cfg.Debug = debug
	}

	if v, ok := get(EnvTrustedProxies); ok {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	var err error
	if cfg.ShutdownTimeout, err = durationVar(get, EnvShutdownTimeout, cfg.ShutdownTimeout); err != nil {
		return nil, err
	}
	if cfg.RuntimeInterval, err = durationVar(get, EnvRuntimeInterval, cfg.RuntimeInterval); err != nil {
		return nil, err
	}

	return cfg, nil
}

func durationVar(get func(string) (string, bool), key string, def time.Duration) (time.Duration, error) {
	v, ok := get(key)
	if !ok {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v)
	}
	return d, nil
}
