// Package config provides configuration for a contract test run.
//
// Values are resolved in this order, later sources overriding earlier ones: built-in
// defaults, an optional YAML file, environment variables (a .env file in the working
// directory is loaded first if present, without overriding variables that are already
// set), and finally command-line flags, which are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/odysseywalk/tour-contract-tests/servicedef"
)

const (
	EnvServiceURL     = "TOUR_SERVICE_URL"
	EnvRequestTimeout = "TOUR_REQUEST_TIMEOUT"
	EnvStatusTimeout  = "TOUR_STATUS_TIMEOUT"

	DefaultEnvFile = ".env"
)

// Config holds all settings of a test run.
type Config struct {
	ServiceURL     string   `yaml:"serviceUrl"`
	RequestTimeout Duration `yaml:"requestTimeout"`
	StatusTimeout  Duration `yaml:"statusTimeout"`

	RateLimit   RateLimitConfig   `yaml:"rateLimit"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Performance PerformanceConfig `yaml:"performance"`

	MaxWarningsShown int                    `yaml:"maxWarningsShown"`
	PageRoutes       []servicedef.PageRoute `yaml:"pageRoutes"`
}

// RateLimitConfig controls the rate-limit probe and the recovery check that follows it.
type RateLimitConfig struct {
	Attempts       int      `yaml:"attempts"`
	Interval       Duration `yaml:"interval"`
	RequestTimeout Duration `yaml:"requestTimeout"`
	RecoveryWait   Duration `yaml:"recoveryWait"`
}

// ConcurrencyConfig controls the concurrent identical-request scenario.
type ConcurrencyConfig struct {
	Requests     int `yaml:"requests"`
	MinSuccesses int `yaml:"minSuccesses"`
}

// PerformanceConfig holds soft latency targets. Missing a target is a warning.
type PerformanceConfig struct {
	HealthSamples     int      `yaml:"healthSamples"`
	HealthTarget      Duration `yaml:"healthTarget"`
	TTSTarget         Duration `yaml:"ttsTarget"`
	TourTarget        Duration `yaml:"tourTarget"`
	StabilityRequests int      `yaml:"stabilityRequests"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		ServiceURL:     "http://localhost:3006",
		RequestTimeout: Duration(30 * time.Second),
		StatusTimeout:  Duration(10 * time.Second),
		RateLimit: RateLimitConfig{
			Attempts:       35,
			Interval:       Duration(100 * time.Millisecond),
			RequestTimeout: Duration(5 * time.Second),
			RecoveryWait:   Duration(2 * time.Second),
		},
		Concurrency: ConcurrencyConfig{
			Requests:     5,
			MinSuccesses: 1,
		},
		Performance: PerformanceConfig{
			HealthSamples:     10,
			HealthTarget:      Duration(100 * time.Millisecond),
			TTSTarget:         Duration(5 * time.Second),
			TourTarget:        Duration(30 * time.Second),
			StabilityRequests: 20,
		},
		MaxWarningsShown: 10,
		PageRoutes:       append([]servicedef.PageRoute(nil), servicedef.PageRoutes...),
	}
}

// Load reads the optional YAML file at path (if path is non-empty) and the environment,
// using the .env file in the working directory.
func Load(path string) (Config, error) {
	return LoadWithEnvFile(path, DefaultEnvFile)
}

// LoadWithEnvFile is like Load but reads environment defaults from envFile.
func LoadWithEnvFile(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("could not read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("could not load %s: %w", envFile, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvServiceURL); v != "" {
		c.ServiceURL = v
	}
	for name, target := range map[string]*Duration{
		EnvRequestTimeout: &c.RequestTimeout,
		EnvStatusTimeout:  &c.StatusTimeout,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		d, err := ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*target = Duration(d)
	}
	return nil
}

// Validate checks that the configuration can be used for a run.
func (c Config) Validate() error {
	u, err := url.Parse(c.ServiceURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("service URL %q must be an absolute http or https URL", c.ServiceURL)
	}
	if c.RequestTimeout <= 0 || c.StatusTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	if c.RateLimit.Attempts < 1 {
		return errors.New("rateLimit.attempts must be at least 1")
	}
	if c.Concurrency.Requests < 1 {
		return errors.New("concurrency.requests must be at least 1")
	}
	if c.Concurrency.MinSuccesses < 0 || c.Concurrency.MinSuccesses > c.Concurrency.Requests {
		return fmt.Errorf("concurrency.minSuccesses must be between 0 and %d", c.Concurrency.Requests)
	}
	return nil
}

// Duration is a time.Duration that can be written in YAML or the environment either as a
// Go duration string ("1m30s") or as a plain number of seconds ("30").
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// ParseDuration accepts integer seconds or a Go duration string.
func ParseDuration(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}
