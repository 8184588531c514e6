package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when --config is not given.
const DefaultConfigFile = "turing.yaml"

// Config is the structure of turing.yaml. Command-line flags override it.
type Config struct {
	LogLevel  string                   `yaml:"log_level"`
	LogFile   string                   `yaml:"log_file"`
	Run       RunConfig                `yaml:"run"`
	Enumerate domain.EnumerationPolicy `yaml:"enumerate"`
	Cache     CacheConfig              `yaml:"cache"`
	Serve     ServeConfig              `yaml:"serve"`
}

// RunConfig holds the defaults of single runs.
type RunConfig struct {
	StepLimit uint64 `yaml:"step_limit"`
	Window    int    `yaml:"window"`
}

// CacheConfig selects the listing store.
// Backend is one of none, memory, file or redis.
type CacheConfig struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
	URL     string `yaml:"url"`
	Prefix  string `yaml:"prefix"`
	TTL     string `yaml:"ttl"`
	LockTTL string `yaml:"lock_ttl"`

	// EncryptionKeys are base64 AES-256 keys. The first seals new listings.
	EncryptionKeys []string `yaml:"encryption_keys"`
}

// ServeConfig holds the limits of the network transports.
type ServeConfig struct {
	Port      int    `yaml:"port"`
	StepLimit uint64 `yaml:"step_limit"`
	MaxCount  int    `yaml:"max_count"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "warn",
		Run:       RunConfig{StepLimit: 1_000_000},
		Enumerate: domain.DefaultEnumerationPolicy(),
		Cache:     CacheConfig{Backend: "none"},
		Serve:     ServeConfig{Port: 8080, StepLimit: 1_000_000, MaxCount: 10_000},
	}
}

// LoadConfig reads path over the defaults. A missing file is an error only
// when the caller named it explicitly.
func LoadConfig(path string, explicit bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.Enumerate = cfg.Enumerate.Normalize()
	if _, err := cfg.Cache.ttl(); err != nil {
		return cfg, err
	}
	if _, err := cfg.Cache.lockTTL(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c CacheConfig) ttl() (time.Duration, error) {
	return parseDuration("cache.ttl", c.TTL)
}

func (c CacheConfig) lockTTL() (time.Duration, error) {
	return parseDuration("cache.lock_ttl", c.LockTTL)
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", field)
	}
	return d, nil
}
