package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cogstats/coom/pkg/coom/internalerr"
)

// Config holds the co-occurrence build settings read from YAML.
type Config struct {
	WindowSize   int    `yaml:"window_size"`
	Normalize    *bool  `yaml:"normalize"` // pointer so an absent key keeps the default (true)
	Workers      int    `yaml:"workers"`
	Stemming     string `yaml:"stemming"` // snowball language, empty disables
	StoplistPath string `yaml:"stoplist"`
}

// Default returns the standard configuration: window 5, normalized
// weights, serial processing, no stemming.
func Default() Config {
	normalize := true
	return Config{
		WindowSize: 5,
		Normalize:  &normalize,
		Workers:    1,
	}
}

// Load reads a Config from a YAML file. Absent keys keep their
// defaults; present keys are validated.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration before any build work starts.
func (c Config) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("window_size %d must be >= 1: %w", c.WindowSize, internalerr.ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d must not be negative: %w", c.Workers, internalerr.ErrInvalidConfig)
	}
	return nil
}

// NormalizeValue resolves the normalize flag, defaulting to true.
func (c Config) NormalizeValue() bool {
	if c.Normalize == nil {
		return true
	}
	return *c.Normalize
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
