package config

import (
	"fmt"

	"github.com/cogstats/coom/pkg/coom"
	"github.com/cogstats/coom/pkg/coom/ingest"
)

// Components holds the pieces assembled from a loaded configuration.
type Components struct {
	Tokenizer *ingest.Tokenizer
	Options   coom.Options
}

// Loader assembles build components from configuration paths.
type Loader struct {
	ConfigPath string
}

// Load reads the configuration (or falls back to defaults when no path
// is set) and returns an initialized tokenizer plus build options.
func (l *Loader) Load() (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	return FromConfig(cfg)
}

// FromConfig builds components from an already validated Config.
func FromConfig(cfg Config) (*Components, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var stops []string
	if cfg.StoplistPath != "" {
		sl, err := LoadStoplist(cfg.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		stops = sl.Terms
	}

	tokenizer := ingest.NewTokenizer(stops)
	if cfg.Stemming != "" {
		tokenizer.SetStemming(cfg.Stemming)
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = 1
	}

	return &Components{
		Tokenizer: tokenizer,
		Options: coom.Options{
			WindowSize: cfg.WindowSize,
			Normalize:  cfg.NormalizeValue(),
			Workers:    workers,
		},
	}, nil
}
