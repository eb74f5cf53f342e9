package cli

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/rectfree/rectfree/pkg/errors"
	"github.com/rectfree/rectfree/pkg/search"
)

// Config holds search defaults loaded from a TOML file. Every field is
// optional; explicit command-line flags win over config values.
//
// Example rectfree.toml:
//
//	colors = 4
//	max_iterations = 50000
//	seed = 7
//	strategy = "sequential"
type Config struct {
	Colors        int    `toml:"colors"`
	MaxIterations int    `toml:"max_iterations"`
	Seed          uint64 `toml:"seed"`
	Strategy      string `toml:"strategy"`
}

// loadConfig reads a TOML config file. A missing path returns an empty
// config; a missing file named explicitly is an error.
func loadConfig(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "config file %s does not exist", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return &cfg, nil
}

// applyConfig fills options from the config for every flag the user did
// not set explicitly on the command line.
func applyConfig(opts *search.Options, cfg *Config, flags *pflag.FlagSet) {
	if cfg.Colors != 0 && !flags.Changed("colors") {
		opts.Colors = cfg.Colors
	}
	if cfg.MaxIterations != 0 && !flags.Changed("max-iters") {
		opts.MaxIterations = cfg.MaxIterations
	}
	if cfg.Seed != 0 && !flags.Changed("seed") {
		opts.Seed = cfg.Seed
	}
	if cfg.Strategy != "" && !flags.Changed("strategy") {
		opts.Strategy = cfg.Strategy
	}
}
