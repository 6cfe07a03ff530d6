package main

import (
	"os"

	"github.com/fine-structures/hess/hess"
	"github.com/fine-structures/hess/libhess"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config drives a batch run.  It is read from an optional YAML file, then HESS_* env vars,
// then command line flags, each overriding the last.
type Config struct {
	Sizes        []int    `yaml:"sizes"         envconfig:"SIZES"`
	Kinds        []string `yaml:"kinds"         envconfig:"KINDS"`
	Catalog      string   `yaml:"catalog"       envconfig:"CATALOG"` // empty means in-memory
	Workers      int      `yaml:"workers"       envconfig:"WORKERS"`
	SkipExisting bool     `yaml:"skip_existing" envconfig:"SKIP_EXISTING"`
	CacheCost    int64    `yaml:"cache_cost"    envconfig:"CACHE_COST"`
}

// DefaultConfig computes every kind for sizes 1 through 5.
var DefaultConfig = Config{
	Sizes:        []int{1, 2, 3, 4, 5},
	Kinds:        []string{"left", "right", "csf"},
	SkipExisting: true,
	CacheCost:    libhess.DefaultContextOpts.CacheCost,
}

// LoadConfig returns DefaultConfig overlaid with the YAML file at pathname (if given)
// and then the environment.
func LoadConfig(pathname string) (Config, error) {
	cfg := DefaultConfig
	cfg.Sizes = append([]int(nil), DefaultConfig.Sizes...)
	cfg.Kinds = append([]string(nil), DefaultConfig.Kinds...)

	if len(pathname) > 0 {
		buf, err := os.ReadFile(pathname)
		if err != nil {
			return cfg, errors.Wrap(err, "reading config")
		}
		if err = yaml.Unmarshal(buf, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parsing config %q", pathname)
		}
	}
	if err := envconfig.Process("HESS", &cfg); err != nil {
		return cfg, errors.Wrap(err, "reading HESS_* environment")
	}
	return cfg, nil
}

// RunOpts validates cfg and converts it for libhess.Context.Run.
func (cfg *Config) RunOpts() (libhess.RunOpts, error) {
	opts := libhess.RunOpts{
		Sizes:        cfg.Sizes,
		Workers:      cfg.Workers,
		SkipExisting: cfg.SkipExisting,
	}
	for _, n := range cfg.Sizes {
		if n < 1 || n > hess.MaxSize {
			return opts, errors.Wrapf(hess.ErrBadSize, "size %d", n)
		}
	}
	for _, name := range cfg.Kinds {
		kind, err := hess.ParseTableKind(name)
		if err != nil {
			return opts, errors.Wrapf(err, "kind %q", name)
		}
		opts.Kinds = append(opts.Kinds, kind)
	}
	return opts, nil
}

// ContextOpts sizes the memo cache.
func (cfg *Config) ContextOpts() libhess.ContextOpts {
	opts := libhess.DefaultContextOpts
	if cfg.CacheCost > 0 {
		opts.CacheCost = cfg.CacheCost
	}
	return opts
}
