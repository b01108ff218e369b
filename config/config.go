// Package config holds the runtime switches of the demo. Values come from
// the environment and are then overridden by command line flags.
package config

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

var ErrInvalidConfig = errors.New("config: invalid config")

// Ground backends.
const (
	GroundSpace = "cp"
	GroundBoxes = "boxes"
)

type Config struct {
	Level string `env:"PLATFORMER_LEVEL" envDefault:"playground"`
	Debug bool   `env:"PLATFORMER_DEBUG"`
	// Ground picks the collision backend the controller queries.
	Ground string `env:"PLATFORMER_GROUND" envDefault:"cp"`
	TPS    int    `env:"PLATFORMER_TPS" envDefault:"60"`
	// Watch hot reloads prefabs edited on disk.
	Watch bool `env:"PLATFORMER_WATCH" envDefault:"true"`
}

// ParseEnv loads a Config from the environment.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}

// BindFlags registers flags on fs whose defaults are the current values, so
// an unset flag keeps the environment value.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Level, "level", c.Level, "level name in levels/ (basename, .json optional)")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "draw probe rays, adjacency and collision shapes")
	fs.StringVar(&c.Ground, "ground", c.Ground, "collision backend: cp or boxes")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "hot reload prefabs edited on disk")
}

// Load parses the environment, then args.
func Load(args []string) (Config, error) {
	cfg, err := ParseEnv()
	if err != nil {
		return Config{}, err
	}
	fs := flag.NewFlagSet("platformer", flag.ContinueOnError)
	cfg.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: parse flags: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Ground {
	case GroundSpace, GroundBoxes:
	default:
		return fmt.Errorf("%w: unknown ground backend %q", ErrInvalidConfig, c.Ground)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("%w: tps %d must be positive", ErrInvalidConfig, c.TPS)
	}
	return nil
}

// Dt is the fixed simulation step in seconds.
func (c Config) Dt() float64 {
	return 1 / float64(c.TPS)
}
