package cmd

import (
	"io"
	"os"
	"time"
)

import (
	"github.com/timtadh/data-structures/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by every command. Values come from the
// defaults, then an optional YAML file, then command line flags.
type Config struct {
	Workers int        `yaml:"workers"`
	Debug   bool       `yaml:"debug"`
	SkipLog []string   `yaml:"skip-log"`
	Mine    MineConfig `yaml:"mine"`

	closers []func()
}

type MineConfig struct {
	K                  int           `yaml:"k"`
	MinSupport         int           `yaml:"min-support"`
	MinWeightedSupport float64       `yaml:"min-weighted-support"`
	MaxEdges           int           `yaml:"max-edges"`
	Timeout            time.Duration `yaml:"timeout"` // 0 means no deadline
}

func DefaultConfig() *Config {
	return &Config{
		Mine: MineConfig{
			K:          10,
			MinSupport: 2,
			MaxEdges:   5,
		},
	}
}

// LoadConfig reads a YAML config on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := c.Load(f); err != nil {
		return nil, errors.Errorf("could not load config %v: %v", path, err)
	}
	return c, nil
}

// Load overlays the YAML document in r. Unknown keys are an error.
func (c *Config) Load(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(c)
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.Errorf("workers must be >= 0 (got %v)", c.Workers)
	}
	if c.Mine.K <= 0 {
		return errors.Errorf("mine.k must be > 0 (got %v)", c.Mine.K)
	}
	if c.Mine.MinSupport < 1 {
		return errors.Errorf("mine.min-support must be >= 1 (got %v)", c.Mine.MinSupport)
	}
	if c.Mine.MinWeightedSupport < 0 {
		return errors.Errorf("mine.min-weighted-support must be >= 0 (got %v)", c.Mine.MinWeightedSupport)
	}
	if c.Mine.MaxEdges < 1 {
		return errors.Errorf("mine.max-edges must be >= 1 (got %v)", c.Mine.MaxEdges)
	}
	if c.Mine.Timeout < 0 {
		return errors.Errorf("mine.timeout must be >= 0 (got %v)", c.Mine.Timeout)
	}
	return nil
}

// SkipLogging silences the configured log levels.
func (c *Config) SkipLogging() {
	for _, level := range c.SkipLog {
		errors.Logf("INFO", "not logging level %v", level)
		errors.SkipLogging[level] = true
	}
}

// Defer registers f to run when the config is closed.
func (c *Config) Defer(f func()) {
	c.closers = append(c.closers, f)
}

// Close runs the deferred functions, last registered first.
func (c *Config) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
