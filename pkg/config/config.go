package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/IlikeChooros/go-astar/pkg/astar"
	"github.com/IlikeChooros/go-astar/pkg/logging"
)

var ErrInvalid = errors.New("config: invalid value")

// Config of the command line tool, loaded from YAML. Zero values mean
// "not limited" for Movetime and Cycles.
type Config struct {
	Strategy    string        `yaml:"strategy"`
	Movetime    time.Duration `yaml:"movetime"`
	Cycles      uint32        `yaml:"cycles"`
	Workers     int           `yaml:"workers"`
	Seed        int64         `yaml:"seed"`
	LogLevel    string        `yaml:"log_level"`
	LogFormat   string        `yaml:"log_format"`
	MaxMoves    int           `yaml:"max_moves"`
	MetricsAddr string        `yaml:"metrics_addr"`
}

func Default() Config {
	return Config{
		Strategy:  astar.StrategySequential.String(),
		Movetime:  time.Second,
		Workers:   1,
		LogLevel:  logging.LevelInfo.String(),
		LogFormat: "text",
		MaxMoves:  200,
	}
}

// Read the file at 'path' on top of the defaults, then apply the
// environment overrides and validate
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := decode(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse a YAML document on top of the defaults and validate it
func Parse(data []byte) (Config, error) {
	cfg, err := decode(data)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Override fields from ASTAR_* variables. Unparsable numbers are ignored,
// Validate catches bad names.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("ASTAR_STRATEGY"); ok {
		c.Strategy = v
	}
	if v, ok := lookup("ASTAR_MOVETIME"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.Movetime = d
		}
	}
	if v, ok := lookup("ASTAR_WORKERS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
	if v, ok := lookup("ASTAR_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
}

func (c Config) Validate() error {
	if _, err := astar.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Movetime < 0 {
		return fmt.Errorf("%w: negative movetime %s", ErrInvalid, c.Movetime)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	if c.MaxMoves < 1 {
		return fmt.Errorf("%w: max_moves must be at least 1, got %d", ErrInvalid, c.MaxMoves)
	}
	return nil
}

func (c Config) SearchStrategy() astar.Strategy {
	s, _ := astar.ParseStrategy(c.Strategy)
	return s
}

// Search limits described by the config
func (c Config) Limits() *astar.Limits {
	limits := astar.DefaultLimits().SetThreads(c.Workers)
	if c.Movetime > 0 {
		limits.SetMovetime(c.Movetime)
	}
	if c.Cycles > 0 {
		limits.SetCycles(c.Cycles)
	}
	return limits
}

// Logger writing to 'out' as the config says
func (c Config) Logger(out io.Writer) *logging.Logger {
	level, _ := logging.ParseLevel(c.LogLevel)
	format, _ := logging.ParseFormat(c.LogFormat)
	return logging.New(level, out, format)
}
