package feed

import (
	"nebula/backend/types"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// Group-by names understood by GroupByName.
const (
	GroupByNone        = "none"
	GroupByFirstLetter = "first-letter"
)

// Config holds the settings of the feed command. It can be loaded from YAML.
type Config struct {
	// Interval between two batches.
	Interval time.Duration `yaml:"interval"`
	// Ticks is the number of batches to deliver, zero for no bound.
	Ticks int `yaml:"ticks"`
	// Mode of the generated deltas: list or element.
	Mode string `yaml:"mode"`
	// Seed of the random generator.
	Seed uint64 `yaml:"seed"`
	// BatchSize is the number of draws per generated delta.
	BatchSize int `yaml:"batch_size"`
	// GroupBy names the classification of items.
	GroupBy string `yaml:"group_by"`
	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the settings of the original demo feed: one list
// batch of ten draws per second.
func DefaultConfig() Config {
	return Config{
		Interval:  time.Second,
		Ticks:     10,
		Mode:      string(types.ListMode),
		Seed:      1,
		BatchSize: 10,
		GroupBy:   GroupByNone,
		LogLevel:  zerolog.InfoLevel.String(),
	}
}

// LoadConfig reads a YAML file over the default configuration.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, xerrors.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return Config{}, xerrors.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := conf.Validate(); err != nil {
		return Config{}, xerrors.Errorf("invalid config %s: %w", path, err)
	}
	return conf, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return xerrors.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.Ticks < 0 {
		return xerrors.Errorf("ticks must not be negative, got %d", c.Ticks)
	}
	if c.BatchSize <= 0 {
		return xerrors.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}

	mode, err := types.ParseMode(c.Mode)
	if err != nil {
		return xerrors.Errorf("invalid mode: %w", err)
	}
	if mode == types.InitialMode {
		return xerrors.Errorf("feed mode must be list or element")
	}

	if _, err := GroupByName(c.GroupBy); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return xerrors.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// GroupByName returns the classification function of a string view. The
// first-letter classification keeps groups contiguous under lexicographic
// order.
func GroupByName(name string) (func(string) int, error) {
	switch name {
	case "", GroupByNone:
		return nil, nil
	case GroupByFirstLetter:
		return firstLetter, nil
	default:
		return nil, xerrors.Errorf("unknown group_by %q", name)
	}
}

func firstLetter(s string) int {
	if s == "" {
		return -1
	}
	return int(s[0])
}
