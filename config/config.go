package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Config is everything tunable about the collision core and the demo.
type Config struct {
	Partition Partition         `yaml:"partition"`
	Resolver  Resolver          `yaml:"resolver"`
	Log       Log               `yaml:"log"`
	Layers    map[string]uint32 `yaml:"layers"`
	Response  string            `yaml:"response"`
	// Script is a tengo response script, used when Response is "script".
	Script string `yaml:"script,omitempty"`
}

type Partition struct {
	CellSize float64 `yaml:"cell_size"`
}

type Resolver struct {
	MaxIterations int `yaml:"max_iterations"`
	// Padding grows the broad-phase query area around a sweep.
	Padding float64 `yaml:"padding"`
}

type Log struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// Responses is the set of names accepted for Config.Response.
var Responses = []string{"slide", "bounce", "ignore", "stop", "script"}

// Default returns the embedded configuration.
func Default() Config {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded default: %v", err))
	}
	return cfg
}

// Parse overlays data on top of the embedded defaults and validates the
// result.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode default: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path from disk. An empty path or a missing file yields the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Parse(nil)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	var errs []error
	if !(c.Partition.CellSize > 0) {
		errs = append(errs, fmt.Errorf("partition.cell_size must be positive, got %v", c.Partition.CellSize))
	}
	if c.Resolver.MaxIterations < 1 {
		errs = append(errs, fmt.Errorf("resolver.max_iterations must be at least 1, got %d", c.Resolver.MaxIterations))
	}
	if c.Resolver.Padding < 0 {
		errs = append(errs, fmt.Errorf("resolver.padding must not be negative, got %v", c.Resolver.Padding))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Encoding != "json" && c.Log.Encoding != "console" {
		errs = append(errs, fmt.Errorf("log.encoding must be json or console, got %q", c.Log.Encoding))
	}
	for _, name := range c.LayerNames() {
		if bit := c.Layers[name]; bit > 31 {
			errs = append(errs, fmt.Errorf("layers.%s: bit %d out of range", name, bit))
		}
	}
	if !slices.Contains(Responses, c.Response) {
		errs = append(errs, fmt.Errorf("response: unknown %q", c.Response))
	}
	if c.Response == "script" && c.Script == "" {
		errs = append(errs, errors.New("response is script but no script is set"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// Layer returns the single-bit mask for the named layer, or 0 when the name
// is unknown.
func (c Config) Layer(name string) uint32 {
	bit, ok := c.Layers[name]
	if !ok || bit > 31 {
		return 0
	}
	return 1 << bit
}

// Mask ORs together the named layers.
func (c Config) Mask(names ...string) uint32 {
	var m uint32
	for _, name := range names {
		m |= c.Layer(name)
	}
	return m
}

// LayerNames returns the configured layer names sorted by bit.
func (c Config) LayerNames() []string {
	names := make([]string, 0, len(c.Layers))
	for name := range c.Layers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if c.Layers[names[i]] != c.Layers[names[j]] {
			return c.Layers[names[i]] < c.Layers[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
