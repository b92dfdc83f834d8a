// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Map       MapConfig       `yaml:"map"`
	Animal    AnimalConfig    `yaml:"animal"`
	Traits    TraitsConfig    `yaml:"traits"`
	Costs     CostsConfig     `yaml:"costs"`
	Genetics  GeneticsConfig  `yaml:"genetics"`
	Grass     GrassConfig     `yaml:"grass"`
	Generator GeneratorConfig `yaml:"generator"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Bookmarks BookmarksConfig `yaml:"bookmarks"`
	Render    RenderConfig    `yaml:"render"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// MapConfig holds the map bounds. Positions live in [0,Width]x[0,Height].
type MapConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AnimalConfig holds interaction ranges and timers shared by all animals.
type AnimalConfig struct {
	TimeToRot                  int `yaml:"time_to_rot"`
	MaxDistanceToAttack        int `yaml:"max_distance_to_attack"`
	MaxDistanceToMate          int `yaml:"max_distance_to_mate"`
	MaxDistanceToEatPrey       int `yaml:"max_distance_to_eat_prey"`
	FullnessPerCarnivorousBite int `yaml:"fullness_per_carnivorous_bite"`
	TimeBetweenMating          int `yaml:"time_between_mating"`
}

// TraitsConfig holds the starting value of every upgradeable feature.
type TraitsConfig struct {
	Speed       int `yaml:"speed"`
	Detection   int `yaml:"detection"`
	MaxFullness int `yaml:"max_fullness"`
	Attack      int `yaml:"attack"`
	Puberty     int `yaml:"puberty"`
}

// CostsConfig holds ADN costs. Feature costs are per unit of value; diet
// costs are paid once.
type CostsConfig struct {
	Speed       int `yaml:"speed"`
	Detection   int `yaml:"detection"`
	MaxFullness int `yaml:"max_fullness"`
	Attack      int `yaml:"attack"`
	Puberty     int `yaml:"puberty"`
	Herbivore   int `yaml:"herbivore"`
	Carnivore   int `yaml:"carnivore"`
}

// GeneticsConfig holds ADN budget parameters.
type GeneticsConfig struct {
	StartingADN      int `yaml:"starting_adn"`
	ADNGainToNewborn int `yaml:"adn_gain_to_newborn"`
}

// GrassConfig holds grass parameters.
type GrassConfig struct {
	GrowthTime       int `yaml:"growth_time"`
	Bite             int `yaml:"bite"`
	MinInitialAmount int `yaml:"min_initial_amount"`
	WidthDivisor     int `yaml:"width_divisor"`
}

// GeneratorConfig holds map generation parameters.
type GeneratorConfig struct {
	VegetationDivisor  int `yaml:"vegetation_divisor"`   // vegetation = (w+h)/divisor
	RiverDivisor       int `yaml:"river_divisor"`        // max rivers = (w+h)/divisor
	MinRiverNodes      int `yaml:"min_river_nodes"`      // fewest nodes per river
	ExtraRiverNodes    int `yaml:"extra_river_nodes"`    // random extra nodes, exclusive
	OffsetPerRiver     int `yaml:"offset_per_river"`     // min node offset = max rivers * this
	OffsetSpreadFactor int `yaml:"offset_spread_factor"` // max node offset = min * this
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // ticks per stats window
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	PopulationCrash PopulationCrashConfig `yaml:"population_crash"`
	BabyBoom        BabyBoomConfig        `yaml:"baby_boom"`
}

// PopulationCrashConfig fires when a species drops sharply against its
// recent average.
type PopulationCrashConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinDrop     int     `yaml:"min_drop"`
}

// BabyBoomConfig fires when births in one window far exceed the recent
// average.
type BabyBoomConfig struct {
	Multiplier float64 `yaml:"multiplier"`
	MinBirths  int     `yaml:"min_births"`
}

// RenderConfig holds frame export parameters.
type RenderConfig struct {
	TileSize   int     `yaml:"tile_size"`
	MarkerSize float64 `yaml:"marker_size"`
	ShowVision bool    `yaml:"show_vision"`
	Background string  `yaml:"background"`
	RiverWidth float64 `yaml:"river_width"`
	GrassColor string  `yaml:"grass_color"`
	RiverColor string  `yaml:"river_color"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Vegetation     int // grass patches at generation
	Animals        int // animals per host species at generation
	Predators      int // predators at generation
	MaxRivers      int
	RiverMinOffset int
	RiverMaxOffset int
}

// Global config instance
var global *Config

// Init loads configuration from the given path and sets it as the global config.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init has not been called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load reads configuration from a YAML file, using embedded defaults for
// missing values. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Default returns the embedded defaults. Panics if they fail to parse.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	positive := []struct {
		name string
		v    int
	}{
		{"map.width", c.Map.Width},
		{"map.height", c.Map.Height},
		{"costs.speed", c.Costs.Speed},
		{"costs.detection", c.Costs.Detection},
		{"costs.max_fullness", c.Costs.MaxFullness},
		{"costs.attack", c.Costs.Attack},
		{"costs.puberty", c.Costs.Puberty},
		{"grass.growth_time", c.Grass.GrowthTime},
		{"grass.width_divisor", c.Grass.WidthDivisor},
		{"grass.min_initial_amount", c.Grass.MinInitialAmount},
		{"traits.max_fullness", c.Traits.MaxFullness},
		{"generator.vegetation_divisor", c.Generator.VegetationDivisor},
		{"generator.river_divisor", c.Generator.RiverDivisor},
		{"generator.min_river_nodes", c.Generator.MinRiverNodes},
		{"generator.extra_river_nodes", c.Generator.ExtraRiverNodes},
		{"generator.offset_per_river", c.Generator.OffsetPerRiver},
		{"generator.offset_spread_factor", c.Generator.OffsetSpreadFactor},
		{"telemetry.stats_window", c.Telemetry.StatsWindow},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, p.name, p.v)
		}
	}
	if c.Generator.MinRiverNodes < 2 {
		return fmt.Errorf("%w: generator.min_river_nodes must be at least 2, got %d", ErrInvalid, c.Generator.MinRiverNodes)
	}
	if c.Traits.Speed < 0 || c.Traits.Detection < 0 || c.Traits.Attack < 0 || c.Traits.Puberty < 0 {
		return fmt.Errorf("%w: trait defaults must not be negative", ErrInvalid)
	}
	return nil
}

// Refresh re-validates c and recomputes derived values. Call it after
// changing fields in code.
func (c *Config) Refresh() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	perimeter := c.Map.Width + c.Map.Height

	c.Derived.Vegetation = perimeter / c.Generator.VegetationDivisor
	c.Derived.Animals = c.Derived.Vegetation
	c.Derived.Predators = c.Derived.Animals / 2

	c.Derived.MaxRivers = max(perimeter/c.Generator.RiverDivisor, 1)
	c.Derived.RiverMinOffset = c.Derived.MaxRivers * c.Generator.OffsetPerRiver
	c.Derived.RiverMaxOffset = c.Derived.RiverMinOffset * c.Generator.OffsetSpreadFactor
}

// WriteYAML writes the current config to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
