package main

import (
	"math"

	"github.com/pthm-cable/critters/config"
)

// ParamSpec defines a single tunable constant.
type ParamSpec struct {
	Name    string // config path, used as CSV column
	Min     float64
	Max     float64
	Default float64

	get func(c *config.Config) int
	set func(c *config.Config, v int)
}

// ParamVector holds the tunable constants. CMA-ES works on the normalized
// [0,1] form; values are rounded to integers when applied.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable constants, with
// defaults taken from base.
func NewParamVector(base *config.Config) *ParamVector {
	specs := []ParamSpec{
		{
			Name: "grass.growth_time", Min: 1, Max: 20,
			get: func(c *config.Config) int { return c.Grass.GrowthTime },
			set: func(c *config.Config, v int) { c.Grass.GrowthTime = v },
		},
		{
			Name: "grass.bite", Min: 2, Max: 30,
			get: func(c *config.Config) int { return c.Grass.Bite },
			set: func(c *config.Config, v int) { c.Grass.Bite = v },
		},
		{
			Name: "animal.time_between_mating", Min: 30, Max: 400,
			get: func(c *config.Config) int { return c.Animal.TimeBetweenMating },
			set: func(c *config.Config, v int) { c.Animal.TimeBetweenMating = v },
		},
		{
			Name: "animal.fullness_per_carnivorous_bite", Min: 100, Max: 1000,
			get: func(c *config.Config) int { return c.Animal.FullnessPerCarnivorousBite },
			set: func(c *config.Config, v int) { c.Animal.FullnessPerCarnivorousBite = v },
		},
		{
			Name: "animal.time_to_rot", Min: 20, Max: 600,
			get: func(c *config.Config) int { return c.Animal.TimeToRot },
			set: func(c *config.Config, v int) { c.Animal.TimeToRot = v },
		},
		{
			Name: "genetics.adn_gain_to_newborn", Min: 0, Max: 10,
			get: func(c *config.Config) int { return c.Genetics.ADNGainToNewborn },
			set: func(c *config.Config, v int) { c.Genetics.ADNGainToNewborn = v },
		},
		{
			Name: "generator.vegetation_divisor", Min: 40, Max: 400,
			get: func(c *config.Config) int { return c.Generator.VegetationDivisor },
			set: func(c *config.Config, v int) { c.Generator.VegetationDivisor = v },
		},
	}
	for i := range specs {
		specs[i].Default = float64(specs[i].get(base))
	}
	return &ParamVector{Specs: specs}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp bounds every value and rounds it to the integer actually applied.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Round(min(max(v[i], spec.Min), spec.Max))
	}
	return clamped
}

// ApplyToConfig writes the clamped values into cfg and refreshes derived
// values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	clamped := pv.Clamp(values)
	for i, spec := range pv.Specs {
		spec.set(cfg, int(clamped[i]))
	}
	return cfg.Refresh()
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = float64(spec.get(cfg))
	}
	return v
}
