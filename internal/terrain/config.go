package terrain

import (
	"fmt"
	"strconv"

	"terragen/internal/classify"
	"terragen/internal/region"
	"terragen/internal/sims/erosion"
	"terragen/internal/sims/tectonic"
)

// Config controls a full generation run.
type Config struct {
	Dimension int
	Lifespan  int
	Seed      int64
	Workers   int

	OceanThreshold    int
	MountainThreshold int
	RainShadowBlocker int

	InterpolationRatio int
	VerticalRatio      float64

	// Drainage runs region drainage for every continent.
	Drainage       bool
	ChartDimension int

	Tectonic tectonic.Params
	Erosion  erosion.Config
	Filters  classify.Options
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	tc := tectonic.DefaultConfig()
	ec := erosion.DefaultConfig()
	return Config{
		Dimension:          tc.Dimension,
		Lifespan:           tc.Lifespan,
		Seed:               42,
		Workers:            tc.Workers,
		OceanThreshold:     25,
		MountainThreshold:  75,
		RainShadowBlocker:  80,
		InterpolationRatio: 1,
		VerticalRatio:      10,
		Drainage:           true,
		ChartDimension:     region.ChartDimension,
		Tectonic:           tc.Params,
		Erosion:            ec,
		Filters:            classify.DefaultOptions(),
	}
}

// Validate reports configuration errors before any phase starts.
func (c Config) Validate() error {
	if err := c.tectonicConfig(c.Seed).Validate(); err != nil {
		return err
	}
	if err := c.Erosion.Validate(); err != nil {
		return err
	}
	if c.InterpolationRatio < 1 {
		return fmt.Errorf("terrain: interpolation ratio %d < 1", c.InterpolationRatio)
	}
	if c.VerticalRatio <= 0 {
		return fmt.Errorf("terrain: vertical ratio %v must be positive", c.VerticalRatio)
	}
	if c.ChartDimension < 2 {
		return fmt.Errorf("terrain: chart dimension %d < 2", c.ChartDimension)
	}
	if c.OceanThreshold >= c.MountainThreshold {
		return fmt.Errorf("terrain: ocean threshold %d must be below mountain threshold %d", c.OceanThreshold, c.MountainThreshold)
	}
	return nil
}

func (c Config) tectonicConfig(seed int64) tectonic.Config {
	return tectonic.Config{
		Dimension: c.Dimension,
		Lifespan:  c.Lifespan,
		Workers:   c.Workers,
		Seed:      seed,
		Params:    c.Tectonic,
	}
}

func (c Config) erosionConfig(seed int64) erosion.Config {
	ec := c.Erosion
	ec.OceanLevel = float64(c.OceanThreshold)
	ec.Workers = c.Workers
	ec.Seed = seed
	return ec
}

// FromMap populates the config from flag-style key/value pairs. Keys of the
// tectonic and erosion phases are forwarded to their own FromMap.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	tc := tectonic.FromMap(cfg)
	c.Dimension = tc.Dimension
	c.Lifespan = tc.Lifespan
	c.Workers = tc.Workers
	c.Tectonic = tc.Params
	c.Erosion = erosion.FromMap(cfg)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["ocean"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.OceanThreshold = parsed
			c.Filters.OceanLevel = parsed
		}
	}
	if v, ok := cfg["mountain"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.MountainThreshold = parsed
		}
	}
	if v, ok := cfg["rain_blocker"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.RainShadowBlocker = parsed
		}
	}
	if v, ok := cfg["interpolation_ratio"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.InterpolationRatio = parsed
		}
	}
	if v, ok := cfg["vertical_ratio"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.VerticalRatio = parsed
		}
	}
	if v, ok := cfg["drainage"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Drainage = parsed
		}
	}
	if v, ok := cfg["chart_dimension"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 1 {
			c.ChartDimension = parsed
		}
	}
	if v, ok := cfg["exponent_relative"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Filters.ExponentRelativeToMax = parsed
		}
	}
	return c
}
