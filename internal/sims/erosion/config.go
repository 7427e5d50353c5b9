package erosion

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInput reports a heightmap or ratio the engine cannot work with.
var ErrInput = errors.New("erosion: invalid input")

// Config controls the hydraulic erosion pass.
type Config struct {
	OceanLevel float64
	Ratio      int
	Seed       int64
	Workers    int

	// Epsilon is the total hydration at or below which the run has converged.
	Epsilon float64
	// MaxIterations bounds the run when hydration never settles.
	MaxIterations int

	// TieBreakOdds is the 1-in-n chance that a cell pulls water off an equal,
	// outlet-less neighbour.
	TieBreakOdds int
	MaxHydration float64
	ErosionRate  float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		OceanLevel:    25,
		Ratio:         4,
		Seed:          1,
		Workers:       16,
		Epsilon:       1e-6,
		MaxIterations: 10000,
		TieBreakOdds:  8,
		MaxHydration:  25,
		ErosionRate:   0.1,
	}
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.Ratio < 1 {
		return fmt.Errorf("%w: ratio %d < 1", ErrInput, c.Ratio)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("erosion: max iterations %d < 1", c.MaxIterations)
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("erosion: negative epsilon %v", c.Epsilon)
	}
	if c.TieBreakOdds < 1 {
		return fmt.Errorf("erosion: tie-break odds %d < 1", c.TieBreakOdds)
	}
	return nil
}

// FromMap populates the config from flag-style key/value pairs.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["erosion_ratio"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Ratio = parsed
		}
	}
	if v, ok := cfg["ocean_level"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.OceanLevel = parsed
		}
	}
	if v, ok := cfg["epsilon"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Epsilon = parsed
		}
	}
	if v, ok := cfg["max_iterations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.MaxIterations = parsed
		}
	}
	if v, ok := cfg["tie_break_odds"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TieBreakOdds = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	return c
}
