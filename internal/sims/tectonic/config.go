package tectonic

import (
	"errors"
	"fmt"
	"strconv"
)

// ChunkSize is the edge length of the square chunks processed in parallel.
const ChunkSize = 32

// ErrDimension reports a grid dimension that cannot be split into chunks.
var ErrDimension = errors.New("tectonic: dimension must be a positive multiple of 32")

// Params holds tunable thresholds and probabilities for the plate phase.
type Params struct {
	MaxHotspots         int
	HotspotLifeMin      int
	HotspotLifeMax      int
	HotspotMagnitudeMin int
	HotspotMagnitudeMax int

	HeatThreshold int
	UpliftOdds    int
	MaxElevation  int

	TransferOdds     int
	SaturationHeight int
	GoalLow          int
	GoalHigh         int
}

// Config controls the plate simulation dimensions and duration.
type Config struct {
	Dimension int
	Lifespan  int
	Workers   int

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Dimension: 128,
		Lifespan:  15000,
		Workers:   16,
		Seed:      1,
		Params: Params{
			MaxHotspots:         5,
			HotspotLifeMin:      6000,
			HotspotLifeMax:      10000,
			HotspotMagnitudeMin: 3,
			HotspotMagnitudeMax: 5,
			HeatThreshold:       25,
			UpliftOdds:          10,
			MaxElevation:        100,
			TransferOdds:        50,
			SaturationHeight:    99,
			GoalLow:             20,
			GoalHigh:            60,
		},
	}
}

// Validate reports configuration errors before any grid is allocated.
func (c Config) Validate() error {
	if err := validateDimension(c.Dimension); err != nil {
		return err
	}
	if c.Lifespan < 0 {
		return fmt.Errorf("tectonic: negative lifespan %d", c.Lifespan)
	}
	return nil
}

func validateDimension(d int) error {
	if d <= 0 || d%ChunkSize != 0 {
		return fmt.Errorf("%w (got %d)", ErrDimension, d)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["dimension"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Dimension = parsed
		}
	}
	if v, ok := cfg["lifespan"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Lifespan = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["max_hotspots"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.MaxHotspots = parsed
		}
	}
	if v, ok := cfg["hotspot_life_min"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.HotspotLifeMin = parsed
		}
	}
	if v, ok := cfg["hotspot_life_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.HotspotLifeMax = parsed
		}
	}
	if c.Params.HotspotLifeMax < c.Params.HotspotLifeMin {
		c.Params.HotspotLifeMax = c.Params.HotspotLifeMin
	}
	if v, ok := cfg["heat_threshold"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.HeatThreshold = parsed
		}
	}
	if v, ok := cfg["uplift_odds"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.UpliftOdds = parsed
		}
	}
	if v, ok := cfg["transfer_odds"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.TransferOdds = parsed
		}
	}
	return c
}
