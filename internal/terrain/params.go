package terrain

import (
	"strconv"

	"terragen/internal/core"
)

// Parameters describes the effective configuration, grouped by phase. Keys
// match the ones FromMap accepts.
func (c Config) Parameters() core.ParameterSnapshot {
	p := c.Tectonic
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("dimension", "Dimension", c.Dimension, "plate grid edge, a multiple of 32"),
				core.IntParam("lifespan", "Lifespan", c.Lifespan, "plate simulation steps"),
				int64Param("seed", "Seed", c.Seed),
				core.IntParam("workers", "Workers", c.Workers, ""),
			},
		},
		{
			Name: "Tectonics",
			Params: []core.Parameter{
				core.IntParam("max_hotspots", "Max hotspots", p.MaxHotspots, ""),
				core.IntParam("hotspot_life_min", "Hotspot life min", p.HotspotLifeMin, ""),
				core.IntParam("hotspot_life_max", "Hotspot life max", p.HotspotLifeMax, ""),
				core.IntParam("heat_threshold", "Heat threshold", p.HeatThreshold, "heat needed for uplift"),
				core.IntParam("uplift_odds", "Uplift odds", p.UpliftOdds, "1 in n"),
				core.IntParam("transfer_odds", "Transfer odds", p.TransferOdds, "1 in n"),
			},
		},
		{
			Name: "Classification",
			Params: []core.Parameter{
				core.IntParam("ocean", "Ocean threshold", c.OceanThreshold, ""),
				core.IntParam("mountain", "Mountain threshold", c.MountainThreshold, ""),
				core.IntParam("rain_blocker", "Rain shadow blocker", c.RainShadowBlocker, "height that stops moisture"),
				core.BoolParam("exponent_relative", "Relative land exponent", c.Filters.ExponentRelativeToMax, ""),
			},
		},
		{
			Name: "Regions",
			Params: []core.Parameter{
				core.BoolParam("drainage", "Drainage", c.Drainage, ""),
				core.IntParam("chart_dimension", "Chart dimension", c.ChartDimension, ""),
			},
		},
		{
			Name: "Erosion",
			Params: []core.Parameter{
				core.IntParam("erosion_ratio", "Erosion ratio", c.Erosion.Ratio, "fine cells per coarse cell edge"),
				core.IntParam("interpolation_ratio", "Interpolation ratio", c.InterpolationRatio, ""),
				core.FloatParam("vertical_ratio", "Vertical ratio", c.VerticalRatio, ""),
				core.FloatParam("epsilon", "Epsilon", c.Erosion.Epsilon, "hydration at which the run stops"),
				core.IntParam("max_iterations", "Max iterations", c.Erosion.MaxIterations, ""),
				core.IntParam("tie_break_odds", "Tie-break odds", c.Erosion.TieBreakOdds, "1 in n"),
			},
		},
	}}
}

func int64Param(key, label string, v int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(v, 10)}
}
