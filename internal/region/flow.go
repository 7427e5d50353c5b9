package region

import (
	"fmt"

	"terragen/internal/interp"
	pcore "terragen/pkg/core"
)

// Water flow defaults.
const (
	DefaultFlowPasses = 4
	MaxCellFlow       = 400
)

var flowOffsets = [4][2]int{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}

// WaterFlow moves the water of a drainage chart over an elevation chart
// for the given number of passes and returns the largest amount seen in each
// cell. Every unit of water picks a lower neighbour with weight drop*water,
// or stays put with weight equal to the water already in its cell. A
// neighbour stops accepting moved water once it holds MaxCellFlow units.
func WaterFlow(drainage, elevation interp.Chart, rng *pcore.RNG, passes int) interp.Chart {
	dim := len(drainage)
	maxFlow := interp.NewChart(dim, 0)
	water := drainage
	for p := 0; p < passes; p++ {
		water = flowPass(water, elevation, rng)
		for x := range water {
			for y, v := range water[x] {
				maxFlow[x][y] = max(maxFlow[x][y], v)
			}
		}
	}
	return maxFlow
}

func flowPass(water, elevation interp.Chart, rng *pcore.RNG) interp.Chart {
	dim := len(water)
	out := interp.NewChart(dim, 0)
	var attract [4]int
	for x := 0; x < dim; x++ {
		for y := 0; y < dim; y++ {
			space := water[x][y]
			for j, d := range flowOffsets {
				attract[j] = 0
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= dim || ny >= dim {
					continue
				}
				if drop := elevation[x][y] - elevation[nx][ny]; drop > 0 {
					attract[j] = drop * water[nx][ny]
				}
				space += attract[j]
			}
			for i := 0; i < water[x][y]; i++ {
				roll := rng.Between(0, space)
				moved := false
				acc := 0
				for j, d := range flowOffsets {
					acc += attract[j]
					if roll < acc && attract[j] > 0 {
						nx, ny := x+d[0], y+d[1]
						if out[nx][ny] < MaxCellFlow {
							out[nx][ny]++
						}
						moved = true
						break
					}
				}
				if !moved {
					out[x][y]++
				}
			}
		}
	}
	return out
}

// WaterFlow runs the water-flow pass over a drained region's charts.
func (a *Arena) WaterFlow(key Key, rng *pcore.RNG, passes int) (interp.Chart, error) {
	drainage, err := a.DrainageChart(key)
	if err != nil {
		return nil, err
	}
	elevation, err := a.ElevationChart(key)
	if err != nil {
		return nil, fmt.Errorf("region: water flow: %w", err)
	}
	if passes <= 0 {
		passes = DefaultFlowPasses
	}
	return WaterFlow(drainage, elevation, rng, passes), nil
}
