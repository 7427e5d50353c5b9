package region

import (
	"fmt"

	"terragen/internal/interp"
)

// ElevationChart interpolates a region's elevation from the goals of the
// regions around it. Each quadrant blends the 2x2 block of regions that meet
// at its outer corner; missing regions count as 0.
func (a *Arena) ElevationChart(key Key) (interp.Chart, error) {
	if _, ok := a.Region(key); !ok {
		return nil, fmt.Errorf("%w: no region at %+v", ErrUnknownContinent, key)
	}
	g := func(dx, dy int) int {
		return a.goal(Key{Continent: key.Continent, X: key.X + dx, Y: key.Y + dy})
	}
	q := interp.Quadrants{
		{{g(-1, -1), g(-1, 0)}, {g(0, -1), g(0, 0)}},
		{{g(0, -1), g(0, 0)}, {g(1, -1), g(1, 0)}},
		{{g(-1, 0), g(-1, 1)}, {g(0, 0), g(0, 1)}},
		{{g(0, 0), g(0, 1)}, {g(1, 0), g(1, 1)}},
	}
	return interp.QuadrantChart(q, a.ChartDim), nil
}

// Border is the outer ring of a drainage chart indexed [x][y]: North is
// chart[x][0], West chart[0][y], South chart[x][dim-1] and East
// chart[dim-1][y]. The interior of a drainage chart is always 1.
type Border struct {
	North []int `json:"north"`
	West  []int `json:"west"`
	South []int `json:"south"`
	East  []int `json:"east"`
}

func newBorder(dim int) *Border {
	ones := func() []int {
		s := make([]int, dim)
		for i := range s {
			s[i] = 1
		}
		return s
	}
	return &Border{North: ones(), West: ones(), South: ones(), East: ones()}
}

// Chart expands the border into a full dim x dim drainage chart.
func (b *Border) Chart() interp.Chart {
	dim := len(b.North)
	c := interp.NewChart(dim, 1)
	for i := 0; i < dim; i++ {
		c[i][0] = b.North[i]
		c[0][i] = b.West[i]
		c[i][dim-1] = b.South[i]
		c[dim-1][i] = b.East[i]
	}
	return c
}

// DrainageChart returns the full drainage chart of a finished region.
func (a *Arena) DrainageChart(key Key) (interp.Chart, error) {
	r, ok := a.Region(key)
	if !ok {
		return nil, fmt.Errorf("%w: no region at %+v", ErrUnknownContinent, key)
	}
	if !r.Finished || r.Drainage == nil {
		return nil, fmt.Errorf("%w: %+v", ErrNotDrained, key)
	}
	return r.Drainage.Chart(), nil
}

// drainageBorder seeds a region's border from the facing edges of finished
// cardinal neighbours. Each edge is written in north, west, south, east
// order and carries its shared corners, so later edges win at the corners.
func (a *Arena) drainageBorder(key Key) *Border {
	dim := a.ChartDim
	b := newBorder(dim)
	last := dim - 1
	finished := func(dx, dy int) *Border {
		if n, ok := a.Neighbor(key, dx, dy); ok && n.Finished {
			return n.Drainage
		}
		return nil
	}
	if n := finished(0, -1); n != nil {
		for x := range b.North {
			b.North[x] = 1 + n.South[x]
		}
		b.West[0], b.East[0] = b.North[0], b.North[last]
	}
	if n := finished(-1, 0); n != nil {
		for y := range b.West {
			b.West[y] = 1 + n.East[y]
		}
		b.North[0], b.South[0] = b.West[0], b.West[last]
	}
	if n := finished(0, 1); n != nil {
		for x := range b.South {
			b.South[x] = 1 + n.North[x]
		}
		b.West[last], b.East[last] = b.South[0], b.South[last]
	}
	if n := finished(1, 0); n != nil {
		for y := range b.East {
			b.East[y] = 1 + n.West[y]
		}
		b.North[last], b.South[last] = b.East[0], b.East[last]
	}
	return b
}
