// Package region splits continents into tiles, one per coarse cell, and
// propagates drainage across them from the highest tile downhill.
//
// Regions live in an Arena keyed by (continent, x, y). Neighbours are found
// by key lookup; regions hold no pointers to each other or to their continent.
package region

import (
	"errors"
	"fmt"

	"terragen/internal/classify"
	"terragen/internal/core"
)

// ChartDimension is the default edge length of a region's charts.
const ChartDimension = 100

var (
	// ErrUnknownContinent reports a continent id the arena does not hold.
	ErrUnknownContinent = errors.New("region: unknown continent")
	// ErrNotDrained reports a request for drainage data of an unfinished region.
	ErrNotDrained = errors.New("region: region has not been drained")
)

// Key addresses a region by continent id and position inside the
// continent's bounding box.
type Key struct {
	Continent int `json:"continent"`
	X         int `json:"x"`
	Y         int `json:"y"`
}

// Region is one tile of a continent.
type Region struct {
	Key  Key `json:"key"`
	Goal int `json:"goal"`

	Climate       int `json:"climate"`
	Precipitation int `json:"precipitation"`
	Temperature   int `json:"temperature"`
	Wind          int `json:"wind"`

	Finished bool `json:"finished"`
	// Drainage holds the border of the drainage chart once Finished is set.
	Drainage *Border `json:"-"`
}

// Continent holds the layers of one landmass cropped to its bounding box.
type Continent struct {
	ID     int             `json:"id"`
	Bounds classify.Bounds `json:"bounds"`

	Elevation     *core.IntGrid `json:"-"`
	Climate       *core.IntGrid `json:"-"`
	Precipitation *core.IntGrid `json:"-"`
	Temperature   *core.IntGrid `json:"-"`
	Wind          *core.IntGrid `json:"-"`

	// Order lists regions in the order drainage finished them.
	Order []Key `json:"order"`
}

// Arena owns every region of every continent.
type Arena struct {
	ChartDim int

	continents []*Continent
	regions    []Region
	index      map[Key]int
}

// Build crops the classification layers to each continent and creates a
// region for every cell of the continent's mask. Outside the mask the
// cropped temperature reads 50 and every other layer reads 0.
func Build(ids *core.IntGrid, count int, elev, climate, precip, temp *core.IntGrid, wind *core.VecField) (*Arena, error) {
	for _, g := range []*core.IntGrid{elev, climate, precip, temp} {
		if g == nil || !g.SameSize(ids.W, ids.H) {
			return nil, fmt.Errorf("%w: region layers must be %dx%d", classify.ErrShape, ids.W, ids.H)
		}
	}
	if wind == nil || wind.W != ids.W || wind.H != ids.H {
		return nil, fmt.Errorf("%w: wind field must be %dx%d", classify.ErrShape, ids.W, ids.H)
	}
	windX := wind.XComponents()

	a := &Arena{ChartDim: ChartDimension, index: make(map[Key]int)}
	for id, b := range classify.ContinentBounds(ids, count) {
		c := &Continent{
			ID:            id + 1,
			Bounds:        b,
			Elevation:     core.NewGrid[int](b.W(), b.H()),
			Climate:       core.NewGrid[int](b.W(), b.H()),
			Precipitation: core.NewGrid[int](b.W(), b.H()),
			Temperature:   core.NewGrid[int](b.W(), b.H()),
			Wind:          core.NewGrid[int](b.W(), b.H()),
		}
		c.Temperature.Fill(50)
		for y := 0; y < b.H(); y++ {
			for x := 0; x < b.W(); x++ {
				sx, sy := b.MinX+x, b.MinY+y
				if ids.At(sx, sy) != c.ID {
					continue
				}
				c.Elevation.Set(x, y, elev.At(sx, sy))
				c.Climate.Set(x, y, climate.At(sx, sy))
				c.Precipitation.Set(x, y, precip.At(sx, sy))
				c.Temperature.Set(x, y, temp.At(sx, sy))
				c.Wind.Set(x, y, windX.At(sx, sy))

				key := Key{Continent: c.ID, X: x, Y: y}
				a.index[key] = len(a.regions)
				a.regions = append(a.regions, Region{
					Key:           key,
					Goal:          elev.At(sx, sy),
					Climate:       climate.At(sx, sy),
					Precipitation: precip.At(sx, sy),
					Temperature:   temp.At(sx, sy),
					Wind:          windX.At(sx, sy),
				})
			}
		}
		a.continents = append(a.continents, c)
	}
	return a, nil
}

// Continents returns every continent in id order.
func (a *Arena) Continents() []*Continent { return a.continents }

// Continent returns the continent with the given id.
func (a *Arena) Continent(id int) (*Continent, error) {
	if id < 1 || id > len(a.continents) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownContinent, id)
	}
	return a.continents[id-1], nil
}

// Len returns the number of regions across all continents.
func (a *Arena) Len() int { return len(a.regions) }

// Region returns the region stored under key.
func (a *Arena) Region(key Key) (*Region, bool) {
	i, ok := a.index[key]
	if !ok {
		return nil, false
	}
	return &a.regions[i], true
}

// Neighbor returns the region offset by (dx, dy) from key on the same continent.
func (a *Arena) Neighbor(key Key, dx, dy int) (*Region, bool) {
	return a.Region(Key{Continent: key.Continent, X: key.X + dx, Y: key.Y + dy})
}

// Neighbors returns the keys of the up to eight regions surrounding key.
func (a *Arena) Neighbors(key Key) []Key {
	var out []Key
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if r, ok := a.Neighbor(key, dx, dy); ok {
				out = append(out, r.Key)
			}
		}
	}
	return out
}

// Regions returns the keys of a continent's regions in scan order.
func (a *Arena) Regions(continent int) []Key {
	var out []Key
	for _, r := range a.regions {
		if r.Key.Continent == continent {
			out = append(out, r.Key)
		}
	}
	return out
}

// Highest returns the first region of a continent with the greatest goal.
func (a *Arena) Highest(continent int) (Key, bool) {
	var best *Region
	for i := range a.regions {
		r := &a.regions[i]
		if r.Key.Continent != continent {
			continue
		}
		if best == nil || r.Goal > best.Goal {
			best = r
		}
	}
	if best == nil {
		return Key{}, false
	}
	return best.Key, true
}

func (a *Arena) goal(key Key) int {
	if r, ok := a.Region(key); ok {
		return r.Goal
	}
	return 0
}
