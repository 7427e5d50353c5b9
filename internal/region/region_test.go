package region

import (
	"context"
	"errors"
	"testing"

	"terragen/internal/classify"
	"terragen/internal/core"
	"terragen/internal/interp"
	pcore "terragen/pkg/core"
)

// buildArena turns an elevation grid into an arena using the real
// classification helpers.
func buildArena(t *testing.T, elev *core.IntGrid) *Arena {
	t.Helper()
	ocean := classify.OceanMask(elev, 25)
	ids, n := classify.Continents(ocean)
	dim := elev.W
	climate, err := classify.Climate(elev, core.NewIntGrid(dim), classify.Temperature(dim), 25, 75)
	if err != nil {
		t.Fatal(err)
	}
	a, err := Build(ids, n, elev, climate, core.NewIntGrid(dim), classify.Temperature(dim), classify.WindField(dim))
	if err != nil {
		t.Fatal(err)
	}
	a.ChartDim = 10
	return a
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// hill is a 7x7 map with a 5x5 island whose height falls off from the centre.
func hill() *core.IntGrid {
	g := core.NewIntGrid(7)
	for y := 1; y <= 5; y++ {
		for x := 1; x <= 5; x++ {
			g.Set(x, y, 90-10*(abs(x-3)+abs(y-3)))
		}
	}
	return g
}

func TestBuildCropsContinents(t *testing.T) {
	elev := core.NewIntGrid(8)
	elev.Set(1, 1, 50)
	elev.Set(2, 1, 60)
	elev.Set(5, 5, 40)
	elev.Set(5, 6, 45)
	a := buildArena(t, elev)
	if len(a.Continents()) != 2 || a.Len() != 4 {
		t.Fatalf("got %d continents and %d regions", len(a.Continents()), a.Len())
	}
	c, err := a.Continent(2)
	if err != nil {
		t.Fatal(err)
	}
	if c.Elevation.W != 1 || c.Elevation.H != 2 || c.Elevation.At(0, 1) != 45 {
		t.Fatalf("continent 2 cropped wrong: %dx%d", c.Elevation.W, c.Elevation.H)
	}
	r, ok := a.Region(Key{Continent: 1, X: 1, Y: 0})
	if !ok || r.Goal != 60 {
		t.Fatal("region (1,0) of continent 1 should carry goal 60")
	}
	if _, ok := a.Neighbor(Key{Continent: 1, X: 1, Y: 0}, -1, 0); !ok {
		t.Fatal("neighbor lookup failed")
	}
	if _, ok := a.Neighbor(Key{Continent: 1, X: 1, Y: 0}, 0, 1); ok {
		t.Fatal("lookup outside the continent should miss")
	}
	if _, err := a.Continent(3); !errors.Is(err, ErrUnknownContinent) {
		t.Fatalf("expected ErrUnknownContinent, got %v", err)
	}
}

func TestBuildDefaultsTemperatureOutsideMask(t *testing.T) {
	elev := core.NewIntGrid(6)
	elev.Set(1, 1, 50)
	elev.Set(2, 2, 50)
	elev.Set(1, 2, 50)
	a := buildArena(t, elev)
	c, _ := a.Continent(1)
	if c.Temperature.At(1, 0) != 50 {
		t.Fatalf("cell outside the mask should read 50, got %d", c.Temperature.At(1, 0))
	}
}

func TestBuildRejectsMismatchedLayers(t *testing.T) {
	ids := core.NewIntGrid(4)
	_, err := Build(ids, 0, core.NewIntGrid(4), core.NewIntGrid(3), core.NewIntGrid(4), core.NewIntGrid(4), core.NewVecField(4, 4))
	if !errors.Is(err, classify.ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
}

func TestDrainOrderFallsFromThePeak(t *testing.T) {
	a := buildArena(t, hill())
	if err := a.Drain(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	c, _ := a.Continent(1)
	if len(c.Order) != a.Len() {
		t.Fatalf("drained %d of %d regions", len(c.Order), a.Len())
	}
	seen := map[Key]bool{}
	prev := 1 << 30
	for _, k := range c.Order {
		if seen[k] {
			t.Fatalf("region %+v finished twice", k)
		}
		seen[k] = true
		r, _ := a.Region(k)
		if r.Goal > prev {
			t.Fatalf("goal rose from %d to %d at %+v", prev, r.Goal, k)
		}
		prev = r.Goal
	}
	if first, _ := a.Region(c.Order[0]); first.Goal != 90 {
		t.Fatalf("drainage should start at the peak, got goal %d", first.Goal)
	}
}

func TestFinishedRegionsAreNotRecomputed(t *testing.T) {
	a := buildArena(t, hill())
	if err := a.DrainAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	c, _ := a.Continent(1)
	order := len(c.Order)
	key := c.Order[3]
	r, _ := a.Region(key)
	border := r.Drainage
	if err := a.Drain(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if len(c.Order) != order || r.Drainage != border {
		t.Fatal("second drain revisited finished regions")
	}
}

func TestDrainageSeedsFromFinishedNeighbour(t *testing.T) {
	elev := core.NewIntGrid(4)
	elev.Set(1, 1, 60)
	elev.Set(2, 1, 40)
	a := buildArena(t, elev)
	if err := a.Drain(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	high, err := a.DrainageChart(Key{Continent: 1, X: 0, Y: 0})
	if err != nil {
		t.Fatal(err)
	}
	for x := range high {
		for y, v := range high[x] {
			if v != 1 {
				t.Fatalf("first region should be all ones, got %d at (%d,%d)", v, x, y)
			}
		}
	}
	low, err := a.DrainageChart(Key{Continent: 1, X: 1, Y: 0})
	if err != nil {
		t.Fatal(err)
	}
	if low[0][5] != 2 || low[0][0] != 2 || low[0][9] != 2 {
		t.Fatalf("west edge should be 1 + neighbour's east edge, got %v", low[0])
	}
	if low[5][5] != 1 || low[5][0] != 1 || low[9][5] != 1 {
		t.Fatal("cells away from the finished neighbour should stay 1")
	}
}

func TestDrainCancellation(t *testing.T) {
	a := buildArena(t, hill())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Drain(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestElevationChartOfFlatInteriorIsFlat(t *testing.T) {
	elev := core.NewIntGrid(5)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			elev.Set(x, y, 40)
		}
	}
	a := buildArena(t, elev)
	chart, err := a.ElevationChart(Key{Continent: 1, X: 1, Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	for x := range chart {
		for y, v := range chart[x] {
			if v != 40 {
				t.Fatalf("chart[%d][%d] = %d, want 40", x, y, v)
			}
		}
	}
}

func TestWaterFlowStaysOnFlatGround(t *testing.T) {
	water := interp.NewChart(6, 3)
	elev := interp.NewChart(6, 20)
	out := flowPass(water, elev, pcore.NewRNG(1))
	for x := range out {
		for y, v := range out[x] {
			if v != 3 {
				t.Fatalf("water moved on flat ground at (%d,%d): %d", x, y, v)
			}
		}
	}
}

func TestWaterFlowRunsDownhill(t *testing.T) {
	dim := 10
	water := interp.NewChart(dim, 1)
	elev := interp.NewChart(dim, 0)
	for x := range elev {
		for y := range elev[x] {
			elev[x][y] = 100 - x
		}
	}
	rng := pcore.NewRNG(5)
	total := func(c interp.Chart) int {
		s := 0
		for x := range c {
			for _, v := range c[x] {
				s += v
			}
		}
		return s
	}
	for i := 0; i < 30; i++ {
		next := flowPass(water, elev, rng)
		if total(next) != total(water) {
			t.Fatalf("pass %d changed the amount of water: %d -> %d", i, total(water), total(next))
		}
		water = next
	}
	low := 0
	for y := 0; y < dim; y++ {
		low += water[dim-1][y]
	}
	if low <= dim {
		t.Fatalf("expected water to pool in the lowest column, got %d", low)
	}

	maxFlow := WaterFlow(interp.NewChart(dim, 1), elev, pcore.NewRNG(5), DefaultFlowPasses)
	for x := range maxFlow {
		for y, v := range maxFlow[x] {
			if v < 0 || v > MaxCellFlow+4*dim {
				t.Fatalf("max flow out of range at (%d,%d): %d", x, y, v)
			}
		}
	}
}

func TestArenaWaterFlowNeedsDrainage(t *testing.T) {
	a := buildArena(t, hill())
	key, _ := a.Highest(1)
	if _, err := a.WaterFlow(key, pcore.NewRNG(1), 2); !errors.Is(err, ErrNotDrained) {
		t.Fatalf("expected ErrNotDrained, got %v", err)
	}
	if err := a.Drain(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	flow, err := a.WaterFlow(key, pcore.NewRNG(1), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(flow) != a.ChartDim {
		t.Fatalf("flow chart is %d wide, want %d", len(flow), a.ChartDim)
	}
}
