package tectonic

import (
	"testing"

	"terragen/internal/core"
)

func TestHotspotRampPeaksAtMidLife(t *testing.T) {
	h := NewHotspot(5, 5, 100, 5)
	h.Age = 50
	h.updateMagnitude()
	if h.Magnitude != 5 || h.Intensity() != 100 {
		t.Fatalf("mid-life magnitude=%d intensity=%d, want 5/100", h.Magnitude, h.Intensity())
	}
	h.Age = 0
	h.updateMagnitude()
	if h.Magnitude != 1 || h.Intensity() != 0 {
		t.Fatalf("birth magnitude=%d intensity=%d, want 1/0", h.Magnitude, h.Intensity())
	}
	h.Age = 25
	h.updateMagnitude()
	if h.Magnitude != 3 {
		t.Fatalf("quarter-life magnitude=%d, want int(0.6*5)=3", h.Magnitude)
	}
}

func TestHotspotFootprintGrowsWithMagnitude(t *testing.T) {
	prev := 0
	for m := 1; m <= 5; m++ {
		n := len(Footprint(m))
		if n < prev {
			t.Fatalf("footprint shrank at magnitude %d: %d < %d", m, n, prev)
		}
		prev = n
	}
	if len(Footprint(0)) != 0 {
		t.Fatal("magnitude 0 should heat nothing")
	}
	if len(Footprint(5)) != 13 {
		t.Fatalf("magnitude 5 diamond has %d cells, want 13", len(Footprint(5)))
	}
}

func TestHotspotStampClipsAndAges(t *testing.T) {
	heat := core.NewIntGrid(4)
	h := NewHotspot(0, 0, 10, 5)
	h.Age = 5
	h.Stamp(heat)
	if h.Age != 6 {
		t.Fatalf("age = %d, want 6", h.Age)
	}
	if heat.At(0, 0) != 100 || heat.At(2, 0) != 100 || heat.At(1, 1) != 100 {
		t.Fatal("footprint not stamped at expected cells")
	}
	if heat.At(3, 3) != 0 {
		t.Fatal("cell outside footprint was heated")
	}
	h.Age = h.Life
	if !h.Expired() {
		t.Fatal("hotspot should expire at its lifespan")
	}
}

func TestConvectionVectorsHaveFixedLength(t *testing.T) {
	field := ConvectionCells(64)
	for i, v := range field.Cells() {
		l := v.Len()
		if l < 97 || l > 99.01 {
			t.Fatalf("vector %d has length %v", i, l)
		}
	}
}
