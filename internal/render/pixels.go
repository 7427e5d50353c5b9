package render

import "image/color"

// fillBinaryRGBA converts mask cells (non-zero = on) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []int, on, off color.RGBA) {
	for i, c := range cells {
		col := off
		if c != 0 {
			col = on
		}
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette.
// Values past the end of the palette wrap around; an empty palette clears
// the buffer to transparent black.
func fillPaletteRGBA(buf []byte, cells []int, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf)
		return
	}
	for i, c := range cells {
		idx := c % len(palette)
		if idx < 0 {
			idx += len(palette)
		}
		col := palette[idx]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillGradientRGBA maps values in [lo, hi] onto a ramp of colour stops.
func fillGradientRGBA(buf []byte, cells []float64, lo, hi float64, stops []color.RGBA) {
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	last := len(stops) - 1
	for i, v := range cells {
		t := (v - lo) / span
		t = max(0, min(t, 1))
		pos := t * float64(last)
		k := min(int(pos), last-1)
		f := pos - float64(k)
		a, b := stops[k], stops[k+1]
		base := i * 4
		buf[base+0] = lerp8(a.R, b.R, f)
		buf[base+1] = lerp8(a.G, b.G, f)
		buf[base+2] = lerp8(a.B, b.B, f)
		buf[base+3] = 255
	}
}

func lerp8(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f + 0.5)
}
