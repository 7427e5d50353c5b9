// Package render turns result layers into images.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sort"

	"terragen/internal/core"
	"terragen/internal/terrain"
)

// ErrUnknownLayer reports a layer name that has not been registered.
var ErrUnknownLayer = errors.New("render: unknown layer")

// DrawFunc renders one layer of a result.
type DrawFunc func(res *terrain.Result) *image.RGBA

var layers = map[string]DrawFunc{}

// Register adds a layer renderer under the provided name.
func Register(name string, f DrawFunc) {
	if name == "" || f == nil {
		return
	}
	layers[name] = f
}

// Layers lists the registered layer names in sorted order.
func Layers() []string {
	names := make([]string, 0, len(layers))
	for name := range layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Image renders the named layer of res.
func Image(name string, res *terrain.Result) (*image.RGBA, error) {
	if res == nil {
		return nil, terrain.ErrNotGenerated
	}
	f, ok := layers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
	}
	return f(res), nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

var (
	terrainStops = []color.RGBA{
		{R: 12, G: 30, B: 80, A: 255},
		{R: 40, G: 110, B: 170, A: 255},
		{R: 70, G: 140, B: 70, A: 255},
		{R: 150, G: 130, B: 80, A: 255},
		{R: 245, G: 245, B: 245, A: 255},
	}
	heatStops = []color.RGBA{
		{R: 30, G: 40, B: 160, A: 255},
		{R: 240, G: 220, B: 80, A: 255},
		{R: 200, G: 40, B: 30, A: 255},
	}

	// climatePalette is indexed by classify climate category.
	climatePalette = []color.RGBA{
		{R: 20, G: 60, B: 140, A: 255},
		{R: 10, G: 110, B: 40, A: 255},
		{R: 40, G: 140, B: 60, A: 255},
		{R: 130, G: 180, B: 90, A: 255},
		{R: 220, G: 200, B: 120, A: 255},
		{R: 220, G: 230, B: 235, A: 255},
		{R: 120, G: 110, B: 100, A: 255},
	}
	continentPalette = []color.RGBA{
		{R: 230, G: 25, B: 75, A: 255},
		{R: 60, G: 180, B: 75, A: 255},
		{R: 255, G: 225, B: 25, A: 255},
		{R: 0, G: 130, B: 200, A: 255},
		{R: 245, G: 130, B: 48, A: 255},
		{R: 145, G: 30, B: 180, A: 255},
		{R: 70, G: 240, B: 240, A: 255},
		{R: 240, G: 50, B: 230, A: 255},
	}

	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	water = color.RGBA{R: 20, G: 60, B: 140, A: 255}
)

func newRGBA(w, h int) *image.RGBA { return image.NewRGBA(image.Rect(0, 0, w, h)) }

func gradient(g *core.FloatGrid, stops []color.RGBA) *image.RGBA {
	img := newRGBA(g.W, g.H)
	lo, hi := g.MinMax()
	fillGradientRGBA(img.Pix, g.Cells(), lo, hi, stops)
	return img
}

func fixedGradient(g *core.IntGrid, lo, hi float64, stops []color.RGBA) *image.RGBA {
	img := newRGBA(g.W, g.H)
	fillGradientRGBA(img.Pix, core.ToFloat(g).Cells(), lo, hi, stops)
	return img
}

func binary(g *core.IntGrid, on, off color.RGBA) *image.RGBA {
	img := newRGBA(g.W, g.H)
	fillBinaryRGBA(img.Pix, g.Cells(), on, off)
	return img
}

// continents draws ocean in water blue and cycles through a palette by id.
func continents(g *core.IntGrid) *image.RGBA {
	img := newRGBA(g.W, g.H)
	palette := append([]color.RGBA{water}, continentPalette...)
	ids := make([]int, len(g.Cells()))
	for i, id := range g.Cells() {
		if id > 0 {
			ids[i] = 1 + (id-1)%len(continentPalette)
		}
	}
	fillPaletteRGBA(img.Pix, ids, palette)
	return img
}

func init() {
	Register("elevation", func(r *terrain.Result) *image.RGBA { return fixedGradient(r.Elevation, 0, 100, terrainStops) })
	Register("eroded", func(r *terrain.Result) *image.RGBA { return gradient(r.Eroded, terrainStops) })
	Register("model", func(r *terrain.Result) *image.RGBA { return gradient(r.ModelInput, terrainStops) })
	Register("ocean", func(r *terrain.Result) *image.RGBA { return binary(r.Ocean, water, black) })
	Register("mountain", func(r *terrain.Result) *image.RGBA { return binary(r.Mountain, white, black) })
	Register("precipitation", func(r *terrain.Result) *image.RGBA { return binary(r.Precipitation, water, black) })
	Register("temperature", func(r *terrain.Result) *image.RGBA { return fixedGradient(r.Temperature, 0, 100, heatStops) })
	Register("climate", func(r *terrain.Result) *image.RGBA {
		img := newRGBA(r.Climate.W, r.Climate.H)
		fillPaletteRGBA(img.Pix, r.Climate.Cells(), climatePalette)
		return img
	})
	Register("continents", func(r *terrain.Result) *image.RGBA { return continents(r.ContinentIDs) })
}
