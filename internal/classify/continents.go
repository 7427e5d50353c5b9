package classify

import "terragen/internal/core"

var cardinals = [4][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}

// Continents labels every 4-connected run of land (ocean mask 0) with an id
// counting up from 1 in scan order. Ocean cells stay 0. It returns the labels
// and the number of continents found.
func Continents(ocean *core.IntGrid) (*core.IntGrid, int) {
	ids := core.NewGrid[int](ocean.W, ocean.H)
	next := 0
	var stack [][2]int
	for y := 0; y < ocean.H; y++ {
		for x := 0; x < ocean.W; x++ {
			if ocean.At(x, y) != 0 || ids.At(x, y) != 0 {
				continue
			}
			next++
			ids.Set(x, y, next)
			stack = append(stack[:0], [2]int{x, y})
			for len(stack) > 0 {
				c := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for _, d := range cardinals {
					nx, ny := c[0]+d[0], c[1]+d[1]
					if !ocean.InBounds(nx, ny) || ocean.At(nx, ny) != 0 || ids.At(nx, ny) != 0 {
						continue
					}
					ids.Set(nx, ny, next)
					stack = append(stack, [2]int{nx, ny})
				}
			}
		}
	}
	return ids, next
}

// Bounds is an inclusive bounding box.
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// W is the box width.
func (b Bounds) W() int { return b.MaxX - b.MinX + 1 }

// H is the box height.
func (b Bounds) H() int { return b.MaxY - b.MinY + 1 }

// ContinentBounds returns the bounding box of each continent, indexed by id-1.
func ContinentBounds(ids *core.IntGrid, count int) []Bounds {
	out := make([]Bounds, count)
	seen := make([]bool, count)
	for y := 0; y < ids.H; y++ {
		for x := 0; x < ids.W; x++ {
			id := ids.At(x, y)
			if id < 1 || id > count {
				continue
			}
			b := &out[id-1]
			if !seen[id-1] {
				*b = Bounds{MinX: x, MinY: y, MaxX: x, MaxY: y}
				seen[id-1] = true
				continue
			}
			b.MinX = min(b.MinX, x)
			b.MinY = min(b.MinY, y)
			b.MaxX = max(b.MaxX, x)
			b.MaxY = max(b.MaxY, y)
		}
	}
	return out
}
