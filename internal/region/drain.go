package region

import (
	"context"
	"slices"
)

// drainOffsets are the cardinal neighbours in the order drainage visits them.
var drainOffsets = [4][2]int{{0, -1}, {-1, 0}, {0, 1}, {1, 0}}

// Drain propagates drainage over one continent. The open list starts with
// the highest region and is always consumed from its head; neighbours of a
// finished region are inserted before the first entry whose goal is not
// greater than theirs, so a region reached by downhill steps is finished
// after everything above it. A finished region is never revisited, which
// makes a second call a no-op.
func (a *Arena) Drain(ctx context.Context, continent int) error {
	c, err := a.Continent(continent)
	if err != nil {
		return err
	}
	seed, ok := a.Highest(continent)
	if !ok {
		return nil
	}
	if r, _ := a.Region(seed); r.Finished {
		return nil
	}

	open := []Key{seed}
	queued := map[Key]bool{seed: true}
	for len(open) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		key := open[0]
		open = open[1:]
		delete(queued, key)
		cur, _ := a.Region(key)
		if cur.Finished {
			continue
		}
		cur.Drainage = a.drainageBorder(key)

		for _, d := range drainOffsets {
			n, ok := a.Neighbor(key, d[0], d[1])
			if !ok || n.Finished || queued[n.Key] {
				continue
			}
			at := 0
			for at < len(open) && a.goal(open[at]) > n.Goal {
				at++
			}
			open = slices.Insert(open, at, n.Key)
			queued[n.Key] = true
		}
		cur.Finished = true
		c.Order = append(c.Order, key)
	}
	return nil
}

// DrainAll drains every continent in id order.
func (a *Arena) DrainAll(ctx context.Context) error {
	for _, c := range a.continents {
		if err := a.Drain(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}
