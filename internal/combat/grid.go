package combat

import (
	"math"
	"sort"

	"github.com/polarforge/santavors/internal/core"
	"github.com/polarforge/santavors/internal/session"
)

// cell is a coarse grid coordinate on the gameplay plane.
type cell struct {
	X, Z int
}

// grid is a spatial hash over enemy positions. It is rebuilt every tick and
// queried for candidates in the same or adjacent cells only, which keeps
// collision testing away from O(n^2) when the horde grows.
type grid struct {
	size  float64
	cells map[cell][]*session.Enemy
}

func newGrid(cellSize float64) *grid {
	return &grid{
		size:  cellSize,
		cells: make(map[cell][]*session.Enemy),
	}
}

func (g *grid) cellFor(p core.Vec3) cell {
	return cell{
		X: int(math.Floor(p.X / g.size)),
		Z: int(math.Floor(p.Z / g.size)),
	}
}

// rebuild reindexes all live enemies. Indexing follows ascending enemy ID
// so that candidate order, and therefore hit resolution, is reproducible.
func (g *grid) rebuild(enemies map[int]*session.Enemy) {
	clear(g.cells)
	ids := make([]int, 0, len(enemies))
	for id := range enemies {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		e := enemies[id]
		c := g.cellFor(e.Pos)
		g.cells[c] = append(g.cells[c], e)
	}
}

// nearby returns the enemies in the cell containing p and its eight
// neighbors. Entities further apart than one cell can never collide as long
// as the cell size exceeds the largest combined collision radius.
func (g *grid) nearby(p core.Vec3) []*session.Enemy {
	c := g.cellFor(p)
	var out []*session.Enemy
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			out = append(out, g.cells[cell{c.X + dx, c.Z + dz}]...)
		}
	}
	return out
}
