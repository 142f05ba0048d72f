package grid

// HasLineOfSight walks the Bresenham line between the tiles containing from
// and to, and reports false when any traversed cell is a wall. The endpoints
// themselves do not block.
func (m *TileMap) HasLineOfSight(from, to Position) bool {
	a := from.Tile()
	b := to.Tile()

	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	sx := 1
	if a.X > b.X {
		sx = -1
	}
	sy := 1
	if a.Y > b.Y {
		sy = -1
	}
	err := dx - dy

	x, y := a.X, a.Y
	for {
		if x == b.X && y == b.Y {
			return true
		}
		if (x != a.X || y != a.Y) && m.At(x, y) == TileWall {
			return false
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// AttackShape enumerates the tiles a weapon can strike from the given
// position. The base weapon name selects the shape:
//
//	sword, dagger, mace, "": the 4 cardinal neighbors
//	spear:                   2-tile cardinal lines (both cells per direction)
//	axe:                     all 8 neighbors including diagonals
func AttackShape(p Position, weaponBase string) []Point {
	c := p.Tile()
	switch weaponBase {
	case "spear":
		out := make([]Point, 0, 8)
		for _, d := range Cardinals {
			out = append(out,
				Point{c.X + d.X, c.Y + d.Y},
				Point{c.X + 2*d.X, c.Y + 2*d.Y})
		}
		return out
	case "axe":
		out := make([]Point, 0, 8)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				out = append(out, Point{c.X + dx, c.Y + dy})
			}
		}
		return out
	default:
		// sword, dagger, mace, and bare hands share the cardinal shape.
		out := make([]Point, 0, 4)
		for _, d := range Cardinals {
			out = append(out, Point{c.X + d.X, c.Y + d.Y})
		}
		return out
	}
}

// BFSDistances runs a breadth-first flood over walkable tiles from start and
// returns the step distance to every reached tile. Unreached tiles are absent
// from the map.
func (m *TileMap) BFSDistances(start Point) map[Point]int {
	dist := map[Point]int{}
	if !m.IsWalkable(start.X, start.Y) {
		return dist
	}
	dist[start] = 0
	queue := []Point{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range Cardinals {
			next := Point{cur.X + d.X, cur.Y + d.Y}
			if _, seen := dist[next]; seen {
				continue
			}
			if !m.IsWalkable(next.X, next.Y) {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}
	return dist
}
