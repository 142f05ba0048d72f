package grid

import "math"

// TileKind is the terrain type of one maze cell.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileExit
)

// Walkable reports whether an entity may stand on the tile.
func (t TileKind) Walkable() bool {
	return t == TileFloor || t == TileExit
}

// Point is an integer tile coordinate.
type Point struct {
	X, Y int
}

// Manhattan returns the Manhattan distance between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Position is a continuous world coordinate measured in tiles.
// Truncation (floor) maps it onto the tile grid.
type Position struct {
	X, Y float64
}

// Tile returns the tile coordinate the position falls in.
func (p Position) Tile() Point {
	return Point{int(math.Floor(p.X)), int(math.Floor(p.Y))}
}

// Distance returns the Euclidean distance to q.
func (p Position) Distance(q Position) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// At returns the position centered on the given tile coordinate.
func At(pt Point) Position {
	return Position{float64(pt.X), float64(pt.Y)}
}

// Vec is an integer step vector. AI movement uses unit cardinal vectors;
// phase-capable mobs may combine both axes.
type Vec struct {
	X, Y int
}

// IsZero reports whether the vector has no direction.
func (v Vec) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Cardinals lists the four unit cardinal directions.
var Cardinals = [4]Vec{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// TileMap holds the tile grid for one maze level.
type TileMap struct {
	Width, Height int
	Tiles         [][]TileKind
}

// NewTileMap creates a TileMap filled with walls.
func NewTileMap(width, height int) *TileMap {
	tiles := make([][]TileKind, height)
	for y := range tiles {
		tiles[y] = make([]TileKind, width)
	}
	return &TileMap{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether (x, y) is within the map boundaries.
func (m *TileMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns the tile kind at (x, y). Out-of-bounds reads count as wall.
func (m *TileMap) At(x, y int) TileKind {
	if !m.InBounds(x, y) {
		return TileWall
	}
	return m.Tiles[y][x]
}

// Set replaces the tile at (x, y). Out-of-bounds writes are ignored.
func (m *TileMap) Set(x, y int, t TileKind) {
	if !m.InBounds(x, y) {
		return
	}
	m.Tiles[y][x] = t
}

// IsWalkable reports whether (x, y) is in bounds and not a wall.
func (m *TileMap) IsWalkable(x, y int) bool {
	return m.InBounds(x, y) && m.Tiles[y][x].Walkable()
}

// Collides reports whether the position is out of bounds or inside a wall.
func (m *TileMap) Collides(p Position) bool {
	pt := p.Tile()
	return !m.IsWalkable(pt.X, pt.Y)
}

// FloorTiles returns every walkable tile coordinate in scan order.
func (m *TileMap) FloorTiles() []Point {
	var out []Point
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Tiles[y][x].Walkable() {
				out = append(out, Point{x, y})
			}
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
