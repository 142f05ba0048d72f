package grid

import "testing"

func TestPositionTileTruncation(t *testing.T) {
	cases := []struct {
		pos  Position
		want Point
	}{
		{Position{0, 0}, Point{0, 0}},
		{Position{3.9, 2.1}, Point{3, 2}},
		{Position{5.0, 5.999}, Point{5, 5}},
		{Position{-0.5, 1}, Point{-1, 1}},
	}
	for _, c := range cases {
		if got := c.pos.Tile(); got != c.want {
			t.Errorf("Tile(%v) = %v, want %v", c.pos, got, c.want)
		}
	}
}

func TestCollides(t *testing.T) {
	m := NewTileMap(4, 4)
	m.Set(1, 1, TileFloor)
	m.Set(2, 1, TileExit)

	cases := []struct {
		pos  Position
		want bool
	}{
		{Position{1.5, 1.5}, false}, // floor
		{Position{2.2, 1.0}, false}, // exit counts as walkable
		{Position{0, 0}, true},      // wall
		{Position{-1, 1}, true},     // out of bounds
		{Position{3.5, 9}, true},    // out of bounds
	}
	for _, c := range cases {
		if got := m.Collides(c.pos); got != c.want {
			t.Errorf("Collides(%v) = %v, want %v", c.pos, got, c.want)
		}
	}
}

func TestLineOfSightBlockedByWall(t *testing.T) {
	m := NewTileMap(7, 3)
	for x := 0; x < 7; x++ {
		m.Set(x, 1, TileFloor)
	}
	from := Position{0, 1}
	to := Position{6, 1}
	if !m.HasLineOfSight(from, to) {
		t.Fatal("clear corridor should have line of sight")
	}
	m.Set(3, 1, TileWall)
	if m.HasLineOfSight(from, to) {
		t.Fatal("wall at (3,1) should block line of sight")
	}
}

func TestLineOfSightEndpointsDoNotBlock(t *testing.T) {
	m := NewTileMap(3, 3)
	m.Set(1, 1, TileFloor)
	// Both endpoints are wall tiles; only traversed interior cells block.
	if !m.HasLineOfSight(Position{0, 1}, Position{2, 1}) {
		t.Fatal("adjacent-through-floor sight should pass")
	}
}

func TestAttackShape(t *testing.T) {
	pos := Position{5, 5}
	cases := []struct {
		weapon string
		count  int
	}{
		{"", 4},
		{"sword", 4},
		{"dagger", 4},
		{"mace", 4},
		{"spear", 8},
		{"axe", 8},
	}
	for _, c := range cases {
		got := AttackShape(pos, c.weapon)
		if len(got) != c.count {
			t.Errorf("AttackShape(%q) returned %d tiles, want %d", c.weapon, len(got), c.count)
		}
	}

	// Spear reaches two tiles out on each axis.
	found := false
	for _, p := range AttackShape(pos, "spear") {
		if p == (Point{7, 5}) {
			found = true
		}
	}
	if !found {
		t.Error("spear shape should include the 2-tile cardinal cell (7,5)")
	}

	// Axe includes diagonals.
	found = false
	for _, p := range AttackShape(pos, "axe") {
		if p == (Point{4, 4}) {
			found = true
		}
	}
	if !found {
		t.Error("axe shape should include the diagonal cell (4,4)")
	}
}

func TestBFSDistances(t *testing.T) {
	m := NewTileMap(5, 5)
	for x := 0; x < 5; x++ {
		m.Set(x, 2, TileFloor)
	}
	m.Set(2, 1, TileFloor)

	dist := m.BFSDistances(Point{0, 2})
	if d := dist[Point{4, 2}]; d != 4 {
		t.Errorf("distance to (4,2) = %d, want 4", d)
	}
	if d := dist[Point{2, 1}]; d != 3 {
		t.Errorf("distance to (2,1) = %d, want 3", d)
	}
	if _, ok := dist[Point{0, 0}]; ok {
		t.Error("unreachable wall tile should not appear in distances")
	}
}
