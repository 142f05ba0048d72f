// Package generate builds fully populated maze levels: carved tiles, exit
// placement, mobs, items, portals, and lightswitches.
package generate

import (
	"math/rand"
	"time"

	"mazecrawl/internal/grid"
	"mazecrawl/internal/item"
	"mazecrawl/internal/scaling"
	"mazecrawl/internal/world"
)

// Level cadence constants.
const (
	BossInterval = 5 // every 5th level is a boss sector
	ShopInterval = 4 // every 4th non-boss level is a shop sector

	// UnlockEvery introduces one new mob subtype per this many normal
	// levels.
	UnlockEvery = 2

	// CerberusEliteLevel is the first boss level that also spawns
	// cerberus elites.
	CerberusEliteLevel = 15

	loopChance     = 0.05 // share of eligible walls opened into cycles
	minSpawnDist   = 8    // Manhattan distance from start for mob spawns
	placeAttempts  = 1000 // attempt budget before degrading placement
	maxLightswitch = 4
	switchSpacing  = 6
)

// Config drives generation of one level.
type Config struct {
	Level  int
	Width  int
	Height int
	Rand   *rand.Rand

	Scaling *scaling.Engine
	Items   *item.Generator

	// Economy, when set, records every placed item as an offer.
	Economy *item.Economy

	// PlayerPower enables adaptive scaling when positive.
	PlayerPower float64
	// PlayerCoins is the balance stamped onto offer records.
	PlayerCoins int
	// EliteWeightCut scales elite spawn weight; 1.0 is neutral.
	EliteWeightCut float64
}

// IsBossLevel reports whether the level number is a boss sector.
func IsBossLevel(n int) bool { return n%BossInterval == 0 }

// IsShopLevel reports whether the level number is a shop sector.
func IsShopLevel(n int) bool { return n%ShopInterval == 0 && !IsBossLevel(n) }

// Generate carves and populates one level.
func Generate(cfg *Config) *world.Level {
	width, height := oddDim(cfg.Width), oddDim(cfg.Height)
	tiles := grid.NewTileMap(width, height)

	carve(tiles, cfg.Rand)
	openLoops(tiles, cfg.Rand)

	lvl := &world.Level{
		Tiles:  tiles,
		Number: cfg.Level,
		IsBoss: IsBossLevel(cfg.Level),
		IsShop: IsShopLevel(cfg.Level),
		Start:  grid.Point{X: 1, Y: 1},
	}

	if !lvl.IsBoss {
		lvl.Exit = farthestFloor(tiles, lvl.Start)
		tiles.Set(lvl.Exit.X, lvl.Exit.Y, grid.TileExit)
	} else {
		// Boss levels earn their exit when the boss dies.
		lvl.Exit = lvl.Start
	}

	if !lvl.IsShop && !lvl.IsBoss {
		lvl.TimeLimit = levelTimeLimit(cfg.Level)
	}

	populate(lvl, cfg)
	return lvl
}

// levelTimeLimit bounds normal levels, growing with maze size.
func levelTimeLimit(level int) time.Duration {
	limit := 60*time.Second + time.Duration(level)*10*time.Second
	if limit > 4*time.Minute {
		limit = 4 * time.Minute
	}
	return limit
}

// carve runs a recursive backtracker over the half-resolution cell grid
// (steps of 2 tiles) starting at (1,1), producing a perfect maze.
func carve(m *grid.TileMap, rng *rand.Rand) {
	start := grid.Point{X: 1, Y: 1}
	m.Set(start.X, start.Y, grid.TileFloor)

	stack := []grid.Point{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		var options []grid.Vec
		for _, d := range grid.Cardinals {
			nx, ny := cur.X+2*d.X, cur.Y+2*d.Y
			if m.InBounds(nx, ny) && m.At(nx, ny) == grid.TileWall {
				options = append(options, d)
			}
		}
		if len(options) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := options[rng.Intn(len(options))]
		m.Set(cur.X+d.X, cur.Y+d.Y, grid.TileFloor)
		next := grid.Point{X: cur.X + 2*d.X, Y: cur.Y + 2*d.Y}
		m.Set(next.X, next.Y, grid.TileFloor)
		stack = append(stack, next)
	}
}

// openLoops knocks out a small share of the walls that separate two floor
// regions, adding cycles so the maze is not a pure tree of dead-ends.
func openLoops(m *grid.TileMap, rng *rand.Rand) {
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			if m.At(x, y) != grid.TileWall {
				continue
			}
			floors := 0
			for _, d := range grid.Cardinals {
				if m.At(x+d.X, y+d.Y) == grid.TileFloor {
					floors++
				}
			}
			if floors >= 2 && rng.Float64() < loopChance {
				m.Set(x, y, grid.TileFloor)
			}
		}
	}
}

// farthestFloor BFS-floods from start and returns the reachable floor tile
// with the greatest step distance. Falls back to the last floor tile in scan
// order when the flood comes back empty.
func farthestFloor(m *grid.TileMap, start grid.Point) grid.Point {
	dist := m.BFSDistances(start)

	best := start
	bestDist := -1
	for pt, d := range dist {
		if d > bestDist || (d == bestDist && (pt.Y < best.Y || (pt.Y == best.Y && pt.X < best.X))) {
			best = pt
			bestDist = d
		}
	}
	if bestDist <= 0 {
		floors := m.FloorTiles()
		if len(floors) > 0 {
			return floors[len(floors)-1]
		}
	}
	return best
}

// oddDim forces carver-compatible odd dimensions, minimum 7.
func oddDim(v int) int {
	if v < 7 {
		v = 7
	}
	if v%2 == 0 {
		v--
	}
	return v
}
