// Package world holds the mutable simulation state: the level, its
// entities and ephemera, and the player. The update loop owns a Level
// exclusively; renderers see read-only snapshots.
package world

import (
	"time"

	"mazecrawl/internal/grid"
	"mazecrawl/internal/item"
)

// ProjectileLifetime is the fixed lifespan of every projectile.
const ProjectileLifetime = 3 * time.Second

// Projectile is an in-flight shot. Velocity is a unit cardinal vector.
type Projectile struct {
	ID        int64
	Pos       grid.Position
	Vel       grid.Vec
	Speed     float64 // tiles per second
	Damage    int
	OwnerID   int64
	CreatedAt time.Duration
	Lifetime  time.Duration

	// ShadowPulse marks moth shots that stack a vision debuff on hit.
	ShadowPulse bool
	// WallPhaseChance is rolled on every wall collision; 1.0 always
	// passes through, 0 always despawns.
	WallPhaseChance float64
}

// Afterimage is the harmful trail a pouncing tracker leaves behind.
type Afterimage struct {
	Pos       grid.Point
	Damage    int
	CreatedAt time.Duration
	Lifetime  time.Duration
	Touched   bool // chip damage applies once
}

// Particle is purely cosmetic (moth blinks, portal shimmer).
type Particle struct {
	Pos       grid.Position
	Kind      string
	CreatedAt time.Duration
	Lifetime  time.Duration
}

// Footprint is the player's cosmetic trail.
type Footprint struct {
	Pos       grid.Point
	CreatedAt time.Duration
	Lifetime  time.Duration
}

// Portal teleports the player to Target on tile arrival.
type Portal struct {
	Pos    grid.Point
	Target grid.Point
}

// Lightswitch widens vision for the rest of the level once stepped on.
type Lightswitch struct {
	Pos       grid.Point
	Activated bool
}

// GroundItem is an item lying on a tile. Offer indexes the economy record
// created when the item was placed; -1 when untracked.
type GroundItem struct {
	Pos   grid.Point
	Item  item.Item
	Offer int
}

// Level is one maze instance with everything in it.
type Level struct {
	Tiles  *grid.TileMap
	Number int
	IsBoss bool
	IsShop bool

	Start grid.Point
	Exit  grid.Point // placeholder on boss levels until the boss dies

	Entities      []*Entity
	Projectiles   []Projectile
	Afterimages   []Afterimage
	Particles     []Particle
	Footprints    []Footprint
	Items         []GroundItem
	Portals       []Portal
	Lightswitches []Lightswitch

	// TimeLimit bounds normal levels; 0 disables the timer.
	TimeLimit time.Duration
}

// EntityAt returns the first alive entity on the given tile, or nil.
func (l *Level) EntityAt(pt grid.Point) *Entity {
	for _, e := range l.Entities {
		if e.Alive() && e.Pos.Tile() == pt {
			return e
		}
	}
	return nil
}

// EntitiesInRadius returns all alive entities within Euclidean distance r
// of p.
func (l *Level) EntitiesInRadius(p grid.Position, r float64) []*Entity {
	var out []*Entity
	for _, e := range l.Entities {
		if e.Alive() && e.Pos.Distance(p) <= r {
			out = append(out, e)
		}
	}
	return out
}

// AliveEnemies counts living non-boss enemies.
func (l *Level) AliveEnemies() int {
	n := 0
	for _, e := range l.Entities {
		if e.Alive() && e.Kind != KindBoss {
			n++
		}
	}
	return n
}

// AliveBoss returns the living boss entity, or nil.
func (l *Level) AliveBoss() *Entity {
	for _, e := range l.Entities {
		if e.Alive() && e.Kind == KindBoss {
			return e
		}
	}
	return nil
}

// ItemAt returns the index of a ground item on the tile, or -1.
func (l *Level) ItemAt(pt grid.Point) int {
	for i, gi := range l.Items {
		if gi.Pos == pt {
			return i
		}
	}
	return -1
}

// PortalAt returns the portal on the tile, or nil.
func (l *Level) PortalAt(pt grid.Point) *Portal {
	for i := range l.Portals {
		if l.Portals[i].Pos == pt {
			return &l.Portals[i]
		}
	}
	return nil
}

// LightswitchAt returns the lightswitch on the tile, or nil.
func (l *Level) LightswitchAt(pt grid.Point) *Lightswitch {
	for i := range l.Lightswitches {
		if l.Lightswitches[i].Pos == pt {
			return &l.Lightswitches[i]
		}
	}
	return nil
}

// PlaceExitAt converts the given tile into the level exit, turning wall to
// floor first when needed. Used when a boss dies.
func (l *Level) PlaceExitAt(pt grid.Point) {
	if l.Tiles.At(pt.X, pt.Y) == grid.TileWall {
		l.Tiles.Set(pt.X, pt.Y, grid.TileFloor)
	}
	l.Tiles.Set(pt.X, pt.Y, grid.TileExit)
	l.Exit = pt
}
