// Package ai implements the per-subtype mob behaviors. Each subtype
// registers one Behavior; the engine dispatches every living entity to its
// behavior once per tick.
package ai

import (
	"math/rand"
	"time"

	"mazecrawl/assets"
	"mazecrawl/internal/grid"
	"mazecrawl/internal/world"
)

// Context is the world access handed to behaviors each tick.
type Context struct {
	Level  *world.Level
	Player *world.Player
	Now    time.Duration
	Delta  time.Duration
	Rand   *rand.Rand

	// HurtPlayer routes mob damage through the engine's combat and
	// game-over handling.
	HurtPlayer func(base int, source *world.Entity)
	// SpawnProjectile assigns an ID and creation time before adding the
	// shot to the level.
	SpawnProjectile func(p world.Projectile)
}

// Behavior drives one mob subtype.
type Behavior interface {
	Tick(e *world.Entity, ctx *Context)
}

var registry = map[assets.Subtype]Behavior{
	assets.MobDrone:      chase{},
	assets.MobSwarm:      chase{},
	assets.MobGuardian:   chase{},
	assets.MobCharger:    charger{commitDist: 2},
	assets.BossAres:      charger{commitDist: 3},
	assets.MobSniper:     sniper{},
	assets.MobStationary: stationary{},
	assets.MobPhase:      phase{},
	assets.BossHades:     phase{},
	assets.MobMoth:       moth{},
	assets.MobTracker:    tracker{},
	assets.MobCerberus:   cerberus{},
	assets.BossZeus:      zeus{},
}

// For returns the behavior for a subtype, falling back to plain chase.
func For(s assets.Subtype) Behavior {
	if b, ok := registry[s]; ok {
		return b
	}
	return chase{}
}

const (
	roamHold    = 2 * time.Second
	chargeHaste = 3.0 // charge/pounce/lunge step-rate multiplier
	meleeReach  = 1.5 // Euclidean adjacency for flying mobs
)

// stepReady consumes the entity's move accumulator. haste divides the move
// interval for committed dashes. The accumulator is capped so frame hitches
// never burst into multiple steps.
func stepReady(e *world.Entity, haste float64) bool {
	interval := e.MoveInterval()
	if interval == 0 {
		return false
	}
	if haste > 1 {
		interval = time.Duration(float64(interval) / haste)
	}
	if e.MoveAcc < interval {
		return false
	}
	e.MoveAcc -= interval
	if e.MoveAcc > interval {
		e.MoveAcc = interval
	}
	return true
}

// dirToward quantizes the vector toward the target: dominant axis wins and
// horizontal breaks ties. Diagonal movers keep both axes.
func dirToward(from, to grid.Position, diagonal bool) grid.Vec {
	dx := to.X - from.X
	dy := to.Y - from.Y
	step := grid.Vec{X: sign(dx), Y: sign(dy)}
	if diagonal {
		return step
	}
	if abs(dx) >= abs(dy) {
		return grid.Vec{X: step.X}
	}
	return grid.Vec{Y: step.Y}
}

// altDir is the non-dominant-axis cardinal step toward the target, used
// when the dominant axis is blocked.
func altDir(from, to grid.Position) grid.Vec {
	dx := to.X - from.X
	dy := to.Y - from.Y
	if abs(dx) >= abs(dy) {
		return grid.Vec{Y: sign(dy)}
	}
	return grid.Vec{X: sign(dx)}
}

// tryStep moves the entity one tile in dir. Walls stop non-phasing mobs;
// nothing may step onto the exit tile or another entity.
func tryStep(e *world.Entity, ctx *Context, dir grid.Vec) bool {
	if dir.IsZero() {
		return false
	}
	next := grid.Position{X: e.Pos.X + float64(dir.X), Y: e.Pos.Y + float64(dir.Y)}
	pt := next.Tile()
	if !ctx.Level.Tiles.InBounds(pt.X, pt.Y) {
		return false
	}
	if !e.Flying && ctx.Level.Tiles.Collides(next) {
		return false
	}
	if pt == ctx.Level.Exit {
		return false
	}
	if pt == ctx.Player.Pos.Tile() {
		return false
	}
	if other := ctx.Level.EntityAt(pt); other != nil && other != e {
		return false
	}
	e.Pos = next
	return true
}

// roam is the idle wander outside aggro range: hold a random cardinal for
// two seconds, then repick.
func roam(e *world.Entity, ctx *Context) {
	if ctx.Now >= e.NextRoam {
		e.RoamDir = grid.Cardinals[ctx.Rand.Intn(len(grid.Cardinals))]
		e.NextRoam = ctx.Now + roamHold
	}
	if stepReady(e, 1) {
		tryStep(e, ctx, e.RoamDir)
	}
}

// adjacentToPlayer reports melee reach: cardinal adjacency for walkers,
// any touching tile for flying mobs.
func adjacentToPlayer(e *world.Entity, ctx *Context) bool {
	a := e.Pos.Tile()
	b := ctx.Player.Pos.Tile()
	if e.Flying {
		return e.Pos.Distance(ctx.Player.Pos) <= meleeReach
	}
	return a.Manhattan(b) == 1
}

// meleeAttack lands a cooldown-gated hit on the player.
func meleeAttack(e *world.Entity, ctx *Context) bool {
	if ctx.Now < e.LastAttack+e.Cooldown {
		return false
	}
	e.LastAttack = ctx.Now
	ctx.HurtPlayer(e.Damage, e)
	return true
}

// cardinalAligned reports whether the entity shares a row or column with
// the player, returning the unit direction when it does.
func cardinalAligned(e *world.Entity, ctx *Context) (grid.Vec, bool) {
	a := e.Pos.Tile()
	b := ctx.Player.Pos.Tile()
	if a.X == b.X && a.Y != b.Y {
		return grid.Vec{Y: sign(float64(b.Y - a.Y))}, true
	}
	if a.Y == b.Y && a.X != b.X {
		return grid.Vec{X: sign(float64(b.X - a.X))}, true
	}
	return grid.Vec{}, false
}

// fireAt launches a cooldown-gated cardinal projectile from the entity.
func fireAt(e *world.Entity, ctx *Context, dir grid.Vec, opts world.Projectile) bool {
	if dir.IsZero() || ctx.Now < e.LastAttack+e.Cooldown {
		return false
	}
	e.LastAttack = ctx.Now
	p := opts
	p.Pos = e.Pos
	p.Vel = dir
	p.OwnerID = e.ID
	if p.Speed == 0 {
		p.Speed = 8
	}
	if p.Damage == 0 {
		p.Damage = e.Damage
	}
	ctx.SpawnProjectile(p)
	return true
}

func sign(v float64) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
