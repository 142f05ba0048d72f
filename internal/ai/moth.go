package ai

import (
	"math"
	"time"

	"mazecrawl/internal/grid"
	"mazecrawl/internal/world"
)

// moth orbits the player at a fixed radius, periodically blinks to a far
// floor tile, and fires shadow pulses that dim the player's vision.
type moth struct{}

const (
	mothOrbitRadius = 3.0
	mothOrbitRate   = 1.2 // radians per second
	mothBlinkMin    = 3 * time.Second
	mothBlinkMax    = 5 * time.Second
	mothBlinkDist   = 6 // min tiles from player after a blink
	mothPulseNear   = 3.0
	mothPulseFar    = 4.0
	mothPulseDamage = 4
)

func (moth) Tick(e *world.Entity, ctx *Context) {
	st, ok := e.State.(*world.MothState)
	if !ok {
		st = &world.MothState{}
		e.State = st
	}

	dist := e.Pos.Distance(ctx.Player.Pos)
	if dist > e.Aggro {
		roam(e, ctx)
		return
	}

	if st.NextBlink == 0 {
		st.NextBlink = ctx.Now + blinkDelay(ctx)
	}
	if ctx.Now >= st.NextBlink {
		st.NextBlink = ctx.Now + blinkDelay(ctx)
		blink(e, ctx)
	}

	// Orbit: chase the point on the circle around the player.
	st.OrbitAngle += mothOrbitRate * ctx.Delta.Seconds()
	target := grid.Position{
		X: ctx.Player.Pos.X + mothOrbitRadius*math.Cos(st.OrbitAngle),
		Y: ctx.Player.Pos.Y + mothOrbitRadius*math.Sin(st.OrbitAngle),
	}
	if stepReady(e, 1) {
		tryStep(e, ctx, dirToward(e.Pos, target, true))
	}

	// Shadow pulse from the mid-range band.
	if dist >= mothPulseNear && dist <= mothPulseFar {
		dir := dirToward(e.Pos, ctx.Player.Pos, false)
		fireAt(e, ctx, dir, world.Projectile{
			Damage:      mothPulseDamage,
			ShadowPulse: true,
		})
	}
}

func blinkDelay(ctx *Context) time.Duration {
	return mothBlinkMin + time.Duration(ctx.Rand.Int63n(int64(mothBlinkMax-mothBlinkMin)))
}

// blink relocates the moth to a random floor tile well away from the
// player with no neighboring entities. When no tile qualifies the moth
// just keeps orbiting.
func blink(e *world.Entity, ctx *Context) {
	floors := ctx.Level.Tiles.FloorTiles()
	playerTile := ctx.Player.Pos.Tile()
	for attempt := 0; attempt < 50; attempt++ {
		pt := floors[ctx.Rand.Intn(len(floors))]
		if pt.Manhattan(playerTile) < mothBlinkDist || pt == ctx.Level.Exit {
			continue
		}
		if len(ctx.Level.EntitiesInRadius(grid.At(pt), 2)) > 0 {
			continue
		}
		ctx.Level.Particles = append(ctx.Level.Particles,
			world.Particle{Pos: e.Pos, Kind: "blink", CreatedAt: ctx.Now, Lifetime: 400 * time.Millisecond},
			world.Particle{Pos: grid.At(pt), Kind: "blink", CreatedAt: ctx.Now, Lifetime: 400 * time.Millisecond},
		)
		e.Pos = grid.At(pt)
		return
	}
}
