package ai

import "mazecrawl/internal/world"

// sniper keeps its distance and fires down cardinal lines. Retreat and
// shooting run on independent timers: backing away never delays a shot.
type sniper struct{}

const sniperMinDist = 3.0

func (sniper) Tick(e *world.Entity, ctx *Context) {
	dist := e.Pos.Distance(ctx.Player.Pos)
	if dist > e.Aggro {
		roam(e, ctx)
		return
	}

	if dist < sniperMinDist && stepReady(e, 1) {
		away := dirToward(ctx.Player.Pos, e.Pos, false)
		if !tryStep(e, ctx, away) {
			tryStep(e, ctx, altDir(ctx.Player.Pos, e.Pos))
		}
	}

	if dir, ok := cardinalAligned(e, ctx); ok && dist <= e.Range {
		if ctx.Level.Tiles.HasLineOfSight(e.Pos, ctx.Player.Pos) {
			fireAt(e, ctx, dir, world.Projectile{})
		}
	}
}
