package ai

import "mazecrawl/internal/world"

// zeus closes on the player while throwing cardinal bolts whose chance to
// pass through walls grows with the level.
type zeus struct{}

func (zeus) Tick(e *world.Entity, ctx *Context) {
	dist := e.Pos.Distance(ctx.Player.Pos)
	if dist > e.Aggro {
		roam(e, ctx)
		return
	}

	if adjacentToPlayer(e, ctx) {
		meleeAttack(e, ctx)
	} else if stepReady(e, 1) {
		if !tryStep(e, ctx, dirToward(e.Pos, ctx.Player.Pos, false)) {
			tryStep(e, ctx, altDir(e.Pos, ctx.Player.Pos))
		}
	}

	if dir, ok := cardinalAligned(e, ctx); ok && dist <= e.Range {
		fireAt(e, ctx, dir, world.Projectile{
			WallPhaseChance: wallPhaseChance(ctx.Level.Number),
		})
	}
}

// wallPhaseChance scales with depth and caps well short of certainty.
func wallPhaseChance(level int) float64 {
	c := 0.1 + 0.02*float64(level)
	if c > 0.8 {
		c = 0.8
	}
	return c
}
