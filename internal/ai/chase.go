package ai

import "mazecrawl/internal/world"

// chase is the plain pursuit shared by drone, swarm, and guardian: approach
// on the dominant cardinal axis, swing when adjacent, roam when the player
// is out of aggro range.
type chase struct{}

func (chase) Tick(e *world.Entity, ctx *Context) {
	dist := e.Pos.Distance(ctx.Player.Pos)
	if dist > e.Aggro {
		roam(e, ctx)
		return
	}
	if adjacentToPlayer(e, ctx) {
		meleeAttack(e, ctx)
		return
	}
	if stepReady(e, 1) {
		if !tryStep(e, ctx, dirToward(e.Pos, ctx.Player.Pos, false)) {
			// Dominant axis blocked: fall back to the other one.
			tryStep(e, ctx, altDir(e.Pos, ctx.Player.Pos))
		}
	}
}
