package ai

import "mazecrawl/internal/world"

// phase backs the phase shade and Hades: a straight-line pursuer that
// ignores walls entirely and may move diagonally.
type phase struct{}

func (phase) Tick(e *world.Entity, ctx *Context) {
	if e.Pos.Distance(ctx.Player.Pos) > e.Aggro {
		roam(e, ctx)
		return
	}
	if adjacentToPlayer(e, ctx) {
		meleeAttack(e, ctx)
		return
	}
	if stepReady(e, 1) {
		tryStep(e, ctx, dirToward(e.Pos, ctx.Player.Pos, true))
	}
}
