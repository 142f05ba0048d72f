package ai

import "mazecrawl/internal/world"

// stationary is the turret: it never moves and fires cardinal shots on
// cooldown at players inside its reach.
type stationary struct{}

func (stationary) Tick(e *world.Entity, ctx *Context) {
	dist := e.Pos.Distance(ctx.Player.Pos)
	if dist > e.Aggro || dist > e.Range {
		return
	}
	dir := dirToward(e.Pos, ctx.Player.Pos, false)
	fireAt(e, ctx, dir, world.Projectile{})
}
