package ai

import (
	"mazecrawl/internal/grid"
	"mazecrawl/internal/world"
)

// charger backs the boar charger and Ares: when the player sits beyond the
// commit distance, lock onto a cardinal direction and run it down until a
// wall or the player stops the charge.
type charger struct {
	commitDist float64
}

func (c charger) Tick(e *world.Entity, ctx *Context) {
	st, ok := e.State.(*world.ChargerState)
	if !ok {
		st = &world.ChargerState{}
		e.State = st
	}

	if st.Charging {
		if !stepReady(e, chargeHaste) {
			return
		}
		if adjacentToPlayer(e, ctx) {
			st.Charging = false
			st.Dir = grid.Vec{}
			meleeAttack(e, ctx)
			return
		}
		if !tryStep(e, ctx, st.Dir) {
			// Wall or blocker ends the charge.
			st.Charging = false
			st.Dir = grid.Vec{}
		}
		return
	}

	dist := e.Pos.Distance(ctx.Player.Pos)
	switch {
	case dist > e.Aggro:
		roam(e, ctx)
	case adjacentToPlayer(e, ctx):
		meleeAttack(e, ctx)
	case dist > c.commitDist:
		st.Dir = dirToward(e.Pos, ctx.Player.Pos, false)
		st.Charging = true
	default:
		if stepReady(e, 1) {
			tryStep(e, ctx, dirToward(e.Pos, ctx.Player.Pos, false))
		}
	}
}
