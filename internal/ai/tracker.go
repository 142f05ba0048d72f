package ai

import (
	"time"

	"mazecrawl/internal/world"
)

// tracker stalks at a held distance until it finds a clean straight line,
// then commits to a two-tile pounce that lays a damaging afterimage trail.
type tracker struct{}

const (
	trackerHoldMin   = 4.0
	trackerHoldMax   = 5.0
	trackerPounce    = 2
	trackerTrailLife = 900 * time.Millisecond
	trackerTrailChip = 2
)

func (tracker) Tick(e *world.Entity, ctx *Context) {
	st, ok := e.State.(*world.TrackerState)
	if !ok {
		st = &world.TrackerState{Stalking: true}
		e.State = st
	}

	if !st.Stalking {
		pounceStep(e, ctx, st)
		return
	}

	dist := e.Pos.Distance(ctx.Player.Pos)
	if dist > e.Aggro {
		roam(e, ctx)
		return
	}

	// Commit when a wall-free straight path to the player exists.
	if dist <= trackerHoldMax && ctx.Level.Tiles.HasLineOfSight(e.Pos, ctx.Player.Pos) {
		st.Stalking = false
		st.PounceDir = dirToward(e.Pos, ctx.Player.Pos, false)
		st.PounceLeft = trackerPounce
		return
	}

	// Hold the stalking band.
	if stepReady(e, 1) {
		switch {
		case dist < trackerHoldMin:
			tryStep(e, ctx, dirToward(ctx.Player.Pos, e.Pos, false))
		case dist > trackerHoldMax:
			tryStep(e, ctx, dirToward(e.Pos, ctx.Player.Pos, false))
		}
	}
}

func pounceStep(e *world.Entity, ctx *Context, st *world.TrackerState) {
	if !stepReady(e, chargeHaste) {
		return
	}
	if adjacentToPlayer(e, ctx) {
		meleeAttack(e, ctx)
		restalk(st)
		return
	}
	from := e.Pos.Tile()
	if !tryStep(e, ctx, st.PounceDir) {
		restalk(st)
		return
	}
	// The vacated cell becomes part of the trail.
	ctx.Level.Afterimages = append(ctx.Level.Afterimages, world.Afterimage{
		Pos:       from,
		Damage:    trackerTrailChip,
		CreatedAt: ctx.Now,
		Lifetime:  trackerTrailLife,
	})
	st.PounceLeft--
	if st.PounceLeft <= 0 {
		restalk(st)
	}
}

func restalk(st *world.TrackerState) {
	st.Stalking = true
	st.PounceLeft = 0
}
