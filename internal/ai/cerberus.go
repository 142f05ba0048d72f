package ai

import (
	"time"

	"mazecrawl/internal/world"
)

// cerberus advances slowly, lunges down short clear lanes, and in melee
// range chews through a three-bite combo. Each combo step damages exactly
// once: the LastDamageCombo watermark guards against double-counting when
// several ticks land inside one step's window.
type cerberus struct{}

const (
	cerberusLunge      = 3
	cerberusLungeRange = 3.0
	biteStepDelay      = 200 * time.Millisecond
	biteComboReset     = 1000 * time.Millisecond
)

func (cerberus) Tick(e *world.Entity, ctx *Context) {
	st, ok := e.State.(*world.CerberusState)
	if !ok {
		st = &world.CerberusState{}
		e.State = st
	}

	if st.LungeLeft > 0 {
		if stepReady(e, chargeHaste) {
			if adjacentToPlayer(e, ctx) || !tryStep(e, ctx, st.LungeDir) {
				st.LungeLeft = 0
			} else {
				st.LungeLeft--
			}
		}
		tickBites(e, ctx, st)
		return
	}

	dist := e.Pos.Distance(ctx.Player.Pos)
	if dist > e.Aggro {
		roam(e, ctx)
		return
	}

	// Triple lunge when a short clear straight lane exists.
	if dir, aligned := cardinalAligned(e, ctx); aligned &&
		dist <= cerberusLungeRange &&
		ctx.Level.Tiles.HasLineOfSight(e.Pos, ctx.Player.Pos) {
		st.LungeDir = dir
		st.LungeLeft = cerberusLunge
	} else if !adjacentToPlayer(e, ctx) && stepReady(e, 1) {
		if !tryStep(e, ctx, dirToward(e.Pos, ctx.Player.Pos, false)) {
			tryStep(e, ctx, altDir(e.Pos, ctx.Player.Pos))
		}
	}

	tickBites(e, ctx, st)
}

// tickBites runs the tri-bite combo state machine. Bites 1/2/3 land at
// +0ms/+200ms/+400ms after the combo opens; the whole combo resets 1000ms
// after it started whether or not all bites landed.
func tickBites(e *world.Entity, ctx *Context, st *world.CerberusState) {
	if st.BiteCombo > 0 && ctx.Now-st.ComboStart >= biteComboReset {
		st.BiteCombo = 0
		st.LastDamageCombo = 0
	}

	if !adjacentToPlayer(e, ctx) {
		return
	}

	switch {
	case st.BiteCombo == 0:
		st.BiteCombo = 1
		st.ComboStart = ctx.Now
	case st.BiteCombo == 1 && ctx.Now-st.ComboStart >= biteStepDelay:
		st.BiteCombo = 2
	case st.BiteCombo == 2 && ctx.Now-st.ComboStart >= 2*biteStepDelay:
		st.BiteCombo = 3
	}

	if st.LastDamageCombo < st.BiteCombo {
		st.LastDamageCombo = st.BiteCombo
		ctx.HurtPlayer(e.Damage, e)
	}
}
