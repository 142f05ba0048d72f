package engine

import (
	"fmt"
	"math"
	"time"

	"mazecrawl/internal/ai"
	"mazecrawl/internal/grid"
	"mazecrawl/internal/item"
	"mazecrawl/internal/world"
)

// maxDelta caps the per-tick delta so frame hitches never warp physics.
const maxDelta = 100 * time.Millisecond

const (
	footprintLife = 600 * time.Millisecond
	shadowStack   = 1.0 // vision debuff added per shadow pulse hit
	phasingTime   = 5 * time.Second
)

// Update advances the simulation by dt. Each major subsection is
// fault-isolated: a subsystem that reports an error has its state reset
// and the rest of the tick still runs.
func (g *Engine) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	if dt > maxDelta {
		dt = maxDelta
	}
	g.clock += dt
	if g.gameOver {
		return
	}

	g.player.ExpireEffects(g.clock)
	g.player.DecayVisionDebuff(dt)
	g.checkTimer()

	g.updatePlayer(dt)

	g.run("projectiles", func() error { return g.updateProjectiles(dt) },
		func() { g.level.Projectiles = nil })
	g.run("afterimages", func() error { return g.updateAfterimages() },
		func() { g.level.Afterimages = nil })
	g.run("particles", func() error { return g.updateParticles() },
		func() { g.level.Particles = nil })
	g.run("footprints", func() error { return g.updateFootprints() },
		func() { g.level.Footprints = nil })
	g.run("ai", func() error { return g.updateAI(dt) }, func() {})

	g.sweepDead()
	g.maybeOfferBonus()
}

// run executes one subsystem, logging and resetting it on failure so a bad
// tick never halts the loop.
func (g *Engine) run(name string, fn func() error, reset func()) {
	if err := fn(); err != nil {
		g.log.Warn("subsystem fault", "subsystem", name, "err", err)
		reset()
	}
}

// checkTimer fires the timeout callback once when a timed level runs out.
func (g *Engine) checkTimer() {
	if g.timedOut || g.levelDone || g.level.TimeLimit == 0 {
		return
	}
	if g.clock-g.levelStart <= g.level.TimeLimit {
		return
	}
	g.timedOut = true
	g.emit(Event{Kind: EventTimeout, Amount: g.levelNum})
	if g.cb.OnTimeOut != nil {
		g.cb.OnTimeOut()
	}
}

// TimeLeft reports the remaining level time, or 0 for untimed sectors.
func (g *Engine) TimeLeft() time.Duration {
	if g.level.TimeLimit == 0 {
		return 0
	}
	left := g.level.TimeLimit - (g.clock - g.levelStart)
	if left < 0 {
		left = 0
	}
	return left
}

// updatePlayer resolves grid-stepped movement from the sampled input and
// the fixed tile-arrival side effects.
func (g *Engine) updatePlayer(dt time.Duration) {
	p := g.player
	p.MoveAcc += dt

	dir := inputDir(g.inputX, g.inputY)
	if dir.IsZero() {
		if p.MoveAcc > p.MoveInterval(g.clock) {
			p.MoveAcc = p.MoveInterval(g.clock)
		}
		return
	}
	p.Facing = dir

	interval := p.MoveInterval(g.clock)
	if p.MoveAcc < interval {
		return
	}
	p.MoveAcc -= interval
	if p.MoveAcc > interval {
		p.MoveAcc = interval
	}

	next := grid.Position{X: p.Pos.X + float64(dir.X), Y: p.Pos.Y + float64(dir.Y)}
	pt := next.Tile()
	if !g.level.Tiles.InBounds(pt.X, pt.Y) {
		return
	}
	phasing := p.HasEffect(world.EffectPhasing, g.clock)
	if !phasing && g.level.Tiles.Collides(next) {
		return
	}
	if g.level.EntityAt(pt) != nil {
		// Bumping a mob still swings.
		g.resolveMelee()
		return
	}

	from := p.Pos.Tile()
	p.Pos = next
	g.level.Footprints = append(g.level.Footprints, world.Footprint{
		Pos: from, CreatedAt: g.clock, Lifetime: footprintLife,
	})
	g.arriveAt(pt)
}

// arriveAt applies tile side effects in fixed order: exit, portal,
// lightswitch, pickup, auto-attack.
func (g *Engine) arriveAt(pt grid.Point) {
	lvl := g.level

	if pt == lvl.Exit && lvl.Tiles.At(pt.X, pt.Y) == grid.TileExit {
		g.completeLevel()
		return
	}

	if portal := lvl.PortalAt(pt); portal != nil {
		lvl.Particles = append(lvl.Particles,
			world.Particle{Pos: g.player.Pos, Kind: "portal", CreatedAt: g.clock, Lifetime: 500 * time.Millisecond},
			world.Particle{Pos: grid.At(portal.Target), Kind: "portal", CreatedAt: g.clock, Lifetime: 500 * time.Millisecond},
		)
		g.player.Pos = grid.At(portal.Target)
		g.emit(Event{Kind: EventPortal})
		pt = portal.Target
	}

	if sw := lvl.LightswitchAt(pt); sw != nil && !sw.Activated {
		sw.Activated = true
		g.visionBonus += 2
		g.emit(Event{Kind: EventLightswitch})
	}

	if i := lvl.ItemAt(pt); i >= 0 {
		g.pickUp(i)
	}

	g.resolveMelee()
}

// pickUp acquires the ground item at index i. Shop stock is paid for at
// the assist-adjusted price and left in place when unaffordable.
func (g *Engine) pickUp(i int) {
	gi := g.level.Items[i]
	price := 0
	if gi.Item.Price > 0 && g.level.IsShop {
		price = int(math.Round(float64(gi.Item.Price) * g.assists.PriceCut))
		if g.player.Coins < price {
			return
		}
	}
	g.player.Coins -= price
	if gi.Offer >= 0 {
		g.economy.MarkPurchased(gi.Offer)
	}
	g.level.Items = append(g.level.Items[:i], g.level.Items[i+1:]...)
	g.acquire(gi.Item)
	kind := EventPickup
	if price > 0 {
		kind = EventPurchase
	}
	g.emit(Event{Kind: kind, Item: gi.Item.Name, Amount: price})
}

// acquire equips or consumes the item. A replaced piece of gear drops at
// the player's feet.
func (g *Engine) acquire(it item.Item) {
	if it.Type == item.TypeConsumable {
		if it.Stats.Heal > 0 {
			g.player.Heal(it.Stats.Heal)
		}
		if it.Base == "scroll" {
			g.player.AddEffect(world.Effect{
				Kind:      world.EffectPhasing,
				ExpiresAt: g.clock + phasingTime,
			})
		}
		return
	}
	if old := g.player.Equip(it); old != nil {
		g.level.Items = append(g.level.Items, world.GroundItem{
			Pos:   g.player.Pos.Tile(),
			Item:  *old,
			Offer: -1,
		})
	}
}

// hurtPlayer routes all incoming player damage through the desperation
// formula and the one-shot game-over latch.
func (g *Engine) hurtPlayer(base int, _ *world.Entity) {
	dmg := world.DamageAmount(base, g.player.EffectiveDefense(), g.player.HP, g.player.MaxHP)
	g.player.Hurt(dmg)
	g.emit(Event{Kind: EventPlayerHurt, Amount: dmg})
	if g.player.HP <= 0 {
		g.setGameOver()
	}
}

// updateProjectiles advances shots: expiry, player hit, at most one enemy
// hit, then wall contact with the phase-through roll on tile entry.
func (g *Engine) updateProjectiles(dt time.Duration) error {
	lvl := g.level
	kept := lvl.Projectiles[:0]
	for _, pr := range lvl.Projectiles {
		if pr.Speed <= 0 || pr.Vel.IsZero() {
			lvl.Projectiles = kept
			return fmt.Errorf("malformed projectile %d: speed=%v vel=%v", pr.ID, pr.Speed, pr.Vel)
		}
		if g.clock-pr.CreatedAt > pr.Lifetime {
			continue
		}

		prev := pr.Pos.Tile()
		step := pr.Speed * dt.Seconds()
		pr.Pos.X += float64(pr.Vel.X) * step
		pr.Pos.Y += float64(pr.Vel.Y) * step
		pt := pr.Pos.Tile()

		if pt == g.player.Pos.Tile() {
			g.hurtPlayer(pr.Damage, nil)
			if pr.ShadowPulse {
				g.player.VisionDebuff += shadowStack
			}
			continue
		}
		if e := lvl.EntityAt(pt); e != nil && e.ID != pr.OwnerID {
			e.Hurt(world.DamageAmount(pr.Damage, 0, e.HP, e.MaxHP))
			continue
		}
		if pt != prev && lvl.Tiles.Collides(pr.Pos) {
			if g.rng.Float64() >= pr.WallPhaseChance {
				continue
			}
		}
		kept = append(kept, pr)
	}
	lvl.Projectiles = kept
	return nil
}

// updateAfterimages expires trail cells and chips the player once per
// cell.
func (g *Engine) updateAfterimages() error {
	lvl := g.level
	playerTile := g.player.Pos.Tile()
	kept := lvl.Afterimages[:0]
	for _, a := range lvl.Afterimages {
		if a.Lifetime <= 0 {
			lvl.Afterimages = kept
			return fmt.Errorf("afterimage at %v has no lifetime", a.Pos)
		}
		if g.clock-a.CreatedAt > a.Lifetime {
			continue
		}
		if !a.Touched && a.Pos == playerTile {
			a.Touched = true
			g.hurtPlayer(a.Damage, nil)
		}
		kept = append(kept, a)
	}
	lvl.Afterimages = kept
	return nil
}

func (g *Engine) updateParticles() error {
	kept := g.level.Particles[:0]
	for _, p := range g.level.Particles {
		if g.clock-p.CreatedAt <= p.Lifetime {
			kept = append(kept, p)
		}
	}
	g.level.Particles = kept
	return nil
}

func (g *Engine) updateFootprints() error {
	kept := g.level.Footprints[:0]
	for _, f := range g.level.Footprints {
		if g.clock-f.CreatedAt <= f.Lifetime {
			kept = append(kept, f)
		}
	}
	g.level.Footprints = kept
	return nil
}

// updateAI dispatches every living entity to its subtype behavior.
func (g *Engine) updateAI(dt time.Duration) error {
	ctx := &ai.Context{
		Level:      g.level,
		Player:     g.player,
		Now:        g.clock,
		Delta:      dt,
		Rand:       g.rng,
		HurtPlayer: g.hurtPlayer,
		SpawnProjectile: func(p world.Projectile) {
			p.ID = g.nextEntityID
			g.nextEntityID++
			p.CreatedAt = g.clock
			if p.Lifetime == 0 {
				p.Lifetime = world.ProjectileLifetime
			}
			g.level.Projectiles = append(g.level.Projectiles, p)
		},
	}
	for _, e := range g.level.Entities {
		if !e.Alive() {
			continue
		}
		if e.MaxHP <= 0 {
			return fmt.Errorf("entity %d (%s) has invalid max hp", e.ID, e.Subtype)
		}
		e.MoveAcc += dt
		ai.For(e.Subtype).Tick(e, ctx)
	}
	return nil
}

// sweepDead removes zero-HP entities, paying coin rewards, unlocking
// compendium entries, and handling boss death side effects.
func (g *Engine) sweepDead() {
	lvl := g.level
	kept := lvl.Entities[:0]
	for _, e := range lvl.Entities {
		if e.Alive() {
			kept = append(kept, e)
			continue
		}
		reward := int(math.Round(float64(g.killReward(e)) * g.assists.CoinBoost))
		g.player.Coins += reward
		g.emit(Event{Kind: EventKill, Subtype: e.Subtype, Amount: reward})
		if !g.compendium[e.Subtype] {
			g.compendium[e.Subtype] = true
		}
		if e.Kind == world.KindBoss {
			g.onBossDeath(e)
		}
	}
	lvl.Entities = kept
}

func (g *Engine) killReward(e *world.Entity) int {
	if e.Kind == world.KindBoss {
		return 40 + 5*g.levelNum
	}
	return 3 + g.levelNum/2
}

// onBossDeath opens the exit on the boss tile and rolls the legendary
// drop next to it.
func (g *Engine) onBossDeath(e *world.Entity) {
	pt := e.Pos.Tile()
	g.level.PlaceExitAt(pt)

	drop := g.items.BossDrop(g.levelNum)
	dropAt := pt
	for _, d := range grid.Cardinals {
		c := grid.Point{X: pt.X + d.X, Y: pt.Y + d.Y}
		if g.level.Tiles.IsWalkable(c.X, c.Y) && g.level.ItemAt(c) < 0 {
			dropAt = c
			break
		}
	}
	offer := g.economy.RecordOffer(item.Offer{
		Level:        g.levelNum,
		Source:       "boss",
		CoinsAtOffer: g.player.Coins,
		Power:        drop.Power(),
	})
	g.level.Items = append(g.level.Items, world.GroundItem{Pos: dropAt, Item: drop, Offer: offer})
	g.emit(Event{Kind: EventBossDrop, Subtype: e.Subtype, Item: drop.Name})
}

// inputDir quantizes the sampled input axes to one cardinal step,
// dominant axis first with a horizontal tie-break.
func inputDir(x, y float64) grid.Vec {
	if x == 0 && y == 0 {
		return grid.Vec{}
	}
	if math.Abs(x) >= math.Abs(y) {
		return grid.Vec{X: signf(x)}
	}
	return grid.Vec{Y: signf(y)}
}

func signf(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
