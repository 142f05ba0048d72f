package engine

import (
	"mazecrawl/internal/grid"
	"mazecrawl/internal/world"
)

const (
	spearPierceChance = 0.10
	spearPierceScale  = 0.5
	critBase          = 0.05
	critPerLevel      = 0.01
	critCap           = 0.35
	critScale         = 3
)

// resolveMelee swings at every enemy standing on the equipped weapon's
// attack shape. Hits are line-of-sight gated; the spear's piercing branch
// is the one exception.
func (g *Engine) resolveMelee() {
	p := g.player
	weapon := p.WeaponBase()
	base := p.EffectiveDamage()

	for _, pt := range grid.AttackShape(p.Pos, weapon) {
		e := g.level.EntityAt(pt)
		if e == nil {
			continue
		}
		dmg := base
		if !g.level.Tiles.HasLineOfSight(p.Pos, grid.At(pt)) {
			if weapon != "spear" || g.rng.Float64() >= spearPierceChance {
				continue
			}
			dmg = int(float64(dmg) * spearPierceScale)
			if dmg < 1 {
				dmg = 1
			}
		}
		if weapon == "dagger" && g.rng.Float64() < critChance(g.levelNum) {
			dmg *= critScale
			g.emit(Event{Kind: EventCrit, Subtype: e.Subtype, Amount: dmg})
		}
		e.Hurt(world.DamageAmount(dmg, 0, e.HP, e.MaxHP))
		if weapon == "mace" && e.Alive() {
			g.knockBack(e)
		}
	}
}

func critChance(level int) float64 {
	c := critBase + critPerLevel*float64(level)
	if c > critCap {
		c = critCap
	}
	return c
}

// knockBack shoves a surviving mace target away from the player, further
// on deeper levels, stopping at walls, occupied tiles, and the exit.
func (g *Engine) knockBack(e *world.Entity) {
	dir := grid.Vec{
		X: signf(e.Pos.X - g.player.Pos.X),
		Y: signf(e.Pos.Y - g.player.Pos.Y),
	}
	if dir.X != 0 && dir.Y != 0 {
		dir.Y = 0
	}
	tiles := 1 + g.levelNum/10
	if tiles > 3 {
		tiles = 3
	}
	for i := 0; i < tiles; i++ {
		next := grid.Position{X: e.Pos.X + float64(dir.X), Y: e.Pos.Y + float64(dir.Y)}
		pt := next.Tile()
		if !g.level.Tiles.IsWalkable(pt.X, pt.Y) || pt == g.level.Exit {
			break
		}
		if pt == g.player.Pos.Tile() || g.level.EntityAt(pt) != nil {
			break
		}
		e.Pos = next
	}
}
