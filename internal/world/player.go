package world

import (
	"time"

	"mazecrawl/internal/grid"
	"mazecrawl/internal/item"
)

// Starting player stats.
const (
	BasePlayerHP     = 100
	BasePlayerDamage = 10
	BasePlayerSpeed  = 1.0
	BasePlayerVision = 5
)

// EffectKind identifies a timed player effect.
type EffectKind string

const (
	EffectPhasing EffectKind = "phasing" // ignore wall collision
	EffectHaste   EffectKind = "haste"   // move-speed boost
)

// Effect is a timed buff with an absolute expiry on the engine clock.
type Effect struct {
	Kind      EffectKind
	Magnitude float64
	ExpiresAt time.Duration
}

// Loadout is the player's equipped gear; any slot may be empty.
type Loadout struct {
	Weapon  *item.Item
	Armor   *item.Item
	Utility *item.Item
}

// Items returns the non-empty slots.
func (l Loadout) Items() []*item.Item {
	var out []*item.Item
	for _, it := range []*item.Item{l.Weapon, l.Armor, l.Utility} {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

// Player holds base stats, coins, and the loadout. Effective stats are
// computed fresh on every query and never persisted.
type Player struct {
	Pos    grid.Position
	Facing grid.Vec

	HP     int
	MaxHP  int
	Coins  int
	Damage int
	Speed  float64
	Vision float64

	Loadout Loadout

	// VisionDebuff stacks from shadow pulses and decays 2% per second.
	VisionDebuff float64

	Effects []Effect
	MoveAcc time.Duration
}

// NewPlayer returns a player with starting stats.
func NewPlayer() *Player {
	return &Player{
		HP:     BasePlayerHP,
		MaxHP:  BasePlayerHP,
		Damage: BasePlayerDamage,
		Speed:  BasePlayerSpeed,
		Vision: BasePlayerVision,
		Facing: grid.Vec{X: 1, Y: 0},
	}
}

// EffectiveDamage is base damage plus equipped damage bonuses.
func (p *Player) EffectiveDamage() int {
	d := p.Damage
	for _, it := range p.Loadout.Items() {
		d += it.Stats.Damage
	}
	return d
}

// EffectiveDefense sums equipped defense bonuses.
func (p *Player) EffectiveDefense() int {
	d := 0
	for _, it := range p.Loadout.Items() {
		d += it.Stats.Defense
	}
	return d
}

// EffectiveSpeed applies equipped percent bonuses and any haste effect.
func (p *Player) EffectiveSpeed(now time.Duration) float64 {
	bonus := 0
	for _, it := range p.Loadout.Items() {
		bonus += it.Stats.Speed
	}
	s := p.Speed * (1 + float64(bonus)/100)
	for _, e := range p.Effects {
		if e.Kind == EffectHaste && e.ExpiresAt > now {
			s *= 1 + e.Magnitude
		}
	}
	return s
}

// EffectiveVision applies equipped vision bonuses and subtracts the debuff,
// with a floor of 2 tiles.
func (p *Player) EffectiveVision() float64 {
	v := p.Vision
	for _, it := range p.Loadout.Items() {
		v += float64(it.Stats.Vision)
	}
	v -= p.VisionDebuff
	if v < 2 {
		v = 2
	}
	return v
}

// MoveInterval is the time between grid steps at the current speed.
func (p *Player) MoveInterval(now time.Duration) time.Duration {
	s := p.EffectiveSpeed(now)
	if s <= 0 {
		s = BasePlayerSpeed
	}
	// Base cadence is 5 steps per second at speed 1.0.
	return time.Duration(float64(200*time.Millisecond) / s)
}

// WeaponBase returns the equipped weapon's template base, or "" for bare
// hands.
func (p *Player) WeaponBase() string {
	if p.Loadout.Weapon == nil {
		return ""
	}
	return p.Loadout.Weapon.Base
}

// EquippedPower sums the power index of equipped gear for the economy
// tracker.
func (p *Player) EquippedPower() float64 {
	total := 0.0
	for _, it := range p.Loadout.Items() {
		total += it.Power()
	}
	return total
}

// AddEffect applies a timed effect, extending an existing one of the same
// kind rather than stacking it.
func (p *Player) AddEffect(e Effect) {
	for i, cur := range p.Effects {
		if cur.Kind == e.Kind {
			if e.ExpiresAt > cur.ExpiresAt {
				p.Effects[i] = e
			}
			return
		}
	}
	p.Effects = append(p.Effects, e)
}

// HasEffect reports whether an unexpired effect of the kind is active.
func (p *Player) HasEffect(kind EffectKind, now time.Duration) bool {
	for _, e := range p.Effects {
		if e.Kind == kind && e.ExpiresAt > now {
			return true
		}
	}
	return false
}

// ExpireEffects drops effects whose time has passed. Dropped timers are
// tolerated silently.
func (p *Player) ExpireEffects(now time.Duration) {
	kept := p.Effects[:0]
	for _, e := range p.Effects {
		if e.ExpiresAt > now {
			kept = append(kept, e)
		}
	}
	p.Effects = kept
}

// DecayVisionDebuff shrinks the stacked debuff by 2% per second.
func (p *Player) DecayVisionDebuff(dt time.Duration) {
	p.VisionDebuff *= 1 - 0.02*dt.Seconds()
	if p.VisionDebuff < 0.01 {
		p.VisionDebuff = 0
	}
}

// Heal restores HP up to the maximum.
func (p *Player) Heal(amount int) {
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
}

// Hurt applies damage, flooring HP at 0.
func (p *Player) Hurt(dmg int) {
	p.HP -= dmg
	if p.HP < 0 {
		p.HP = 0
	}
}

// Equip slots the item by type and returns the replaced item, if any.
// Consumables are not equippable.
func (p *Player) Equip(it item.Item) *item.Item {
	slot := func(ref **item.Item) *item.Item {
		old := *ref
		cp := it
		*ref = &cp
		return old
	}
	switch it.Type {
	case item.TypeWeapon:
		return slot(&p.Loadout.Weapon)
	case item.TypeArmor:
		return slot(&p.Loadout.Armor)
	case item.TypeUtility:
		return slot(&p.Loadout.Utility)
	default:
		return nil
	}
}
