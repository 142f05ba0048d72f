package world

import (
	"time"

	"mazecrawl/assets"
	"mazecrawl/internal/grid"
)

// EntityKind separates regular enemies from bosses.
type EntityKind string

const (
	KindEnemy EntityKind = "enemy"
	KindBoss  EntityKind = "boss_enemy"
)

// BehaviorState is the tagged per-subtype state payload carried by an
// Entity. Each AI behavior owns one concrete type; subtypes with no
// persistent state carry nil.
type BehaviorState interface {
	behaviorState()
}

// ChargerState backs charger and ares behavior: once committed, the mob
// runs along Dir until it hits a wall or the player.
type ChargerState struct {
	Dir      grid.Vec
	Charging bool
}

func (*ChargerState) behaviorState() {}

// MothState backs the moth's orbit, blink, and pulse timers.
type MothState struct {
	OrbitAngle float64
	NextBlink  time.Duration
	LastPulse  time.Duration
}

func (*MothState) behaviorState() {}

// TrackerState backs the tracker's stalk/pounce cycle.
type TrackerState struct {
	Stalking   bool
	PounceDir  grid.Vec
	PounceLeft int // tiles remaining in the committed leap
}

func (*TrackerState) behaviorState() {}

// CerberusState backs the triple lunge and the tri-bite combo.
// LastDamageCombo is the watermark that keeps each combo step from damaging
// more than once.
type CerberusState struct {
	BiteCombo       int
	ComboStart      time.Duration
	LastDamageCombo int
	LungeDir        grid.Vec
	LungeLeft       int
}

func (*CerberusState) behaviorState() {}

// Entity is one mob. The common core lives here; subtype-specific transient
// state hangs off State.
type Entity struct {
	ID        int64
	Kind      EntityKind
	Subtype   assets.Subtype
	Name      string
	Glyph     string
	Archetype assets.Archetype

	Pos    grid.Position
	HP     int
	MaxHP  int
	Damage int

	Speed    float64 // tiles per second; 0 = stationary
	Aggro    float64 // engagement distance
	Range    float64 // ranged attack reach, 0 for melee
	Cooldown time.Duration
	Flying   bool // may move diagonally and pass through walls

	// Shared timers, driven by the engine clock.
	LastAttack time.Duration
	MoveAcc    time.Duration
	RoamDir    grid.Vec
	NextRoam   time.Duration

	State BehaviorState
}

// Alive reports whether the entity still has HP.
func (e *Entity) Alive() bool { return e.HP > 0 }

// MoveInterval is the time between grid steps at the entity's speed.
func (e *Entity) MoveInterval() time.Duration {
	if e.Speed <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / e.Speed)
}

// Hurt applies damage, flooring HP at 0.
func (e *Entity) Hurt(dmg int) {
	e.HP -= dmg
	if e.HP < 0 {
		e.HP = 0
	}
}
