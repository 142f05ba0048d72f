// Package factory builds entities from roster definitions, applying the
// scaling engine's multipliers and wiring the initial behavior state for
// each subtype.
package factory

import (
	"math"
	"time"

	"mazecrawl/assets"
	"mazecrawl/internal/grid"
	"mazecrawl/internal/scaling"
	"mazecrawl/internal/world"
)

// NewMob creates one entity at pos from a roster row and scaled stats.
func NewMob(id int64, def assets.MobDef, pos grid.Position, mult scaling.Result) *world.Entity {
	kind := world.KindEnemy
	if def.Archetype == assets.ArchBoss {
		kind = world.KindBoss
	}

	hp := scaleStat(def.HP, mult.HP)
	e := &world.Entity{
		ID:        id,
		Kind:      kind,
		Subtype:   def.Subtype,
		Name:      def.Name,
		Glyph:     def.Glyph,
		Archetype: def.Archetype,
		Pos:       pos,
		HP:        hp,
		MaxHP:     hp,
		Damage:    scaleStat(def.Damage, mult.Damage),
		Speed:     def.Speed,
		Aggro:     def.Aggro,
		Range:     def.Range,
		Cooldown:  time.Duration(def.CooldownMS) * time.Millisecond,
		Flying:    def.Flying,
		State:     initialState(def.Subtype),
	}
	return e
}

// initialState wires the behavior-state payload for subtypes that carry one.
func initialState(s assets.Subtype) world.BehaviorState {
	switch s {
	case assets.MobCharger, assets.BossAres:
		return &world.ChargerState{}
	case assets.MobMoth:
		return &world.MothState{}
	case assets.MobTracker:
		return &world.TrackerState{Stalking: true}
	case assets.MobCerberus:
		return &world.CerberusState{}
	default:
		return nil
	}
}

func scaleStat(base int, mult float64) int {
	v := int(math.Round(float64(base) * mult))
	if v < 1 {
		v = 1
	}
	return v
}
