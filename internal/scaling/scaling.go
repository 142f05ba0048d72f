// Package scaling computes per-mob HP and damage multipliers for a level,
// adapting difficulty to the player's measured power. The Engine owns the
// only cross-level state in the system (the smoothed power history) and is
// reset explicitly at run boundaries.
package scaling

import (
	"math"

	"mazecrawl/assets"
)

// Sector classifies a level for scaling purposes.
type Sector string

const (
	SectorNormal Sector = "normal"
	SectorShop   Sector = "shop"
	SectorBoss   Sector = "boss"
)

const (
	// AttackRate is the fixed attacks-per-second constant folded into DPS.
	AttackRate = 2.0

	// Baseline player stats, from which the expected growth curve starts.
	baseDamage = 10.0
	baseSpeed  = 1.0
	baseMaxHP  = 100.0

	growthRate = 0.12 // expected power growth per level

	linearCoeff = 0.06  // a in (1 + a·L + b·L²)
	quadCoeff   = 0.002 // b
	ratioExp    = 1.5   // p in ratio^p

	emaAlpha = 0.3

	minMultiplier = 0.5
	maxMultiplier = 3.0

	shopTierEvery = 4    // levels per compounding tier step
	tierFactor    = 1.15 // multiplier per tier step

	bossRampCap = 5 // boss boost grows over the first 5 encounters
)

// PlayerPower is the scalar strength index: sqrt(dps × effective HP).
func PlayerPower(damage, speed, maxHP float64, defense float64) float64 {
	dps := damage * speed * AttackRate
	ehp := maxHP * (1 + defense/100)
	return math.Sqrt(dps * ehp)
}

// BaselinePower is the power index of a fresh run's starting stats.
func BaselinePower() float64 {
	return PlayerPower(baseDamage, baseSpeed, baseMaxHP, 0)
}

// ExpectedPower is the power a player is expected to hold at the given level.
func ExpectedPower(level int) float64 {
	return BaselinePower() * math.Pow(1+growthRate, float64(level))
}

// Input describes one multiplier query.
type Input struct {
	Level       int
	Sector      Sector
	Archetype   assets.Archetype
	PlayerPower float64 // current power index; 0 when unknown
	UseAdaptive bool
}

// Result holds the clamped multipliers applied to a mob's base stats.
type Result struct {
	HP     float64
	Damage float64
}

// Engine smooths the player power signal across levels and turns it into
// per-mob multipliers. Zero value is not usable; construct with New.
type Engine struct {
	ema    float64
	primed bool
}

// New returns an Engine with no power history.
func New() *Engine {
	return &Engine{}
}

// Reset clears the power history. Call at the start of every new run.
func (e *Engine) Reset() {
	e.ema = 0
	e.primed = false
}

// ObservePower folds a fresh power sample into the smoothed history.
// Non-positive samples are ignored.
func (e *Engine) ObservePower(p float64) {
	if p <= 0 {
		return
	}
	if !e.primed {
		e.ema = p
		e.primed = true
		return
	}
	e.ema = emaAlpha*p + (1-emaAlpha)*e.ema
}

// SmoothedPower returns the EMA of observed power, or 0 when unprimed.
func (e *Engine) SmoothedPower() float64 {
	if !e.primed {
		return 0
	}
	return e.ema
}

// Multipliers computes the HP and damage multipliers for one mob.
func (e *Engine) Multipliers(in Input) Result {
	L := float64(in.Level)

	base := math.Pow(1+0.10*L, 1.25)
	if in.UseAdaptive {
		power := e.SmoothedPower()
		if power <= 0 {
			power = in.PlayerPower
		}
		if power > 0 {
			ratio := clamp(power/ExpectedPower(in.Level), 0.8, 1.25)
			base = (1 + linearCoeff*L + quadCoeff*L*L) * math.Pow(ratio, ratioExp)
		}
	}

	hpExp, dmgExp := sectorExponents(in.Sector)
	tier := math.Pow(tierFactor, float64(in.Level/shopTierEvery))

	hp := math.Pow(base, hpExp) * tier
	dmg := math.Pow(base, dmgExp) * tier

	if in.Sector == SectorBoss {
		hpRamp, dmgRamp := bossRamp(in.Level)
		hp *= hpRamp
		dmg *= dmgRamp
	}

	hpBias, dmgBias := archetypeBias(in.Archetype)
	hp *= hpBias
	dmg *= dmgBias

	return Result{
		HP:     clamp(hp, minMultiplier, maxMultiplier),
		Damage: clamp(dmg, minMultiplier, maxMultiplier),
	}
}

// sectorExponents shapes the base multiplier per sector. Boss sectors favor
// HP over damage: bosses are tanky rather than one-shot machines.
func sectorExponents(s Sector) (hp, dmg float64) {
	if s == SectorBoss {
		return 1.15, 0.85
	}
	return 1.0, 1.0
}

// bossRamp scales boss boosts over the first few boss encounters, then caps.
func bossRamp(level int) (hp, dmg float64) {
	encounter := level / 5
	if encounter > bossRampCap {
		encounter = bossRampCap
	}
	return 1 + 0.08*float64(encounter), 1 + 0.05*float64(encounter)
}

// archetypeBias biases ranged mobs toward glassy damage and elites toward
// bulk.
func archetypeBias(a assets.Archetype) (hp, dmg float64) {
	switch a {
	case assets.ArchSwarm:
		return 0.7, 0.9
	case assets.ArchRanged:
		return 0.8, 1.15
	case assets.ArchElite:
		return 1.3, 1.1
	default:
		return 1.0, 1.0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
