package world

import "math"

// DamageAmount resolves the damage one hit deals. The victim's missing HP
// grants a "desperation" discount of up to 30%, which keeps low-HP fights
// from spiraling. Never below 1.
func DamageAmount(baseDamage, defense, victimHP, victimMaxHP int) int {
	hpRatio := 0.0
	if victimMaxHP > 0 {
		hpRatio = float64(victimHP) / float64(victimMaxHP)
	}
	dmg := int(math.Floor(float64(baseDamage-defense) * (1 - hpRatio*0.3)))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}
