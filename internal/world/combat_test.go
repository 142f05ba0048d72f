package world

import "testing"

func TestDamageAmount(t *testing.T) {
	cases := []struct {
		name                 string
		base, def, hp, maxHP int
		want                 int
	}{
		// floor((20-5)·(1-0.5·0.3)) = floor(15·0.85) = 12
		{"half hp victim", 20, 5, 50, 100, 12},
		// full-hp victim takes the biggest discount: floor(15·0.7) = 10
		{"full hp victim", 20, 5, 100, 100, 10},
		// near-dead victim takes nearly full damage
		{"near-dead victim", 20, 5, 1, 100, 14},
		{"defense exceeds damage", 3, 10, 50, 100, 1},
		{"zero max hp treated as empty", 10, 0, 0, 0, 10},
	}
	for _, c := range cases {
		if got := DamageAmount(c.base, c.def, c.hp, c.maxHP); got != c.want {
			t.Errorf("%s: DamageAmount(%d,%d,%d,%d) = %d, want %d",
				c.name, c.base, c.def, c.hp, c.maxHP, got, c.want)
		}
	}
}
