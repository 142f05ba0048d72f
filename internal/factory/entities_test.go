package factory

import (
	"testing"

	"mazecrawl/assets"
	"mazecrawl/internal/grid"
	"mazecrawl/internal/scaling"
	"mazecrawl/internal/world"
)

func TestNewMobAppliesMultipliers(t *testing.T) {
	def, ok := assets.MobDefFor(assets.MobDrone)
	if !ok {
		t.Fatal("drone missing from roster")
	}
	e := NewMob(1, def, grid.Position{X: 3, Y: 3}, scaling.Result{HP: 2.0, Damage: 1.5})
	if e.HP != def.HP*2 || e.MaxHP != e.HP {
		t.Errorf("hp = %d/%d, want %d", e.HP, e.MaxHP, def.HP*2)
	}
	if e.Damage != def.Damage+def.Damage/2 {
		t.Errorf("damage = %d, want %d", e.Damage, def.Damage+def.Damage/2)
	}
	if e.Kind != world.KindEnemy {
		t.Errorf("kind = %q, want enemy", e.Kind)
	}
}

func TestNewMobStatFloor(t *testing.T) {
	def, _ := assets.MobDefFor(assets.MobSwarm)
	e := NewMob(1, def, grid.Position{}, scaling.Result{HP: 0.01, Damage: 0.01})
	if e.HP < 1 || e.Damage < 1 {
		t.Errorf("scaled stats must stay at least 1, got hp=%d dmg=%d", e.HP, e.Damage)
	}
}

func TestBossKind(t *testing.T) {
	def, _ := assets.MobDefFor(assets.BossHades)
	e := NewMob(1, def, grid.Position{}, scaling.Result{HP: 1, Damage: 1})
	if e.Kind != world.KindBoss {
		t.Errorf("kind = %q, want boss_enemy", e.Kind)
	}
	if !e.Flying {
		t.Error("hades should be flagged flying (diagonal, wall-phasing movement)")
	}
}

func TestInitialBehaviorState(t *testing.T) {
	cases := []struct {
		subtype assets.Subtype
		want    string
	}{
		{assets.MobCharger, "charger"},
		{assets.BossAres, "charger"},
		{assets.MobMoth, "moth"},
		{assets.MobTracker, "tracker"},
		{assets.MobCerberus, "cerberus"},
		{assets.MobDrone, "none"},
		{assets.MobSniper, "none"},
	}
	for _, c := range cases {
		def, ok := assets.MobDefFor(c.subtype)
		if !ok {
			t.Fatalf("%q missing from roster", c.subtype)
		}
		e := NewMob(1, def, grid.Position{}, scaling.Result{HP: 1, Damage: 1})
		var got string
		switch s := e.State.(type) {
		case *world.ChargerState:
			got = "charger"
		case *world.MothState:
			got = "moth"
		case *world.TrackerState:
			got = "tracker"
			if !s.Stalking {
				t.Errorf("tracker should start stalking")
			}
		case *world.CerberusState:
			got = "cerberus"
		case nil:
			got = "none"
		}
		if got != c.want {
			t.Errorf("%q initial state = %s, want %s", c.subtype, got, c.want)
		}
	}
}
