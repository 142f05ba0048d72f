package assets

import "testing"

func TestRosterCoversAllSubtypes(t *testing.T) {
	want := []Subtype{
		MobDrone, MobSwarm, MobGuardian, MobCharger, MobSniper,
		MobStationary, MobPhase, MobMoth, MobTracker, MobCerberus,
		BossAres, BossZeus, BossHades,
	}
	for _, s := range want {
		def, ok := MobDefFor(s)
		if !ok {
			t.Errorf("roster missing subtype %q", s)
			continue
		}
		if def.HP <= 0 || def.Damage <= 0 {
			t.Errorf("%q has non-positive hp/damage: %d/%d", s, def.HP, def.Damage)
		}
		if def.Glyph == "" || def.Name == "" {
			t.Errorf("%q missing glyph or name", s)
		}
	}
}

func TestUnlockOrder(t *testing.T) {
	order := UnlockOrder()
	if len(order) == 0 {
		t.Fatal("unlock order is empty")
	}
	if order[0] != MobDrone {
		t.Errorf("first unlocked mob = %q, want drone", order[0])
	}
	for _, s := range order {
		if s == MobCerberus {
			t.Error("cerberus must not join the normal-level rotation")
		}
		def, _ := MobDefFor(s)
		if def.Archetype == ArchBoss {
			t.Errorf("boss %q must not join the normal-level rotation", s)
		}
	}
}

func TestBossRotationDefined(t *testing.T) {
	for _, s := range BossRotation() {
		def, ok := MobDefFor(s)
		if !ok {
			t.Fatalf("boss rotation references unknown subtype %q", s)
		}
		if def.Archetype != ArchBoss {
			t.Errorf("%q archetype = %q, want boss", s, def.Archetype)
		}
	}
}

func TestItemTables(t *testing.T) {
	if len(ItemTemplates) == 0 {
		t.Fatal("no item templates loaded")
	}
	bases := map[string]bool{}
	for _, tpl := range ItemTemplates {
		if tpl.Base == "" || tpl.Name == "" || tpl.Type == "" {
			t.Errorf("incomplete template %+v", tpl)
		}
		if bases[tpl.Base] {
			t.Errorf("duplicate template base %q", tpl.Base)
		}
		bases[tpl.Base] = true
	}
	for _, w := range []string{"sword", "dagger", "mace", "spear", "axe"} {
		if !bases[w] {
			t.Errorf("weapon template %q missing", w)
		}
	}
	if len(BossDrops) == 0 {
		t.Fatal("boss drop pool is empty")
	}
	if len(Suffixes.Singles) == 0 || len(Suffixes.Pairs) == 0 || len(Suffixes.Prefixes) == 0 {
		t.Error("suffix tables incomplete")
	}
}
