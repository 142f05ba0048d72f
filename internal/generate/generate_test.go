package generate

import (
	"math/rand"
	"testing"

	"mazecrawl/internal/grid"
	"mazecrawl/internal/item"
	"mazecrawl/internal/scaling"
)

func testConfig(level int, seed int64) *Config {
	rng := rand.New(rand.NewSource(seed))
	return &Config{
		Level:   level,
		Width:   30,
		Height:  30,
		Rand:    rng,
		Scaling: scaling.New(),
		Items:   item.NewGenerator(rng),
	}
}

func TestGenerateConnectedLevel(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		lvl := Generate(testConfig(1, seed))

		if !lvl.Tiles.IsWalkable(lvl.Start.X, lvl.Start.Y) {
			t.Fatalf("seed %d: start %v is not walkable", seed, lvl.Start)
		}
		if !lvl.Tiles.IsWalkable(lvl.Exit.X, lvl.Exit.Y) {
			t.Fatalf("seed %d: exit %v is not walkable", seed, lvl.Exit)
		}

		dist := lvl.Tiles.BFSDistances(lvl.Start)
		if _, ok := dist[lvl.Exit]; !ok {
			t.Fatalf("seed %d: exit %v unreachable from start %v", seed, lvl.Exit, lvl.Start)
		}

		// Single connected floor region: everything BFS reaches equals
		// every walkable tile.
		if got, want := len(dist), len(lvl.Tiles.FloorTiles()); got != want {
			t.Fatalf("seed %d: BFS reached %d tiles, but %d floor tiles exist", seed, got, want)
		}
	}
}

func TestBossLevelDefersExit(t *testing.T) {
	lvl := Generate(testConfig(BossInterval, 3))
	if !lvl.IsBoss {
		t.Fatal("level at BossInterval should be a boss sector")
	}
	if lvl.Tiles.At(lvl.Exit.X, lvl.Exit.Y) == grid.TileExit {
		t.Error("boss level must not carve an exit at generation")
	}
	if lvl.AliveBoss() == nil {
		t.Error("boss level should spawn a boss")
	}
	if lvl.TimeLimit != 0 {
		t.Error("boss levels carry no timer")
	}
}

func TestShopLevelHasStockAndNoMobs(t *testing.T) {
	lvl := Generate(testConfig(ShopInterval, 5))
	if !lvl.IsShop {
		t.Fatal("level at ShopInterval should be a shop sector")
	}
	if len(lvl.Entities) != 0 {
		t.Errorf("shop spawned %d mobs, want 0", len(lvl.Entities))
	}
	if len(lvl.Items) < 3 {
		t.Errorf("shop stocked %d items, want >= 3", len(lvl.Items))
	}
	if lvl.TimeLimit != 0 {
		t.Error("shop levels carry no timer")
	}
}

func TestLevelClassification(t *testing.T) {
	cases := []struct {
		level      int
		boss, shop bool
	}{
		{1, false, false},
		{4, false, true},
		{5, true, false},
		{8, false, true},
		{20, true, false}, // divisible by both → boss wins
	}
	for _, c := range cases {
		if got := IsBossLevel(c.level); got != c.boss {
			t.Errorf("IsBossLevel(%d) = %v, want %v", c.level, got, c.boss)
		}
		if got := IsShopLevel(c.level); got != c.shop {
			t.Errorf("IsShopLevel(%d) = %v, want %v", c.level, got, c.shop)
		}
	}
}

func TestMobsAvoidExitAndStart(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		lvl := Generate(testConfig(3, seed))
		for _, e := range lvl.Entities {
			pt := e.Pos.Tile()
			if pt == lvl.Exit {
				t.Errorf("seed %d: mob spawned on the exit tile", seed)
			}
			if !lvl.Tiles.IsWalkable(pt.X, pt.Y) {
				t.Errorf("seed %d: mob spawned inside a wall at %v", seed, pt)
			}
		}
	}
}

func TestUnlockProgression(t *testing.T) {
	early := unlockedMobs(1)
	late := unlockedMobs(30)
	if len(early) >= len(late) {
		t.Errorf("unlock set should grow with level: %d vs %d", len(early), len(late))
	}
	for _, s := range late {
		if s == "cerberus" {
			t.Error("cerberus must never unlock in the normal rotation")
		}
	}
}

func TestCerberusElitesOnDeepBossLevels(t *testing.T) {
	lvl := Generate(testConfig(CerberusEliteLevel, 11))
	if !lvl.IsBoss {
		t.Fatal("expected a boss level")
	}
	whelps := 0
	for _, e := range lvl.Entities {
		if e.Subtype == "cerberus" {
			whelps++
		}
	}
	if whelps < 2 || whelps > 4 {
		t.Errorf("deep boss level spawned %d cerberus elites, want 2–4", whelps)
	}
}

func TestLightswitchSpacing(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		lvl := Generate(testConfig(2, seed))
		if len(lvl.Lightswitches) > maxLightswitch {
			t.Fatalf("seed %d: %d lightswitches, max %d", seed, len(lvl.Lightswitches), maxLightswitch)
		}
		for i, a := range lvl.Lightswitches {
			for _, b := range lvl.Lightswitches[i+1:] {
				if a.Pos.Manhattan(b.Pos) < switchSpacing {
					t.Errorf("seed %d: switches %v and %v too close", seed, a.Pos, b.Pos)
				}
			}
		}
	}
}

func TestOfferRecording(t *testing.T) {
	cfg := testConfig(ShopInterval, 7)
	cfg.Economy = item.NewEconomy()
	cfg.PlayerCoins = 120
	Generate(cfg)

	offers := cfg.Economy.Offers()
	if len(offers) < 3 {
		t.Fatalf("shop generation recorded %d offers, want >= 3", len(offers))
	}
	for _, o := range offers {
		if o.Source != "shop" || o.CoinsAtOffer != 120 || o.Price <= 0 {
			t.Errorf("bad offer record %+v", o)
		}
	}
}
