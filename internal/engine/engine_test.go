package engine

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"mazecrawl/assets"
	"mazecrawl/internal/factory"
	"mazecrawl/internal/grid"
	"mazecrawl/internal/item"
	"mazecrawl/internal/scaling"
	"mazecrawl/internal/world"
)

func newTestEngine(t *testing.T, cb Callbacks) *Engine {
	t.Helper()
	return New(Config{
		Width:     21,
		Height:    21,
		Rand:      rand.New(rand.NewSource(7)),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Callbacks: cb,
	})
}

// installOpenLevel swaps in an all-floor level so tests control the
// layout exactly.
func installOpenLevel(g *Engine, w, h int) *world.Level {
	tiles := grid.NewTileMap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tiles.Set(x, y, grid.TileFloor)
		}
	}
	tiles.Set(w-2, h-2, grid.TileExit)
	lvl := &world.Level{
		Tiles:  tiles,
		Number: g.levelNum,
		Start:  grid.Point{X: 2, Y: 2},
		Exit:   grid.Point{X: w - 2, Y: h - 2},
	}
	g.level = lvl
	g.player.Pos = grid.At(lvl.Start)
	g.player.MoveAcc = 0
	g.levelStart = g.clock
	g.levelDone = false
	g.timedOut = false
	g.bonus = nil
	g.bonusOffered = false
	return lvl
}

func spawnTestMob(g *Engine, subtype assets.Subtype, x, y int) *world.Entity {
	def, _ := assets.MobDefFor(subtype)
	id := g.nextEntityID
	g.nextEntityID++
	mob := factory.NewMob(id, def, grid.At(grid.Point{X: x, Y: y}), scaling.Result{HP: 1, Damage: 1})
	g.level.Entities = append(g.level.Entities, mob)
	return mob
}

func TestDeltaCap(t *testing.T) {
	g := newTestEngine(t, Callbacks{})
	installOpenLevel(g, 15, 15)
	g.Update(500 * time.Millisecond)
	if g.Clock() != maxDelta {
		t.Errorf("clock = %v, want capped at %v", g.Clock(), maxDelta)
	}
}

func TestPlayerMovesOnInput(t *testing.T) {
	g := newTestEngine(t, Callbacks{})
	installOpenLevel(g, 15, 15)
	g.SetInput(1, 0)
	g.Update(100 * time.Millisecond)
	g.Update(100 * time.Millisecond)
	if got := g.player.Pos.Tile(); got != (grid.Point{X: 3, Y: 2}) {
		t.Errorf("player at %v, want one step east to (3,2)", got)
	}
	if len(g.level.Footprints) != 1 {
		t.Errorf("footprints = %d, want 1", len(g.level.Footprints))
	}
}

func TestWallBlocksUnlessPhasing(t *testing.T) {
	g := newTestEngine(t, Callbacks{})
	lvl := installOpenLevel(g, 15, 15)
	lvl.Tiles.Set(3, 2, grid.TileWall)
	g.SetInput(1, 0)

	g.Update(100 * time.Millisecond)
	g.Update(100 * time.Millisecond)
	if got := g.player.Pos.Tile(); got != (grid.Point{X: 2, Y: 2}) {
		t.Fatalf("wall should block, player at %v", got)
	}

	g.player.AddEffect(world.Effect{Kind: world.EffectPhasing, ExpiresAt: g.clock + time.Minute})
	g.Update(100 * time.Millisecond)
	g.Update(100 * time.Millisecond)
	if got := g.player.Pos.Tile(); got != (grid.Point{X: 3, Y: 2}) {
		t.Errorf("phasing should bypass the wall, player at %v", got)
	}
}

func TestExitCompletesLevelOnce(t *testing.T) {
	done := 0
	g := newTestEngine(t, Callbacks{OnLevelComplete: func() { done++ }})
	installOpenLevel(g, 15, 15)
	g.player.Pos = grid.At(grid.Point{X: 11, Y: 13})
	g.SetInput(1, 0)

	for i := 0; i < 6; i++ {
		g.Update(100 * time.Millisecond)
	}
	if done != 1 {
		t.Errorf("OnLevelComplete fired %d times, want 1", done)
	}
	if !g.levelDone {
		t.Error("level should be latched done")
	}
}

func TestTimerFiresOnce(t *testing.T) {
	fired := 0
	g := newTestEngine(t, Callbacks{OnTimeOut: func() { fired++ }})
	lvl := installOpenLevel(g, 15, 15)
	lvl.TimeLimit = 150 * time.Millisecond

	for i := 0; i < 5; i++ {
		g.Update(100 * time.Millisecond)
	}
	if fired != 1 {
		t.Errorf("OnTimeOut fired %d times, want 1", fired)
	}
}

func TestProjectileWallPhase(t *testing.T) {
	for _, tc := range []struct {
		chance   float64
		survives bool
	}{
		{chance: 1.0, survives: true},
		{chance: 0.0, survives: false},
	} {
		g := newTestEngine(t, Callbacks{})
		lvl := installOpenLevel(g, 15, 15)
		lvl.Tiles.Set(6, 5, grid.TileWall)
		lvl.Projectiles = []world.Projectile{{
			ID:              1,
			Pos:             grid.At(grid.Point{X: 5, Y: 5}),
			Vel:             grid.Vec{X: 1},
			Speed:           10,
			Damage:          5,
			OwnerID:         99,
			CreatedAt:       g.clock,
			Lifetime:        world.ProjectileLifetime,
			WallPhaseChance: tc.chance,
		}}

		g.Update(100 * time.Millisecond)
		got := len(g.level.Projectiles) == 1
		if got != tc.survives {
			t.Errorf("chance %v: survives = %v, want %v", tc.chance, got, tc.survives)
		}
	}
}

func TestProjectileHitsPlayer(t *testing.T) {
	g := newTestEngine(t, Callbacks{})
	lvl := installOpenLevel(g, 15, 15)
	lvl.Projectiles = []world.Projectile{{
		ID:          1,
		Pos:         grid.At(grid.Point{X: 3, Y: 2}),
		Vel:         grid.Vec{X: -1},
		Speed:       10,
		Damage:      8,
		OwnerID:     99,
		CreatedAt:   g.clock,
		Lifetime:    world.ProjectileLifetime,
		ShadowPulse: true,
	}}
	before := g.player.HP

	g.Update(100 * time.Millisecond)
	if g.player.HP >= before {
		t.Error("projectile should damage the player")
	}
	if g.player.VisionDebuff == 0 {
		t.Error("shadow pulse should stack a vision debuff")
	}
	if len(g.level.Projectiles) != 0 {
		t.Error("projectile should despawn on hit")
	}
}

func TestProjectileHitsAtMostOneEnemy(t *testing.T) {
	g := newTestEngine(t, Callbacks{})
	lvl := installOpenLevel(g, 15, 15)
	a := spawnTestMob(g, assets.MobDrone, 7, 5)
	b := spawnTestMob(g, assets.MobDrone, 8, 5)
	lvl.Projectiles = []world.Projectile{{
		ID:        1,
		Pos:       grid.At(grid.Point{X: 6, Y: 5}),
		Vel:       grid.Vec{X: 1},
		Speed:     10,
		Damage:    5,
		OwnerID:   99,
		CreatedAt: g.clock,
		Lifetime:  world.ProjectileLifetime,
	}}

	g.Update(100 * time.Millisecond)
	if a.HP == a.MaxHP {
		t.Error("first enemy on the line should be hit")
	}
	if b.HP != b.MaxHP {
		t.Error("projectile must stop at the first enemy")
	}
}

func TestProjectileSkipsOwner(t *testing.T) {
	g := newTestEngine(t, Callbacks{})
	lvl := installOpenLevel(g, 15, 15)
	shooter := spawnTestMob(g, assets.MobSniper, 7, 5)
	lvl.Projectiles = []world.Projectile{{
		ID:        1,
		Pos:       grid.At(grid.Point{X: 6, Y: 5}),
		Vel:       grid.Vec{X: 1},
		Speed:     10,
		Damage:    5,
		OwnerID:   shooter.ID,
		CreatedAt: g.clock,
		Lifetime:  world.ProjectileLifetime,
	}}

	g.Update(100 * time.Millisecond)
	if shooter.HP != shooter.MaxHP {
		t.Error("a shot must never hit its owner")
	}
}

func TestMalformedProjectileResetsSubsystem(t *testing.T) {
	g := newTestEngine(t, Callbacks{})
	lvl := installOpenLevel(g, 15, 15)
	lvl.Projectiles = []world.Projectile{
		{ID: 1, Pos: grid.At(grid.Point{X: 5, Y: 5}), Vel: grid.Vec{}, Speed: 0},
	}
	g.Update(50 * time.Millisecond)
	if len(g.level.Projectiles) != 0 {
		t.Error("faulted projectile subsystem should be reset to empty")
	}
	// The rest of the loop must have run: the clock advanced and the
	// engine is still usable.
	g.Update(50 * time.Millisecond)
	if g.Clock() != 100*time.Millisecond {
		t.Errorf("clock = %v after fault, want 100ms", g.Clock())
	}
}

func TestAfterimageChipsOnce(t *testing.T) {
	g := newTestEngine(t, Callbacks{})
	lvl := installOpenLevel(g, 15, 15)
	lvl.Afterimages = []world.Afterimage{{
		Pos:       g.player.Pos.Tile(),
		Damage:    3,
		CreatedAt: g.clock,
		Lifetime:  2 * time.Second,
	}}
	before := g.player.HP

	g.Update(50 * time.Millisecond)
	afterFirst := g.player.HP
	if afterFirst >= before {
		t.Fatal("afterimage should chip the player")
	}
	g.Update(50 * time.Millisecond)
	if g.player.HP != afterFirst {
		t.Error("afterimage chip damage must apply once")
	}
}

func TestDeadEntitiesRemovedWithRewards(t *testing.T) {
	g := newTestEngine(t, Callbacks{})
	installOpenLevel(g, 15, 15)
	mob := spawnTestMob(g, assets.MobDrone, 10, 10)
	mob.HP = 0
	coins := g.player.Coins

	g.Update(50 * time.Millisecond)
	if len(g.level.Entities) != 0 {
		t.Error("zero-HP entity must be removed by end of tick")
	}
	if g.player.Coins <= coins {
		t.Error("kill should pay coins")
	}
	if !g.compendium[assets.MobDrone] {
		t.Error("first kill should unlock the compendium entry")
	}
}

func TestBossDeathPlacesExitAndDrop(t *testing.T) {
	g := newTestEngine(t, Callbacks{})
	lvl := installOpenLevel(g, 15, 15)
	lvl.IsBoss = true
	lvl.Tiles.Set(13, 13, grid.TileFloor) // no pre-placed exit
	lvl.Exit = lvl.Start
	boss := spawnTestMob(g, assets.BossAres, 10, 10)
	boss.HP = 0

	g.Update(50 * time.Millisecond)
	if lvl.Exit != (grid.Point{X: 10, Y: 10}) {
		t.Errorf("exit = %v, want the boss tile", lvl.Exit)
	}
	if lvl.Tiles.At(10, 10) != grid.TileExit {
		t.Error("boss tile should become the exit")
	}
	if len(lvl.Items) != 1 {
		t.Fatalf("boss should leave one drop, got %d items", len(lvl.Items))
	}
	if lvl.Items[0].Item.Rarity != item.RarityLegendary {
		t.Errorf("boss drop rarity = %s, want legendary", lvl.Items[0].Item.Rarity)
	}
}

func TestPickupEquipsAndReplacedGearDrops(t *testing.T) {
	g := newTestEngine(t, Callbacks{})
	lvl := installOpenLevel(g, 15, 15)
	sword := g.items.Roll(1)
	for sword.Type != item.TypeWeapon {
		sword = g.items.Roll(1)
	}
	lvl.Items = []world.GroundItem{{Pos: grid.Point{X: 3, Y: 2}, Item: sword, Offer: -1}}

	g.SetInput(1, 0)
	g.Update(100 * time.Millisecond)
	g.Update(100 * time.Millisecond)
	if g.player.Loadout.Weapon == nil {
		t.Fatal("walking over a weapon should equip it")
	}
	if len(lvl.Items) != 0 {
		t.Error("picked-up item should leave the ground")
	}

	second := g.items.Roll(1)
	for second.Type != item.TypeWeapon {
		second = g.items.Roll(1)
	}
	lvl.Items = []world.GroundItem{{Pos: grid.Point{X: 4, Y: 2}, Item: second, Offer: -1}}
	g.Update(100 * time.Millisecond)
	g.Update(100 * time.Millisecond)
	if len(lvl.Items) != 1 {
		t.Fatalf("replaced weapon should drop, got %d items", len(lvl.Items))
	}
	if lvl.Items[0].Item.Name != sword.Name {
		t.Errorf("dropped item = %q, want the replaced %q", lvl.Items[0].Item.Name, sword.Name)
	}
}

func TestShopPurchaseNeedsCoins(t *testing.T) {
	g := newTestEngine(t, Callbacks{})
	lvl := installOpenLevel(g, 15, 15)
	lvl.IsShop = true
	stock := g.items.ShopStock(4, 1)[0]
	lvl.Items = []world.GroundItem{{Pos: grid.Point{X: 3, Y: 2}, Item: stock, Offer: -1}}

	g.player.Coins = 0
	g.SetInput(1, 0)
	g.Update(100 * time.Millisecond)
	g.Update(100 * time.Millisecond)
	if len(lvl.Items) != 1 {
		t.Fatal("unaffordable stock must stay on the shelf")
	}

	g.player.Coins = stock.Price * 2
	g.player.Pos = grid.At(grid.Point{X: 2, Y: 2})
	g.Update(100 * time.Millisecond)
	g.Update(100 * time.Millisecond)
	if len(lvl.Items) != 0 {
		t.Fatal("affordable stock should sell")
	}
	if g.player.Coins != stock.Price {
		t.Errorf("coins = %d, want %d after paying list price", g.player.Coins, stock.Price)
	}
}

func TestHurtPlayerUsesDesperationFormula(t *testing.T) {
	g := newTestEngine(t, Callbacks{})
	installOpenLevel(g, 15, 15)
	g.player.HP = 50
	g.player.MaxHP = 100

	g.hurtPlayer(20, nil)
	// floor((20-0) * (1 - 0.5*0.3)) = 17
	if g.player.HP != 50-17 {
		t.Errorf("hp = %d, want %d", g.player.HP, 50-17)
	}
}

func TestGameOverLatch(t *testing.T) {
	over := 0
	g := newTestEngine(t, Callbacks{OnGameOver: func() { over++ }})
	installOpenLevel(g, 15, 15)
	g.player.HP = 1

	g.hurtPlayer(50, nil)
	g.hurtPlayer(50, nil)
	if over != 1 {
		t.Errorf("OnGameOver fired %d times, want 1", over)
	}
	if g.player.HP != 0 {
		t.Errorf("hp = %d, want floored at 0", g.player.HP)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := newTestEngine(t, Callbacks{})
	installOpenLevel(g, 15, 15)
	spawnTestMob(g, assets.MobDrone, 8, 8)

	snap := g.Snapshot()
	snap.Tiles[2][2] = grid.TileWall
	snap.Entities[0].HP = 0

	if g.level.Tiles.At(2, 2) != grid.TileFloor {
		t.Error("mutating snapshot tiles must not touch the live level")
	}
	if g.level.Entities[0].HP == 0 {
		t.Error("mutating snapshot entities must not touch live entities")
	}
}

func TestSpawnDemo(t *testing.T) {
	g := newTestEngine(t, Callbacks{})
	installOpenLevel(g, 15, 15)

	if err := g.SpawnDemo(assets.MobMoth); err != nil {
		t.Fatalf("SpawnDemo: %v", err)
	}
	if len(g.level.Entities) != 1 {
		t.Fatalf("entities = %d, want 1", len(g.level.Entities))
	}
	if g.level.Entities[0].Subtype != assets.MobMoth {
		t.Errorf("spawned %s, want moth", g.level.Entities[0].Subtype)
	}
	if err := g.SpawnDemo("nonsense"); err == nil {
		t.Error("unknown subtype must error")
	}
}

func TestResetClearsRunState(t *testing.T) {
	g := newTestEngine(t, Callbacks{})
	g.player.Coins = 500
	g.scaling.ObservePower(900)
	g.compendium[assets.MobDrone] = true
	g.levelNum = 7

	g.Reset()
	if g.player.Coins != 0 {
		t.Error("reset should issue a fresh player")
	}
	if g.levelNum != 1 {
		t.Errorf("level = %d, want 1", g.levelNum)
	}
	if len(g.compendium) != 0 {
		t.Error("compendium should clear across runs")
	}
}
