package generate

import (
	"math/rand"

	"mazecrawl/assets"
	"mazecrawl/internal/factory"
	"mazecrawl/internal/grid"
	"mazecrawl/internal/item"
	"mazecrawl/internal/scaling"
	"mazecrawl/internal/world"
)

// populate fills a carved level with mobs, items, portals, and
// lightswitches. Shop sectors hold priced stock instead of mobs.
func populate(lvl *world.Level, cfg *Config) {
	var nextID int64 = 1
	id := func() int64 {
		nextID++
		return nextID - 1
	}

	switch {
	case lvl.IsShop:
		placeShopStock(lvl, cfg)
	case lvl.IsBoss:
		spawnBoss(lvl, cfg, id)
	default:
		spawnMobs(lvl, cfg, id)
	}

	if !lvl.IsShop {
		placeItems(lvl, cfg)
	}
	placePortals(lvl, cfg)
	placeLightswitches(lvl, cfg)
}

// sector maps the level classification to the scaling sector.
func sector(lvl *world.Level) scaling.Sector {
	switch {
	case lvl.IsBoss:
		return scaling.SectorBoss
	case lvl.IsShop:
		return scaling.SectorShop
	default:
		return scaling.SectorNormal
	}
}

func multipliersFor(lvl *world.Level, cfg *Config, arch assets.Archetype) scaling.Result {
	return cfg.Scaling.Multipliers(scaling.Input{
		Level:       cfg.Level,
		Sector:      sector(lvl),
		Archetype:   arch,
		PlayerPower: cfg.PlayerPower,
		UseAdaptive: cfg.PlayerPower > 0,
	})
}

// unlockedMobs returns the subtypes available on this level: one new
// subtype joins the rotation for every UnlockEvery normal levels cleared.
func unlockedMobs(level int) []assets.Subtype {
	normals := 0
	for n := 1; n <= level; n++ {
		if !IsBossLevel(n) && !IsShopLevel(n) {
			normals++
		}
	}
	order := assets.UnlockOrder()
	count := 1 + normals/UnlockEvery
	if count > len(order) {
		count = len(order)
	}
	return order[:count]
}

// pickMob draws from the unlocked set by roster weight, with the elite
// weight soft-assist applied.
func pickMob(level int, cfg *Config) (assets.MobDef, bool) {
	unlocked := unlockedMobs(level)
	type weighted struct {
		def assets.MobDef
		w   float64
	}
	var pool []weighted
	total := 0.0
	for _, s := range unlocked {
		def, ok := assets.MobDefFor(s)
		if !ok || def.Weight <= 0 {
			continue
		}
		w := float64(def.Weight)
		if def.Archetype == assets.ArchElite && cfg.EliteWeightCut > 0 {
			w *= cfg.EliteWeightCut
		}
		pool = append(pool, weighted{def, w})
		total += w
	}
	if len(pool) == 0 {
		return assets.MobDef{}, false
	}
	roll := cfg.Rand.Float64() * total
	for _, p := range pool {
		roll -= p.w
		if roll <= 0 {
			return p.def, true
		}
	}
	return pool[len(pool)-1].def, true
}

func spawnMobs(lvl *world.Level, cfg *Config, id func() int64) {
	count := 3 + cfg.Level/2
	if count > 12 {
		count = 12
	}
	for i := 0; i < count; i++ {
		def, ok := pickMob(cfg.Level, cfg)
		if !ok {
			return
		}
		cluster := 1
		if def.Cluster {
			cluster = 2 + cfg.Rand.Intn(2) // swarms come in 2–3
		}
		pos, ok := mobSpawnPos(lvl, cfg.Rand)
		if !ok {
			continue
		}
		mult := multipliersFor(lvl, cfg, def.Archetype)
		lvl.Entities = append(lvl.Entities, factory.NewMob(id(), def, pos, mult))
		for c := 1; c < cluster; c++ {
			near, ok := nearbyFloor(lvl, pos.Tile(), 2, cfg.Rand)
			if !ok {
				break
			}
			lvl.Entities = append(lvl.Entities, factory.NewMob(id(), def, grid.At(near), mult))
		}
	}
}

// spawnBoss places one boss from the fixed rotation, plus cerberus elites
// on deeper boss levels.
func spawnBoss(lvl *world.Level, cfg *Config, id func() int64) {
	rotation := assets.BossRotation()
	tier := cfg.Level / BossInterval
	def, ok := assets.MobDefFor(rotation[(tier-1+len(rotation))%len(rotation)])
	if !ok {
		return
	}

	pos, okPos := mobSpawnPos(lvl, cfg.Rand)
	if !okPos {
		return
	}
	mult := multipliersFor(lvl, cfg, def.Archetype)
	lvl.Entities = append(lvl.Entities, factory.NewMob(id(), def, pos, mult))

	if cfg.Level >= CerberusEliteLevel {
		whelp, ok := assets.MobDefFor(assets.MobCerberus)
		if !ok {
			return
		}
		whelpMult := multipliersFor(lvl, cfg, whelp.Archetype)
		n := 2 + cfg.Rand.Intn(3) // 2–4 elites
		for i := 0; i < n; i++ {
			near, ok := nearbyFloor(lvl, pos.Tile(), 4, cfg.Rand)
			if !ok {
				break
			}
			lvl.Entities = append(lvl.Entities, factory.NewMob(id(), whelp, grid.At(near), whelpMult))
		}
	}
}

// mobSpawnPos finds a floor tile away from the start and off the exit.
// After the attempt budget it degrades to any free floor tile.
func mobSpawnPos(lvl *world.Level, rng *rand.Rand) (grid.Position, bool) {
	floors := lvl.Tiles.FloorTiles()
	if len(floors) == 0 {
		return grid.Position{}, false
	}
	for i := 0; i < placeAttempts; i++ {
		pt := floors[rng.Intn(len(floors))]
		if pt == lvl.Exit || lvl.EntityAt(pt) != nil {
			continue
		}
		if pt.Manhattan(lvl.Start) < minSpawnDist {
			continue
		}
		return grid.At(pt), true
	}
	// Degraded: any free floor tile.
	for _, pt := range floors {
		if pt != lvl.Exit && lvl.EntityAt(pt) == nil {
			return grid.At(pt), true
		}
	}
	return grid.Position{}, false
}

// nearbyFloor finds a free floor tile within Chebyshev distance radius of
// center.
func nearbyFloor(lvl *world.Level, center grid.Point, radius int, rng *rand.Rand) (grid.Point, bool) {
	var options []grid.Point
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			pt := grid.Point{X: center.X + dx, Y: center.Y + dy}
			if pt == center || pt == lvl.Exit {
				continue
			}
			if lvl.Tiles.IsWalkable(pt.X, pt.Y) && lvl.EntityAt(pt) == nil {
				options = append(options, pt)
			}
		}
	}
	if len(options) == 0 {
		return grid.Point{}, false
	}
	return options[rng.Intn(len(options))], true
}

// freeFeatureTiles collects floor tiles not holding the start, exit, or any
// already placed feature, shuffled for take-N placement.
func freeFeatureTiles(lvl *world.Level, rng *rand.Rand) []grid.Point {
	taken := map[grid.Point]bool{lvl.Start: true, lvl.Exit: true}
	for _, gi := range lvl.Items {
		taken[gi.Pos] = true
	}
	for _, p := range lvl.Portals {
		taken[p.Pos] = true
	}
	for _, s := range lvl.Lightswitches {
		taken[s.Pos] = true
	}
	var free []grid.Point
	for _, pt := range lvl.Tiles.FloorTiles() {
		if !taken[pt] {
			free = append(free, pt)
		}
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
	return free
}

// placeItems scatters 1–5 rolled items, scaling with level.
func placeItems(lvl *world.Level, cfg *Config) {
	count := 1 + cfg.Level/5
	if count > 5 {
		count = 5
	}
	free := freeFeatureTiles(lvl, cfg.Rand)
	for i := 0; i < count && i < len(free); i++ {
		rolled := cfg.Items.Roll(cfg.Level)
		lvl.Items = append(lvl.Items, world.GroundItem{
			Pos:   free[i],
			Item:  rolled,
			Offer: recordOffer(cfg, rolled, "floor", 0),
		})
	}
}

// placeShopStock lays out 3–5 priced offers near the start of a shop
// sector.
func placeShopStock(lvl *world.Level, cfg *Config) {
	n := 3 + cfg.Rand.Intn(3)
	stock := cfg.Items.ShopStock(cfg.Level, n)
	free := freeFeatureTiles(lvl, cfg.Rand)
	for i, it := range stock {
		if i >= len(free) {
			break
		}
		lvl.Items = append(lvl.Items, world.GroundItem{
			Pos:   free[i],
			Item:  it,
			Offer: recordOffer(cfg, it, "shop", it.Price),
		})
	}
}

// recordOffer returns the economy offer index, or -1 when untracked.
func recordOffer(cfg *Config, it item.Item, source string, price int) int {
	if cfg.Economy == nil {
		return -1
	}
	return cfg.Economy.RecordOffer(item.Offer{
		Level:        cfg.Level,
		Source:       source,
		Price:        price,
		CoinsAtOffer: cfg.PlayerCoins,
		Power:        it.Power(),
	})
}

// placePortals rolls a 50% chance for one portal whose destination favors
// item-adjacent and exit-adjacent tiles over purely random ones.
func placePortals(lvl *world.Level, cfg *Config) {
	if cfg.Rand.Float64() >= 0.5 {
		return
	}
	free := freeFeatureTiles(lvl, cfg.Rand)
	if len(free) < 2 {
		return
	}
	pos := free[0]

	target := free[1]
	roll := cfg.Rand.Float64()
	switch {
	case roll < 0.4 && len(lvl.Items) > 0:
		gi := lvl.Items[cfg.Rand.Intn(len(lvl.Items))]
		if near, ok := nearbyFloor(lvl, gi.Pos, 2, cfg.Rand); ok {
			target = near
		}
	case roll < 0.7 && !lvl.IsBoss:
		if near, ok := nearbyFloor(lvl, lvl.Exit, 2, cfg.Rand); ok {
			target = near
		}
	}
	lvl.Portals = append(lvl.Portals, world.Portal{Pos: pos, Target: target})
}

// placeLightswitches spreads up to 4 switches with minimum mutual spacing.
func placeLightswitches(lvl *world.Level, cfg *Config) {
	free := freeFeatureTiles(lvl, cfg.Rand)
	for _, pt := range free {
		if len(lvl.Lightswitches) >= maxLightswitch {
			return
		}
		spaced := true
		for _, s := range lvl.Lightswitches {
			if pt.Manhattan(s.Pos) < switchSpacing {
				spaced = false
				break
			}
		}
		if spaced {
			lvl.Lightswitches = append(lvl.Lightswitches, world.Lightswitch{Pos: pt})
		}
	}
}
