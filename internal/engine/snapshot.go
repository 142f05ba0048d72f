package engine

import (
	"time"

	"mazecrawl/assets"
	"mazecrawl/internal/grid"
	"mazecrawl/internal/item"
	"mazecrawl/internal/world"
)

// Snapshot is a read-only copy of the visible simulation state, safe to
// hand to renderers while the engine keeps mutating the live level.
type Snapshot struct {
	Level  int  `json:"level"`
	IsBoss bool `json:"isBoss"`
	IsShop bool `json:"isShop"`
	Width  int  `json:"width"`
	Height int  `json:"height"`

	Tiles [][]grid.TileKind `json:"tiles"`
	Exit  grid.Point        `json:"exit"`

	Player        SnapshotPlayer      `json:"player"`
	Entities      []SnapshotEntity    `json:"entities"`
	Projectiles   []world.Projectile  `json:"projectiles"`
	Afterimages   []world.Afterimage  `json:"afterimages"`
	Particles     []world.Particle    `json:"particles"`
	Footprints    []world.Footprint   `json:"footprints"`
	Items         []SnapshotItem      `json:"items"`
	Portals       []world.Portal      `json:"portals"`
	Lightswitches []world.Lightswitch `json:"lightswitches"`

	TimeLeft   time.Duration    `json:"timeLeft"`
	Bonus      []BonusKind      `json:"bonus,omitempty"`
	Compendium []assets.Subtype `json:"compendium,omitempty"`
	GameOver   bool             `json:"gameOver"`
}

// SnapshotPlayer is the player as renderers see it.
type SnapshotPlayer struct {
	Pos     grid.Position `json:"pos"`
	HP      int           `json:"hp"`
	MaxHP   int           `json:"maxHp"`
	Coins   int           `json:"coins"`
	Damage  int           `json:"damage"`
	Defense int           `json:"defense"`
	Vision  float64       `json:"vision"`
	Weapon  string        `json:"weapon,omitempty"`
	Armor   string        `json:"armor,omitempty"`
	Utility string        `json:"utility,omitempty"`
}

// SnapshotEntity is one mob as renderers see it.
type SnapshotEntity struct {
	ID      int64          `json:"id"`
	Subtype assets.Subtype `json:"subtype"`
	Name    string         `json:"name"`
	Glyph   string         `json:"glyph"`
	Boss    bool           `json:"boss"`
	Pos     grid.Position  `json:"pos"`
	HP      int            `json:"hp"`
	MaxHP   int            `json:"maxHp"`
}

// SnapshotItem is one ground item as renderers see it.
type SnapshotItem struct {
	Pos    grid.Point  `json:"pos"`
	Name   string      `json:"name"`
	Glyph  string      `json:"glyph"`
	Rarity item.Rarity `json:"rarity"`
	Price  int         `json:"price,omitempty"`
}

// Snapshot deep-copies the current state. Mutating the result never
// affects the live level.
func (g *Engine) Snapshot() Snapshot {
	lvl := g.level
	w, h := lvl.Tiles.Width, lvl.Tiles.Height

	tiles := make([][]grid.TileKind, h)
	for y := 0; y < h; y++ {
		row := make([]grid.TileKind, w)
		for x := 0; x < w; x++ {
			row[x] = lvl.Tiles.At(x, y)
		}
		tiles[y] = row
	}

	entities := make([]SnapshotEntity, 0, len(lvl.Entities))
	for _, e := range lvl.Entities {
		if !e.Alive() {
			continue
		}
		entities = append(entities, SnapshotEntity{
			ID:      e.ID,
			Subtype: e.Subtype,
			Name:    e.Name,
			Glyph:   e.Glyph,
			Boss:    e.Kind == world.KindBoss,
			Pos:     e.Pos,
			HP:      e.HP,
			MaxHP:   e.MaxHP,
		})
	}

	items := make([]SnapshotItem, 0, len(lvl.Items))
	for _, gi := range lvl.Items {
		price := gi.Item.Price
		if !lvl.IsShop {
			price = 0
		}
		items = append(items, SnapshotItem{
			Pos:    gi.Pos,
			Name:   gi.Item.Name,
			Glyph:  gi.Item.Glyph,
			Rarity: gi.Item.Rarity,
			Price:  price,
		})
	}

	p := g.player
	sp := SnapshotPlayer{
		Pos:     p.Pos,
		HP:      p.HP,
		MaxHP:   p.MaxHP,
		Coins:   p.Coins,
		Damage:  p.EffectiveDamage(),
		Defense: p.EffectiveDefense(),
		Vision:  p.EffectiveVision() + g.visionBonus,
	}
	if p.Loadout.Weapon != nil {
		sp.Weapon = p.Loadout.Weapon.Name
	}
	if p.Loadout.Armor != nil {
		sp.Armor = p.Loadout.Armor.Name
	}
	if p.Loadout.Utility != nil {
		sp.Utility = p.Loadout.Utility.Name
	}

	snap := Snapshot{
		Level:         g.levelNum,
		IsBoss:        lvl.IsBoss,
		IsShop:        lvl.IsShop,
		Width:         w,
		Height:        h,
		Tiles:         tiles,
		Exit:          lvl.Exit,
		Player:        sp,
		Entities:      entities,
		Projectiles:   append([]world.Projectile(nil), lvl.Projectiles...),
		Afterimages:   append([]world.Afterimage(nil), lvl.Afterimages...),
		Particles:     append([]world.Particle(nil), lvl.Particles...),
		Footprints:    append([]world.Footprint(nil), lvl.Footprints...),
		Items:         items,
		Portals:       append([]world.Portal(nil), lvl.Portals...),
		Lightswitches: append([]world.Lightswitch(nil), lvl.Lightswitches...),
		TimeLeft:      g.TimeLeft(),
		Compendium:    g.Compendium(),
		GameOver:      g.gameOver,
	}
	if g.bonus != nil && !g.bonus.resolved {
		snap.Bonus = append([]BonusKind(nil), g.bonus.Options[:]...)
	}
	return snap
}
