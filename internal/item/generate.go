package item

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"mazecrawl/assets"
)

// Generator rolls items from the template tables. One Generator serves one
// run; IDs are unique within it.
type Generator struct {
	rng    *rand.Rand
	nextID int64
}

// NewGenerator creates a Generator drawing randomness from rng.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, nextID: 1}
}

// Roll produces one random item scaled to the level.
func (g *Generator) Roll(level int) Item {
	tpl := assets.ItemTemplates[g.rng.Intn(len(assets.ItemTemplates))]
	return g.fromTemplate(tpl, g.RollRarity(level), level)
}

// RollRarity draws a rarity from level-shifted cumulative buckets. Higher
// levels move probability mass toward the top tiers.
func (g *Generator) RollRarity(level int) Rarity {
	L := float64(level)
	legendary := math.Min(0.02+0.004*L, 0.12)
	epic := math.Min(0.08+0.008*L, 0.25)
	rare := math.Min(0.25+0.010*L, 0.40)

	roll := g.rng.Float64()
	switch {
	case roll < legendary:
		return RarityLegendary
	case roll < legendary+epic:
		return RarityEpic
	case roll < legendary+epic+rare:
		return RarityRare
	default:
		return RarityCommon
	}
}

// BossDrop picks a named legendary from the fixed pool, scales its stats by
// 5% per level, and stamps the level into the name.
func (g *Generator) BossDrop(level int) Item {
	tpl := assets.BossDrops[g.rng.Intn(len(assets.BossDrops))]
	scale := 1 + 0.05*float64(level)
	it := Item{
		ID:          g.id(),
		Base:        tpl.Base,
		Name:        fmt.Sprintf("%s Lv%d", tpl.Name, level),
		Glyph:       tpl.Glyph,
		Type:        Type(tpl.Type),
		Rarity:      RarityLegendary,
		Stats:       scaleStats(templateStats(tpl), scale),
		Price:       int(float64(tpl.Price)*scale) + 100,
		Description: tpl.Description,
	}
	return it
}

// ShopStock rolls n distinct offers for a shop level.
func (g *Generator) ShopStock(level, n int) []Item {
	out := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Roll(level))
	}
	return out
}

func (g *Generator) fromTemplate(tpl assets.ItemTemplate, rarity Rarity, level int) Item {
	scale := rarity.Multiplier() * (1 + 0.1*float64(level-1))
	stats := scaleStats(templateStats(tpl), scale)
	it := Item{
		ID:          g.id(),
		Base:        tpl.Base,
		Glyph:       tpl.Glyph,
		Type:        Type(tpl.Type),
		Rarity:      rarity,
		Stats:       stats,
		Price:       int(math.Ceil(float64(tpl.Price) * scale)),
		Description: tpl.Description,
	}
	it.Name = decorateName(tpl.Name, stats, rarity)
	return it
}

func (g *Generator) id() int64 {
	id := g.nextID
	g.nextID++
	return id
}

// decorateName appends a stat-derived suffix: a single-stat suffix, a
// two-stat combo suffix, or a rarity prefix when three or more stats are
// present. Names that already contain "of" are left alone so pre-named boss
// drops never double-suffix.
func decorateName(base string, stats Stats, rarity Rarity) string {
	if strings.Contains(base, " of ") {
		return base
	}
	names := stats.names()
	switch len(names) {
	case 0:
		return base
	case 1:
		if suffix, ok := assets.Suffixes.Singles[names[0]]; ok {
			return base + " " + suffix
		}
	case 2:
		if suffix, ok := assets.Suffixes.Pairs[names[0]+"+"+names[1]]; ok {
			return base + " " + suffix
		}
		if suffix, ok := assets.Suffixes.Pairs[names[1]+"+"+names[0]]; ok {
			return base + " " + suffix
		}
	}
	if prefix, ok := assets.Suffixes.Prefixes[string(rarity)]; ok {
		return prefix + " " + base
	}
	return base
}

func templateStats(tpl assets.ItemTemplate) Stats {
	return Stats{
		Damage:  tpl.Damage,
		Defense: tpl.Defense,
		Speed:   tpl.Speed,
		Vision:  tpl.Vision,
		Heal:    tpl.Heal,
	}
}

// scaleStats multiplies present stats, keeping them at least 1.
func scaleStats(s Stats, scale float64) Stats {
	up := func(v int) int {
		if v == 0 {
			return 0
		}
		scaled := int(math.Floor(float64(v) * scale))
		if scaled < 1 {
			scaled = 1
		}
		return scaled
	}
	return Stats{
		Damage:  up(s.Damage),
		Defense: up(s.Defense),
		Speed:   up(s.Speed),
		Vision:  up(s.Vision),
		Heal:    up(s.Heal),
	}
}
