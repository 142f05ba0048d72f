// Package item holds the item model, the procedural loot generator, and the
// offer-economy tracker that drives soft difficulty assists.
package item

import (
	"strings"

	"mazecrawl/assets"
)

// Type categorizes where an item can be equipped or how it is used.
type Type string

const (
	TypeWeapon     Type = "weapon"
	TypeArmor      Type = "armor"
	TypeUtility    Type = "utility"
	TypeConsumable Type = "consumable"
)

// Rarity is the quality tier of a rolled item.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Multiplier scales template base stats for the rarity.
func (r Rarity) Multiplier() float64 {
	switch r {
	case RarityRare:
		return 1.35
	case RarityEpic:
		return 1.75
	case RarityLegendary:
		return 2.3
	default:
		return 1.0
	}
}

// Stats is the sparse stat block of an item. Zero means the stat is absent.
type Stats struct {
	Damage  int
	Defense int
	Speed   int // percent move-speed bonus
	Vision  int // vision radius bonus
	Heal    int // flat HP restored on use
}

// Count returns how many stats are present.
func (s Stats) Count() int {
	n := 0
	for _, v := range [...]int{s.Damage, s.Defense, s.Speed, s.Vision, s.Heal} {
		if v != 0 {
			n++
		}
	}
	return n
}

// names returns the present stat names in canonical order, used by the
// suffix tables.
func (s Stats) names() []string {
	var out []string
	if s.Damage != 0 {
		out = append(out, "damage")
	}
	if s.Defense != 0 {
		out = append(out, "defense")
	}
	if s.Heal != 0 {
		out = append(out, "heal")
	}
	if s.Speed != 0 {
		out = append(out, "speed")
	}
	if s.Vision != 0 {
		out = append(out, "vision")
	}
	return out
}

// Item is one generated item. Immutable once rolled, except for the level
// suffix stamped onto boss drops at creation.
type Item struct {
	ID          int64
	Base        string // template family: sword, dagger, plate, ...
	Name        string
	Glyph       string
	Type        Type
	Rarity      Rarity
	Stats       Stats
	Price       int
	Description string
}

// Power is the scalar worth of the item's stat block, used by the economy
// tracker to compare offered gear against equipped gear.
func (it Item) Power() float64 {
	s := it.Stats
	return 2.0*float64(s.Damage) +
		1.5*float64(s.Defense) +
		0.5*float64(s.Speed) +
		3.0*float64(s.Vision) +
		0.2*float64(s.Heal)
}

// BaseName recovers the template base for a generated item display name by
// matching the template (or boss drop) name embedded in it. Returns "" when
// no template matches.
func BaseName(displayName string) string {
	for _, t := range assets.BossDrops {
		if strings.Contains(displayName, t.Name) {
			return t.Base
		}
	}
	for _, t := range assets.ItemTemplates {
		if strings.Contains(displayName, t.Name) {
			return t.Base
		}
	}
	return ""
}
