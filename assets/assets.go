// Package assets holds the static gameplay data tables: the mob roster,
// item templates, boss drop pool, and item-name decoration tables. The
// tables live in embedded YAML and are parsed once at package init.
package assets

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Archetype is a mob's combat role, used by the scaling engine to bias
// HP/damage multipliers. Distinct from Subtype, its concrete identity.
type Archetype string

const (
	ArchDrone  Archetype = "drone"
	ArchSwarm  Archetype = "swarm"
	ArchRanged Archetype = "ranged"
	ArchElite  Archetype = "elite"
	ArchBoss   Archetype = "boss"
)

// Subtype is a mob's concrete identity, which selects its AI behavior.
type Subtype string

const (
	MobDrone      Subtype = "drone"
	MobSwarm      Subtype = "swarm"
	MobGuardian   Subtype = "guardian"
	MobCharger    Subtype = "charger"
	MobSniper     Subtype = "sniper"
	MobStationary Subtype = "stationary"
	MobPhase      Subtype = "phase"
	MobMoth       Subtype = "moth"
	MobTracker    Subtype = "tracker"
	MobCerberus   Subtype = "cerberus"
	BossAres      Subtype = "boss_ares"
	BossZeus      Subtype = "boss_zeus"
	BossHades     Subtype = "boss_hades"
)

// MobDef is one row of the mob roster.
type MobDef struct {
	Subtype    Subtype   `yaml:"subtype"`
	Name       string    `yaml:"name"`
	Glyph      string    `yaml:"glyph"`
	Archetype  Archetype `yaml:"archetype"`
	HP         int       `yaml:"hp"`
	Damage     int       `yaml:"damage"`
	Speed      float64   `yaml:"speed"` // tiles per second; 0 = never moves
	Aggro      float64   `yaml:"aggro"`
	Range      float64   `yaml:"range"` // ranged attack reach, 0 for melee
	CooldownMS int       `yaml:"cooldown_ms"`
	Weight     int       `yaml:"weight"`
	Flying     bool      `yaml:"flying"` // may move diagonally and ignore walls
	Cluster    bool      `yaml:"cluster"`
	Unlock     int       `yaml:"unlock"` // rotation order; -1 = boss sectors only
}

// ItemTemplate is one row of the item template table. Zero-valued stats are
// absent from rolled items.
type ItemTemplate struct {
	Base        string `yaml:"base"`
	Name        string `yaml:"name"`
	Glyph       string `yaml:"glyph"`
	Type        string `yaml:"type"`
	Damage      int    `yaml:"damage"`
	Defense     int    `yaml:"defense"`
	Speed       int    `yaml:"speed"`
	Vision      int    `yaml:"vision"`
	Heal        int    `yaml:"heal"`
	Price       int    `yaml:"price"`
	Description string `yaml:"description"`
}

// SuffixTables drives procedural item naming.
type SuffixTables struct {
	Singles  map[string]string `yaml:"singles"`
	Pairs    map[string]string `yaml:"pairs"`
	Prefixes map[string]string `yaml:"prefixes"`
}

var (
	// Mobs is the full roster in file order.
	Mobs []MobDef
	// ItemTemplates is the template table in file order.
	ItemTemplates []ItemTemplate
	// BossDrops is the fixed legendary drop pool.
	BossDrops []ItemTemplate
	// Suffixes holds the naming tables.
	Suffixes SuffixTables

	mobIndex map[Subtype]MobDef
)

func init() {
	if err := load(); err != nil {
		panic(fmt.Sprintf("assets: %v", err))
	}
}

func load() error {
	var mobFile struct {
		Mobs []MobDef `yaml:"mobs"`
	}
	if err := unmarshalFile("data/mobs.yaml", &mobFile); err != nil {
		return err
	}
	Mobs = mobFile.Mobs
	mobIndex = make(map[Subtype]MobDef, len(Mobs))
	for _, m := range Mobs {
		mobIndex[m.Subtype] = m
	}

	var itemFile struct {
		Templates []ItemTemplate `yaml:"templates"`
	}
	if err := unmarshalFile("data/items.yaml", &itemFile); err != nil {
		return err
	}
	ItemTemplates = itemFile.Templates

	var dropFile struct {
		Drops []ItemTemplate `yaml:"drops"`
	}
	if err := unmarshalFile("data/boss_drops.yaml", &dropFile); err != nil {
		return err
	}
	BossDrops = dropFile.Drops

	if err := unmarshalFile("data/suffixes.yaml", &Suffixes); err != nil {
		return err
	}
	return nil
}

func unmarshalFile(name string, out any) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", name, err)
	}
	return nil
}

// MobDefFor looks up the roster row for a subtype.
func MobDefFor(s Subtype) (MobDef, bool) {
	def, ok := mobIndex[s]
	return def, ok
}

// UnlockOrder returns the subtypes that participate in the normal-level
// rotation, in unlock order.
func UnlockOrder() []Subtype {
	var rows []MobDef
	for _, m := range Mobs {
		if m.Unlock >= 0 {
			rows = append(rows, m)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Unlock < rows[j].Unlock })
	out := make([]Subtype, len(rows))
	for i, m := range rows {
		out[i] = m.Subtype
	}
	return out
}

// BossRotation is the fixed cycle boss levels draw from, indexed by boss tier.
func BossRotation() [3]Subtype {
	return [3]Subtype{BossAres, BossZeus, BossHades}
}

// TemplateByBase looks up an item template by its base name.
func TemplateByBase(base string) (ItemTemplate, bool) {
	for _, t := range ItemTemplates {
		if t.Base == base {
			return t, true
		}
	}
	return ItemTemplate{}, false
}
