// Package engine owns the per-tick simulation: one Engine drives one run,
// advancing the current level's state from host-supplied deltas. The level
// is mutated only here; hosts read snapshots and drain events.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"mazecrawl/assets"
	"mazecrawl/internal/factory"
	"mazecrawl/internal/generate"
	"mazecrawl/internal/grid"
	"mazecrawl/internal/item"
	"mazecrawl/internal/scaling"
	"mazecrawl/internal/world"
)

// Callbacks are the host hooks the engine invokes. Each fires at most once
// per level instance. Nil hooks are skipped.
type Callbacks struct {
	OnLevelComplete func()
	OnGameOver      func()
	OnTimeOut       func()
}

// Config sets up one run.
type Config struct {
	Width  int
	Height int
	Rand   *rand.Rand
	Logger *slog.Logger
	Callbacks
}

// Engine is the single-owner update loop for a run. Not safe for
// concurrent use; hosts drive it from one goroutine.
type Engine struct {
	log *slog.Logger
	rng *rand.Rand
	cb  Callbacks

	width, height int

	scaling *scaling.Engine
	economy *item.Economy
	items   *item.Generator
	assists item.Assists

	level    *world.Level
	player   *world.Player
	levelNum int

	clock      time.Duration
	levelStart time.Duration

	inputX, inputY float64

	// Per-level one-shot latches.
	levelDone bool
	gameOver  bool
	timedOut  bool

	bonus        *BonusOffer
	bonusOffered bool
	skipShop     bool
	skipBoss     bool

	visionBonus  float64
	compendium   map[assets.Subtype]bool
	events       []Event
	nextEntityID int64
}

// New starts a run at level 1.
func New(cfg Config) *Engine {
	if cfg.Width == 0 {
		cfg.Width = 31
	}
	if cfg.Height == 0 {
		cfg.Height = 31
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	g := &Engine{
		log:        cfg.Logger,
		rng:        cfg.Rand,
		cb:         cfg.Callbacks,
		width:      cfg.Width,
		height:     cfg.Height,
		scaling:    scaling.New(),
		economy:    item.NewEconomy(),
		items:      item.NewGenerator(cfg.Rand),
		assists:    item.NoAssists(),
		player:     world.NewPlayer(),
		compendium: make(map[assets.Subtype]bool),
	}
	g.levelNum = 1
	g.startLevel(1)
	return g
}

// Reset restarts the run from level 1, clearing the scaling and economy
// histories. State never leaks across runs.
func (g *Engine) Reset() {
	g.scaling.Reset()
	g.economy.Reset()
	g.assists = item.NoAssists()
	g.player = world.NewPlayer()
	g.compendium = make(map[assets.Subtype]bool)
	g.events = nil
	g.clock = 0
	g.skipShop, g.skipBoss = false, false
	g.levelNum = 1
	g.startLevel(1)
}

// Level exposes the live level for package-internal callers and tests.
// Hosts render from Snapshot instead.
func (g *Engine) Level() *world.Level { return g.level }

// Player exposes the live player state.
func (g *Engine) Player() *world.Player { return g.player }

// LevelNumber is the current sector number.
func (g *Engine) LevelNumber() int { return g.levelNum }

// Clock is the run-relative simulation time.
func (g *Engine) Clock() time.Duration { return g.clock }

// GameOver reports whether the run has ended.
func (g *Engine) GameOver() bool { return g.gameOver }

// SetInput samples the host's movement intent, one axis value in [-1, 1]
// each. The engine quantizes it to a cardinal step per move tick.
func (g *Engine) SetInput(x, y float64) {
	g.inputX = clamp(x, -1, 1)
	g.inputY = clamp(y, -1, 1)
}

// NextLevel advances to the next sector. Hosts call it after
// OnLevelComplete fires. Skip-shop and skip-boss bonuses are consumed
// here.
func (g *Engine) NextLevel() {
	g.scaling.ObservePower(g.playerPower())
	g.assists = g.economy.AssistsFor(g.player.EquippedPower())
	n := g.levelNum + 1
	for {
		if g.skipShop && generate.IsShopLevel(n) {
			g.skipShop = false
			n++
			continue
		}
		if g.skipBoss && generate.IsBossLevel(n) {
			g.skipBoss = false
			n++
			continue
		}
		break
	}
	g.levelNum = n
	g.startLevel(n)
}

func (g *Engine) startLevel(n int) {
	g.level = generate.Generate(&generate.Config{
		Level:          n,
		Width:          g.width,
		Height:         g.height,
		Rand:           g.rng,
		Scaling:        g.scaling,
		Items:          g.items,
		Economy:        g.economy,
		PlayerPower:    g.playerPower(),
		PlayerCoins:    g.player.Coins,
		EliteWeightCut: g.assists.EliteWeightCut,
	})
	g.player.Pos = grid.At(g.level.Start)
	g.player.MoveAcc = 0
	g.levelStart = g.clock
	g.levelDone = false
	g.timedOut = false
	g.bonus = nil
	g.bonusOffered = false
	g.visionBonus = 0
	for _, e := range g.level.Entities {
		if e.ID >= g.nextEntityID {
			g.nextEntityID = e.ID + 1
		}
	}
	g.log.Info("level start",
		"level", n, "boss", g.level.IsBoss, "shop", g.level.IsShop,
		"entities", len(g.level.Entities))
}

// playerPower is the scalar strength index fed to the adaptive scaler.
func (g *Engine) playerPower() float64 {
	p := g.player
	return scaling.PlayerPower(
		float64(p.EffectiveDamage()),
		p.EffectiveSpeed(g.clock),
		float64(p.MaxHP),
		float64(p.EffectiveDefense()),
	)
}

// SpawnDemo places one mob of the given subtype on a free floor tile near
// the player, unscaled. Used by the compendium viewer.
func (g *Engine) SpawnDemo(subtype assets.Subtype) error {
	def, ok := assets.MobDefFor(subtype)
	if !ok {
		return fmt.Errorf("spawn demo: unknown subtype %q", subtype)
	}
	center := g.player.Pos.Tile()
	for r := 2; r <= 5; r++ {
		for _, d := range grid.Cardinals {
			pt := grid.Point{X: center.X + d.X*r, Y: center.Y + d.Y*r}
			if !g.level.Tiles.IsWalkable(pt.X, pt.Y) || pt == g.level.Exit {
				continue
			}
			if g.level.EntityAt(pt) != nil {
				continue
			}
			id := g.nextEntityID
			g.nextEntityID++
			mob := factory.NewMob(id, def, grid.At(pt), scaling.Result{HP: 1, Damage: 1})
			g.level.Entities = append(g.level.Entities, mob)
			return nil
		}
	}
	return fmt.Errorf("spawn demo: no free tile near player")
}

// Compendium lists the subtypes unlocked by a first kill, in unlock-table
// order with bosses last.
func (g *Engine) Compendium() []assets.Subtype {
	var out []assets.Subtype
	for _, s := range assets.UnlockOrder() {
		if g.compendium[s] {
			out = append(out, s)
		}
	}
	for _, s := range []assets.Subtype{assets.MobCerberus, assets.BossAres, assets.BossZeus, assets.BossHades} {
		if g.compendium[s] {
			out = append(out, s)
		}
	}
	return out
}

func (g *Engine) completeLevel() {
	if g.levelDone {
		return
	}
	g.levelDone = true
	g.emit(Event{Kind: EventLevelComplete, Amount: g.levelNum})
	if g.cb.OnLevelComplete != nil {
		g.cb.OnLevelComplete()
	}
}

func (g *Engine) setGameOver() {
	if g.gameOver {
		return
	}
	g.gameOver = true
	g.emit(Event{Kind: EventGameOver, Amount: g.levelNum})
	if g.cb.OnGameOver != nil {
		g.cb.OnGameOver()
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
