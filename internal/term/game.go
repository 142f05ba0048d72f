// Package term is the local terminal host: it drives the engine on a
// fixed tick, maps key presses to an input direction, and draws snapshots
// with tcell.
package term

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"mazecrawl/internal/engine"
)

const (
	tickPeriod = 33 * time.Millisecond
	// Terminal key auto-repeat keeps a held direction alive; a key that
	// stops repeating for this long counts as released.
	inputHold = 160 * time.Millisecond
)

// Config configures the terminal host.
type Config struct {
	Seed   int64
	Width  int
	Height int
	Logger *slog.Logger
}

// Game couples one engine run to one tcell screen.
type Game struct {
	screen   tcell.Screen
	eng      *engine.Engine
	renderer *Renderer
	log      *slog.Logger

	messages  []string
	lastInput time.Time
	advance   bool
	over      bool
	quit      bool
}

// New initializes the screen and the engine.
func New(cfg Config) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	g := &Game{screen: screen, log: cfg.Logger}
	if g.log == nil {
		g.log = slog.Default()
	}
	g.eng = engine.New(engine.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		Rand:   rand.New(rand.NewSource(cfg.Seed)),
		Logger: g.log,
		Callbacks: engine.Callbacks{
			OnLevelComplete: func() { g.advance = true },
			OnGameOver:      func() { g.over = true },
			OnTimeOut:       func() { g.over = true },
		},
	})
	g.renderer = NewRenderer(screen)
	return g, nil
}

// Run is the main loop: one goroutine forwards tcell events, the tick
// select drives the engine and redraws.
func (g *Game) Run() {
	defer g.screen.Fini()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(tickPeriod)
	defer ticker.Stop()
	last := time.Now()
	first := true

	for !g.quit {
		select {
		case ev := <-events:
			g.handleEvent(ev)
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if first {
				dt = 0
				first = false
			}
			g.tick(dt, now)
		}
	}
}

func (g *Game) tick(dt time.Duration, now time.Time) {
	if now.Sub(g.lastInput) > inputHold {
		g.eng.SetInput(0, 0)
	}
	if !g.over {
		g.eng.Update(dt)
	}
	if g.advance {
		g.advance = false
		g.eng.NextLevel()
	}
	for _, ev := range g.eng.DrainEvents() {
		if msg := describeEvent(ev); msg != "" {
			g.messages = append(g.messages, msg)
		}
	}
	if len(g.messages) > 50 {
		g.messages = g.messages[len(g.messages)-50:]
	}

	snap := g.eng.Snapshot()
	g.renderer.DrawFrame(snap)
	msgs := g.messages
	if g.over {
		msgs = append(msgs[:len(msgs):len(msgs)], "Run over. [r] try again  [q] quit")
	}
	g.renderer.DrawHUD(snap, msgs)
}

func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.renderer.Resize()
	case *tcell.EventKey:
		g.handleKey(ev)
	}
}

func (g *Game) handleKey(ev *tcell.EventKey) {
	if dx, dy, ok := keyToDirection(ev); ok {
		g.eng.SetInput(dx, dy)
		g.lastInput = time.Now()
		return
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		g.quit = true
		return
	}
	switch ev.Rune() {
	case 'q', 'Q':
		g.quit = true
	case 'r', 'R':
		if g.over {
			g.eng.Reset()
			g.messages = nil
			g.over = false
		}
	case '1':
		g.chooseBonus(0)
	case '2':
		g.chooseBonus(1)
	case 'f', 'F':
		if g.eng.PendingBonus() != nil {
			if err := g.eng.ChooseBonus(engine.BonusForgo); err != nil {
				g.log.Warn("forgo bonus", "err", err)
			}
		}
	}
}

func (g *Game) chooseBonus(i int) {
	offer := g.eng.PendingBonus()
	if offer == nil {
		return
	}
	if err := g.eng.ChooseBonus(offer.Options[i]); err != nil {
		g.log.Warn("choose bonus", "err", err)
	}
}

// keyToDirection maps arrows and hjkl to an input direction.
func keyToDirection(ev *tcell.EventKey) (dx, dy float64, ok bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return 0, -1, true
	case tcell.KeyDown:
		return 0, 1, true
	case tcell.KeyRight:
		return 1, 0, true
	case tcell.KeyLeft:
		return -1, 0, true
	}
	switch ev.Rune() {
	case 'k', 'K':
		return 0, -1, true
	case 'j', 'J':
		return 0, 1, true
	case 'l', 'L':
		return 1, 0, true
	case 'h', 'H':
		return -1, 0, true
	}
	return 0, 0, false
}

func describeEvent(ev engine.Event) string {
	switch ev.Kind {
	case engine.EventKill:
		return fmt.Sprintf("Slain: %s (+%d🪙)", ev.Subtype, ev.Amount)
	case engine.EventPickup:
		return fmt.Sprintf("Picked up %s", ev.Item)
	case engine.EventPurchase:
		return fmt.Sprintf("Bought %s for %d🪙", ev.Item, ev.Amount)
	case engine.EventPortal:
		return "The portal swallows you."
	case engine.EventLightswitch:
		return "Light floods the corridors."
	case engine.EventCrit:
		return fmt.Sprintf("Critical hit! (%d)", ev.Amount)
	case engine.EventBossDrop:
		return fmt.Sprintf("%s drops %s!", ev.Subtype, ev.Item)
	case engine.EventLevelComplete:
		return fmt.Sprintf("Depth %d cleared.", ev.Amount)
	case engine.EventTimeout:
		return "Time runs out."
	case engine.EventGameOver:
		return "You fall."
	default:
		return ""
	}
}
