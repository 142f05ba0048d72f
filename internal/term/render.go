package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"mazecrawl/internal/engine"
	"mazecrawl/internal/grid"
)

// Camera translates between world coordinates and screen coordinates.
// World X is multiplied by 2 because emoji occupy 2 terminal columns.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// Center repositions the camera so that world position (cx, cy) is in the
// middle of the viewport.
func (c *Camera) Center(cx, cy int) {
	c.OffsetX = cx - (c.ViewWidth/2)/2
	c.OffsetY = cy - c.ViewHeight/2
}

// WorldToScreen converts world (wx, wy) to screen (sx, sy). visible is
// false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = (wx - c.OffsetX) * 2
	sy = wy - c.OffsetY
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// Sector glyph themes indexed by sector flavor.
type tileTheme struct {
	Wall  string
	Floor string
	Exit  string
}

var themes = map[string]tileTheme{
	"normal": {Wall: "🧱", Floor: "⬛", Exit: "🚪"},
	"shop":   {Wall: "🪵", Floor: "🟫", Exit: "🚪"},
	"boss":   {Wall: "🌋", Floor: "⬛", Exit: "🚪"},
}

const (
	glyphPlayer      = "🧝"
	glyphProjectile  = "🔸"
	glyphPulse       = "🌀"
	glyphAfterimage  = "🌫"
	glyphPortal      = "🌀"
	glyphLightswitch = "💡"
	glyphFootprint   = "·"
)

// Renderer draws engine snapshots onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera Camera
}

// NewRenderer creates a Renderer for the given screen, reserving the
// bottom rows for the HUD.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: Camera{ViewWidth: w, ViewHeight: h - hudRows},
	}
}

// Resize refits the viewport after a terminal resize.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = h - hudRows
}

// DrawFrame renders one snapshot: tiles inside the vision radius,
// features, entities, ephemera, and the player.
func (r *Renderer) DrawFrame(snap engine.Snapshot) {
	r.screen.Clear()
	px, py := snap.Player.Pos.Tile().X, snap.Player.Pos.Tile().Y
	r.camera.Center(px, py)

	theme := themes["normal"]
	if snap.IsShop {
		theme = themes["shop"]
	} else if snap.IsBoss {
		theme = themes["boss"]
	}

	vision := snap.Player.Vision
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			if !visible(px, py, x, y, vision) {
				continue
			}
			sx, sy, on := r.camera.WorldToScreen(x, y)
			if !on {
				continue
			}
			glyph := theme.Floor
			switch snap.Tiles[y][x] {
			case grid.TileWall:
				glyph = theme.Wall
			case grid.TileExit:
				glyph = theme.Exit
			}
			r.drawGlyph(sx, sy, glyph, tcell.StyleDefault)
		}
	}

	for _, f := range snap.Footprints {
		r.drawWorld(f.Pos.X, f.Pos.Y, px, py, vision, glyphFootprint, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
	for _, pr := range snap.Portals {
		r.drawWorld(pr.Pos.X, pr.Pos.Y, px, py, vision, glyphPortal, tcell.StyleDefault)
	}
	for _, sw := range snap.Lightswitches {
		if !sw.Activated {
			r.drawWorld(sw.Pos.X, sw.Pos.Y, px, py, vision, glyphLightswitch, tcell.StyleDefault)
		}
	}
	for _, it := range snap.Items {
		r.drawWorld(it.Pos.X, it.Pos.Y, px, py, vision, it.Glyph, tcell.StyleDefault)
	}
	for _, a := range snap.Afterimages {
		r.drawWorld(a.Pos.X, a.Pos.Y, px, py, vision, glyphAfterimage, tcell.StyleDefault.Foreground(tcell.ColorPurple))
	}
	for _, p := range snap.Projectiles {
		t := p.Pos.Tile()
		glyph := glyphProjectile
		if p.ShadowPulse {
			glyph = glyphPulse
		}
		r.drawWorld(t.X, t.Y, px, py, vision, glyph, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
	for _, e := range snap.Entities {
		t := e.Pos.Tile()
		r.drawWorld(t.X, t.Y, px, py, vision, e.Glyph, tcell.StyleDefault)
	}

	if sx, sy, on := r.camera.WorldToScreen(px, py); on {
		r.drawGlyph(sx, sy, glyphPlayer, tcell.StyleDefault)
	}
}

func (r *Renderer) drawWorld(wx, wy, px, py int, vision float64, glyph string, style tcell.Style) {
	if !visible(px, py, wx, wy, vision) {
		return
	}
	sx, sy, on := r.camera.WorldToScreen(wx, wy)
	if !on {
		return
	}
	r.drawGlyph(sx, sy, glyph, style)
}

// drawGlyph places a possibly double-width glyph at screen coordinates.
func (r *Renderer) drawGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var comb []rune
	if len(runes) > 1 {
		comb = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], comb, style)
	if runewidth.StringWidth(glyph) < 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

func visible(px, py, x, y int, radius float64) bool {
	dx := float64(x - px)
	dy := float64(y - py)
	return math.Sqrt(dx*dx+dy*dy) <= radius
}
