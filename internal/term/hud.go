package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"mazecrawl/internal/engine"
)

// hudRows is the screen space reserved below the viewport.
const hudRows = 5

// DrawHUD renders the status bar, loadout line, and message log at the
// bottom of the screen.
func (r *Renderer) DrawHUD(snap engine.Snapshot, messages []string) {
	_, screenH := r.screen.Size()
	hudY := screenH - hudRows

	r.drawHLine(hudY, tcell.ColorGray)

	sector := ""
	switch {
	case snap.IsBoss:
		sector = "  [BOSS]"
	case snap.IsShop:
		sector = "  [SHOP]"
	}
	timer := ""
	if snap.TimeLeft > 0 {
		timer = fmt.Sprintf("  ⏱ %d", int(snap.TimeLeft.Seconds()))
	}
	status := fmt.Sprintf("HP: %d/%d  🪙 %d  ATK:%d DEF:%d  Depth: %d%s%s",
		snap.Player.HP, snap.Player.MaxHP, snap.Player.Coins,
		snap.Player.Damage, snap.Player.Defense, snap.Level, sector, timer)
	r.drawText(0, hudY+1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	gear := []string{}
	for _, s := range []string{snap.Player.Weapon, snap.Player.Armor, snap.Player.Utility} {
		if s != "" {
			gear = append(gear, s)
		}
	}
	gearLine := "unarmed"
	if len(gear) > 0 {
		gearLine = strings.Join(gear, "  ")
	}
	r.drawText(0, hudY+2, gearLine, tcell.StyleDefault.Foreground(tcell.ColorLightCyan))

	if len(snap.Bonus) == 2 {
		prompt := fmt.Sprintf("Level clear! [1] %s  [2] %s  [f] forgo", snap.Bonus[0], snap.Bonus[1])
		r.drawText(0, hudY+3, prompt, tcell.StyleDefault.Foreground(tcell.ColorGreen))
	} else if len(messages) > 0 {
		r.drawText(0, hudY+3, messages[len(messages)-1], tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
	if len(messages) > 1 {
		r.drawText(0, hudY+4, messages[len(messages)-2], tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}

	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col++
	}
}
