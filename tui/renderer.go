// Package tui draws a session onto a tcell screen for the headless
// simulator.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/milk9111/jumpy/economy"
	"github.com/milk9111/jumpy/ecs"
	"github.com/milk9111/jumpy/ecs/component"
	"github.com/milk9111/jumpy/ecs/system"
	"github.com/milk9111/jumpy/session"
)

// hudRows are reserved at the bottom of the screen.
const hudRows = 2

type Renderer struct {
	screen  tcell.Screen
	message string
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// SetMessage sets the toast line shown under the HUD.
func (r *Renderer) SetMessage(msg string) { r.message = msg }

// Draw renders every visible sprite scaled to the screen, then the HUD.
func (r *Renderer) Draw(s *session.Session) {
	r.screen.Clear()
	cols, rows := r.screen.Size()
	viewRows := rows - hudRows
	if cols <= 0 || viewRows <= 0 {
		r.screen.Show()
		return
	}

	bounds := s.Bounds()
	w := s.World()
	var (
		playerCell     [2]int
		playerOnScreen bool
	)
	ecs.ForEach2(w, component.SpriteComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sprite *component.Sprite, t *component.Transform) {
		if !sprite.Visible {
			return
		}
		x := int((t.X - bounds.L) / (bounds.R - bounds.L) * float64(cols))
		y := int((t.Y - bounds.B) / (bounds.T - bounds.B) * float64(viewRows))
		if x < 0 || x >= cols || y < 0 || y >= viewRows {
			return
		}
		if e == s.PlayerEntity() {
			playerCell = [2]int{x, y}
			playerOnScreen = true
			return
		}
		r.screen.SetContent(x, y, sprite.Glyph, nil, spriteStyle(sprite))
	})

	// drawn last so pickups never hide the player
	if sprite, ok := ecs.Get(w, s.PlayerEntity(), component.SpriteComponent.Kind()); ok && playerOnScreen {
		r.screen.SetContent(playerCell[0], playerCell[1], playerGlyph(s, sprite), nil, spriteStyle(sprite))
	}

	r.drawHUD(s, viewRows, cols)
	r.screen.Show()
}

func (r *Renderer) drawHUD(s *session.Session, top, cols int) {
	econ := s.Economy()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	for x := 0; x < cols; x++ {
		r.screen.SetContent(x, top, ' ', nil, style)
	}
	r.drawText(0, top, cols, HUDLine(econ, s.Player().State().Name()), style)
	if r.message != "" {
		r.drawText(0, top+1, cols, r.message, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
}

// HUDLine formats the balance shown in the status bar.
func HUDLine(econ *economy.Economy, state string) string {
	hearts := strings.Repeat("♥", econ.Health()) + strings.Repeat("♡", economy.MaxHealth-econ.Health())
	return fmt.Sprintf(" %s  coins %d  super jumps %d  %s", hearts, econ.Coins(), econ.Owned(system.SuperJumpItem), state)
}

// drawText writes text from x, stopping before maxX. Wide runes take two
// cells.
func (r *Renderer) drawText(x, y, maxX int, text string, style tcell.Style) int {
	for _, ch := range text {
		cw := runewidth.RuneWidth(ch)
		if cw == 0 {
			continue
		}
		if x+cw > maxX {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x += cw
	}
	return x
}

func playerGlyph(s *session.Session, sprite *component.Sprite) rune {
	if !s.Player().Alive() {
		return 'X'
	}
	if sprite.FlipH {
		return '<'
	}
	return sprite.Glyph
}

func spriteStyle(sprite *component.Sprite) tcell.Style {
	style := tcell.StyleDefault
	if sprite.Color == "" {
		return style
	}
	if c := tcell.GetColor(sprite.Color); c != tcell.ColorDefault {
		style = style.Foreground(c)
	}
	return style
}
