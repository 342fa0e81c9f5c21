package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/jumpy/common"
	"github.com/milk9111/jumpy/economy"
	"github.com/milk9111/jumpy/ecs"
	"github.com/milk9111/jumpy/ecs/component"
	"github.com/milk9111/jumpy/ecs/system"
	"github.com/milk9111/jumpy/session"
	"golang.org/x/image/colornames"
)

const toastFrames = 120

var skyColor = color.RGBA{R: 0xd1, G: 0xf5, B: 0xf7, A: 0xff}

type Game struct {
	session *session.Session
	debug   bool

	shopOpen bool
	shop     *shopMenu

	toast       string
	toastFrames int
}

func NewGame(s *session.Session, debug bool) *Game {
	g := &Game{session: s, debug: debug}
	g.shop = newShopMenu(g)
	s.Economy().Subscribe(func(economy.Change) {
		g.shop.invalidate()
	})
	return g
}

func (g *Game) showToast(msg string) {
	g.toast = msg
	g.toastFrames = toastFrames
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.shopOpen = !g.shopOpen
		g.shop.invalidate()
	}
	if g.shopOpen {
		g.shop.current().Update()
	} else {
		g.readInput()
	}

	for _, ev := range g.session.Step() {
		switch ev.Type {
		case ecs.EventPlayerDied:
			g.showToast("You died. Press R to restart.")
		case ecs.EventPickupCollected:
			if g.debug {
				log.Printf("Game: collected %+v", ev.Data)
			}
		}
	}
	if g.toastFrames > 0 {
		g.toastFrames--
	}
	return nil
}

func (g *Game) readInput() {
	moveX := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		moveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		moveX++
	}
	jump := inpututil.IsKeyJustPressed(ebiten.KeySpace)
	super := inpututil.IsKeyJustPressed(ebiten.KeyS)
	g.session.SetInput(moveX, jump, super)

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Post(func(s *session.Session) {
			if err := s.Restart(); err != nil {
				log.Printf("Game: restart: %v", err)
			}
		})
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)

	w := g.session.World()
	ecs.ForEach2(w, component.SpriteComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, sprite *component.Sprite, t *component.Transform) {
		if !sprite.Visible {
			return
		}
		drawSprite(screen, sprite, t)
	})

	econ := g.session.Economy()
	hud := fmt.Sprintf("Health: %d/%d  Coins: %d  Super jumps: %d", econ.Health(), economy.MaxHealth, econ.Coins(), econ.Owned(system.SuperJumpItem))
	ebitenutil.DebugPrint(screen, hud)
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frame: %d  FPS: %.2f  State: %s", g.session.Frame(), ebiten.ActualFPS(), g.session.Player().State().Name()), 0, 16)
	}
	if g.toastFrames > 0 {
		ebitenutil.DebugPrintAt(screen, g.toast, 8, common.WorldHeight-24)
	}

	if g.shopOpen {
		g.shop.current().Draw(screen)
	}
}

// drawSprite fills the sprite's box. Tile 1 (falling) is drawn darker and
// tile 2 (dead) grey; a flipped sprite gets a marker on its left edge.
func drawSprite(screen *ebiten.Image, sprite *component.Sprite, t *component.Transform) {
	clr, ok := colornames.Map[sprite.Color]
	if !ok {
		clr = colornames.Magenta
	}
	switch sprite.TileIndex {
	case 1:
		clr = color.RGBA{R: clr.R / 4 * 3, G: clr.G / 4 * 3, B: clr.B / 4 * 3, A: clr.A}
	case 2:
		clr = colornames.Gray
	}

	x := float32(t.X - sprite.Width/2)
	y := float32(t.Y - sprite.Height/2)
	vector.FillRect(screen, x, y, float32(sprite.Width), float32(sprite.Height), clr, false)

	marker := x + float32(sprite.Width) - 4
	if sprite.FlipH {
		marker = x
	}
	vector.FillRect(screen, marker, y, 4, 4, colornames.Black, false)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.WorldWidth, common.WorldHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
