package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/jumpy/common"
	"github.com/milk9111/jumpy/economy"
	"golang.org/x/image/font/basicfont"
)

var (
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	muted = color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
)

// shopMenu is the in-game shop overlay. Economy and catalogue changes only
// mark it stale; the widget tree is rebuilt the next time it is shown.
type shopMenu struct {
	game    *Game
	ui      *ebitenui.UI
	stale   bool
	message string
}

func newShopMenu(g *Game) *shopMenu {
	return &shopMenu{game: g, stale: true}
}

func (m *shopMenu) invalidate() {
	m.stale = true
}

// current returns the widget tree, rebuilding it when stale.
func (m *shopMenu) current() *ebitenui.UI {
	if m.ui == nil || m.stale {
		m.ui = m.build()
		m.stale = false
	}
	return m.ui
}

func (m *shopMenu) setMessage(msg string) {
	m.message = msg
	m.invalidate()
}

func (m *shopMenu) build() *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	s := m.game.session
	econ := s.Economy()

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.WorldWidth*3/4, common.WorldHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Shop", &face, white),
		widget.TextOpts.WidgetOpts(center),
	))
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(fmt.Sprintf("Coins: %d  Health: %d/%d", econ.Coins(), econ.Health(), economy.MaxHealth), &face, muted),
		widget.TextOpts.WidgetOpts(center),
	))

	for _, item := range s.Catalogue().Items() {
		id := item.ID()
		label := fmt.Sprintf("%s (%d) x%d", item.Name(), item.Price(), econ.Owned(id))
		row := widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			)),
			widget.ContainerOpts.WidgetOpts(center),
		)
		row.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressed}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				m.buy(id)
			}),
		))
		row.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressed}),
			widget.ButtonOpts.Text("Sell", &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				m.sell(id)
			}),
		))
		panel.AddChild(row)
	}

	if m.message != "" {
		panel.AddChild(widget.NewText(
			widget.TextOpts.Text(m.message, &face, white),
			widget.TextOpts.WidgetOpts(center),
		))
	}

	panel.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressed}),
		widget.ButtonOpts.Text("Close", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			m.game.shopOpen = false
		}),
	))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

// buy posts the purchase; the reply runs on the next Step, outside the
// ebitenui update that fired the click.
func (m *shopMenu) buy(id string) {
	m.game.session.RequestPurchase(id, func(res economy.Result) {
		m.setMessage(purchaseMessage(id, res))
	})
}

func (m *shopMenu) sell(id string) {
	m.game.session.RequestSell(id, func(res economy.Result) {
		m.setMessage(purchaseMessage(id, res))
	})
}

func purchaseMessage(id string, res economy.Result) string {
	if res.Message != "" {
		return res.Message
	}
	return fmt.Sprintf("%s: %s", id, res.Reason)
}
