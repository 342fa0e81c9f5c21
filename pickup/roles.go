// Package pickup defines what the player can touch: collectables that pay
// out once and hazards that hurt.
package pickup

import (
	"github.com/milk9111/jumpy/physics"
	"github.com/milk9111/jumpy/player"
	"github.com/milk9111/jumpy/shop"
)

const (
	TypeCollectable = "COLLECTABLE"
	TypeCurrency    = "CURRENCY"
	TypeObstacle    = "OBSTACLE"
)

// ObtainImpulseY is the upward impulse given to a collected pickup so it
// flies off the top of the screen.
const ObtainImpulseY = -45

type Collidable interface {
	Body() physics.BodyID
	SetBody(physics.BodyID)
}

type Collectable interface {
	Collidable
	Type() string
	ShopItem() *shop.Item
	Active() bool
	// Deactivate clears the active flag and reports whether it was set.
	Deactivate() bool
	Obtain(ctx *ObtainContext)
}

// ObtainContext is what an effect may touch when it fires.
type ObtainContext struct {
	Player  *player.Player
	Hide    func()
	Impulse func(x, y float64)
}

func (ctx *ObtainContext) hide() {
	if ctx != nil && ctx.Hide != nil {
		ctx.Hide()
	}
}

func (ctx *ObtainContext) impulse(x, y float64) {
	if ctx != nil && ctx.Impulse != nil {
		ctx.Impulse(x, y)
	}
}

// Collect deactivates c and runs its effect. It returns false without doing
// anything when c was already collected.
func Collect(c Collectable, ctx *ObtainContext) bool {
	if c == nil || !c.Deactivate() {
		return false
	}
	c.Obtain(ctx)
	return true
}

type base struct {
	body   physics.BodyID
	item   *shop.Item
	active bool
}

func newBase(item *shop.Item) base {
	return base{item: item, active: true}
}

func (b *base) Body() physics.BodyID { return b.body }
func (b *base) SetBody(id physics.BodyID) { b.body = id }
func (b *base) ShopItem() *shop.Item { return b.item }
func (b *base) SetShopItem(item *shop.Item) { b.item = item }
func (b *base) Active() bool { return b.active }

func (b *base) Deactivate() bool {
	if !b.active {
		return false
	}
	b.active = false
	return true
}

// flyOff hides the sprite and pops the body upward.
func flyOff(ctx *ObtainContext) {
	ctx.hide()
	ctx.impulse(0, ObtainImpulseY)
}
