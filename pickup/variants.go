package pickup

import (
	"log"

	"github.com/milk9111/jumpy/economy"
	"github.com/milk9111/jumpy/shop"
)

// Life restores one health, or pays out its item's price when health is
// already full.
type Life struct {
	base
}

func NewLife(item *shop.Item) *Life {
	return &Life{base: newBase(item)}
}

func (l *Life) Type() string { return TypeCollectable }

func (l *Life) Obtain(ctx *ObtainContext) {
	flyOff(ctx)
	if ctx == nil || ctx.Player == nil {
		return
	}
	p := ctx.Player
	if p.Health() != economy.MaxHealth {
		p.SetHealth(p.Health() + 1)
		return
	}
	p.AddCoins(l.item.Price())
}

// Currency adds Value coins.
type Currency struct {
	base
	Value int
}

func NewCurrency(value int) *Currency {
	if value <= 0 {
		value = 1
	}
	return &Currency{base: newBase(nil), Value: value}
}

func (c *Currency) Type() string { return TypeCurrency }

func (c *Currency) Obtain(ctx *ObtainContext) {
	flyOff(ctx)
	if ctx == nil || ctx.Player == nil {
		return
	}
	ctx.Player.AddCoins(c.Value)
}

// PowerUp grants one charge of its item.
type PowerUp struct {
	base
}

func NewPowerUp(item *shop.Item) *PowerUp {
	return &PowerUp{base: newBase(item)}
}

func (pu *PowerUp) Type() string { return TypeCollectable }

func (pu *PowerUp) Obtain(ctx *ObtainContext) {
	flyOff(ctx)
	if ctx == nil || ctx.Player == nil {
		return
	}
	if pu.item == nil {
		log.Printf("PowerUp: no item bound, nothing granted")
		return
	}
	ctx.Player.Economy().Grant(pu.item.ID(), 1)
}

// Hazard damages the player.
type Hazard struct {
	base
	Damage int
}

func NewHazard(damage int) *Hazard {
	if damage <= 0 {
		damage = 1
	}
	return &Hazard{base: newBase(nil), Damage: damage}
}

func (h *Hazard) Type() string { return TypeObstacle }

func (h *Hazard) Obtain(ctx *ObtainContext) {
	flyOff(ctx)
	if ctx == nil || ctx.Player == nil {
		return
	}
	ctx.Player.Damage(h.Damage)
}
