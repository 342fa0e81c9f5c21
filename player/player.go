// Package player holds the player's motion state machine. Health and coins
// live in the economy the player is bound to.
package player

import (
	"log"

	"github.com/milk9111/jumpy/economy"
)

type Player struct {
	econ   *economy.Economy
	state  State
	facing Facing
	alive  bool

	onDeath []func()
}

// New returns a rising, right-facing, alive player bound to econ. A nil econ
// gets a fresh economy at full health.
func New(econ *economy.Economy) *Player {
	if econ == nil {
		econ = economy.New(0, economy.MaxHealth)
	}
	p := &Player{econ: econ}
	p.Reset()
	return p
}

// Reset restores the initial state for a restart. The economy is untouched.
func (p *Player) Reset() {
	p.state = StateRising
	p.facing = FacingRight
	p.alive = true
}

func (p *Player) Economy() *economy.Economy { return p.econ }

func (p *Player) Health() int { return p.econ.Health() }

func (p *Player) Coins() int { return p.econ.Coins() }

func (p *Player) Alive() bool { return p.alive }

func (p *Player) State() State { return p.state }

func (p *Player) Facing() Facing { return p.facing }

func (p *Player) TileIndex() int { return p.state.TileIndex() }

func (p *Player) FlippedHorizontal() bool { return p.facing == FacingLeft }

func (p *Player) SetRising() {
	if !p.alive {
		return
	}
	p.state = StateRising
}

func (p *Player) SetFalling() {
	if !p.alive {
		return
	}
	p.state = StateFalling
}

// Die kills the player for the rest of the session. It reports whether this
// call caused the death.
func (p *Player) Die() bool {
	if !p.alive {
		return false
	}
	p.alive = false
	p.state = StateDead
	log.Printf("Player: died with %d coins", p.econ.Coins())
	for _, fn := range p.onDeath {
		fn()
	}
	return true
}

// OnDeath registers fn to run once when the player dies.
func (p *Player) OnDeath(fn func()) {
	if fn != nil {
		p.onDeath = append(p.onDeath, fn)
	}
}

func (p *Player) TurnLeft() { p.facing = FacingLeft }

func (p *Player) TurnRight() { p.facing = FacingRight }

func (p *Player) SetHealth(h int) { p.econ.SetHealth(h) }

func (p *Player) AddCoins(n int) { p.econ.AddCoins(n) }

// Damage removes n health and kills the player at zero.
func (p *Player) Damage(n int) {
	if n <= 0 || !p.alive {
		return
	}
	if p.econ.Damage(n) == 0 {
		p.Die()
	}
}
