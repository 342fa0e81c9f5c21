package component

import "github.com/milk9111/jumpy/player"

type Player struct {
	State     *player.Player
	MoveSpeed float64
	JumpSpeed float64
}

var PlayerComponent = NewComponent[Player]()
