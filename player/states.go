package player

// State is one of the player's motion states. States are singletons and
// compared by identity.
type State interface {
	Name() string
	TileIndex() int
	Terminal() bool
}

var (
	StateRising  State = &risingState{}
	StateFalling State = &fallingState{}
	StateDead    State = &deadState{}
)

type risingState struct{}

type fallingState struct{}

type deadState struct{}

func (risingState) Name() string { return "rising" }
func (risingState) TileIndex() int { return 0 }
func (risingState) Terminal() bool { return false }

func (fallingState) Name() string { return "falling" }
func (fallingState) TileIndex() int { return 1 }
func (fallingState) Terminal() bool { return false }

func (deadState) Name() string { return "dead" }
func (deadState) TileIndex() int { return 2 }
func (deadState) Terminal() bool { return true }

type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}
