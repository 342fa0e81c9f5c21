package component

// Input is the player's intent for the next step. The control system clears
// the one-shot flags after reading them.
type Input struct {
	MoveX     float64
	Jump      bool
	SuperJump bool
}

var InputComponent = NewComponent[Input]()
