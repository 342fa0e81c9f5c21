package common

// World dimensions of the portrait play field, in world units.
const (
	WorldWidth  = 480
	WorldHeight = 800
)

const (
	// Gravity is applied along +Y (screen-down coordinates).
	Gravity = 0.5

	// StepDT is the fixed simulation step; one tick per update.
	StepDT = 1.0
)
