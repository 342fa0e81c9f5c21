package component

import "github.com/jakecoffman/cp"

// WorldBounds is a singleton holding the wrap rectangle. Bodies more than
// FallMargin past the bottom edge without a Wrap tag are out of the world.
type WorldBounds struct {
	Box        cp.BB
	FallMargin float64
}

var WorldBoundsComponent = NewComponent[WorldBounds]()
