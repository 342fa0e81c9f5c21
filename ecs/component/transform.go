package component

// Transform is the entity's centre position in world space, screen-down Y.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
