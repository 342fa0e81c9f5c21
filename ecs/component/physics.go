package component

import "github.com/milk9111/jumpy/physics"

// PhysicsBody stores collider configuration and, once the physics system has
// created it, the arena handle. A zero ID means the body is not created yet.
type PhysicsBody struct {
	ID            physics.BodyID
	Width         float64
	Height        float64
	Radius        float64
	Mass          float64
	Friction      float64
	Elasticity    float64
	Sensor        bool
	IgnoreGravity bool
	FixedRotation bool
	Layer         physics.Layer
	VelocityX     float64
	VelocityY     float64
}

// Def returns the body definition placed at (x, y).
func (pb *PhysicsBody) Def(x, y float64) physics.BodyDef {
	return physics.BodyDef{
		X:             x,
		Y:             y,
		VX:            pb.VelocityX,
		VY:            pb.VelocityY,
		Width:         pb.Width,
		Height:        pb.Height,
		Radius:        pb.Radius,
		Mass:          pb.Mass,
		Friction:      pb.Friction,
		Elasticity:    pb.Elasticity,
		Sensor:        pb.Sensor,
		IgnoreGravity: pb.IgnoreGravity,
		FixedRotation: pb.FixedRotation,
		Layer:         pb.Layer,
	}
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
