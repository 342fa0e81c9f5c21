package system

import (
	"github.com/milk9111/jumpy/ecs"
	"github.com/milk9111/jumpy/ecs/component"
)

// MotionSystem switches the player between rising and falling from the sign
// of its vertical velocity. Negative vy is upward on screen.
type MotionSystem struct {
	physics *PhysicsSystem
}

func NewMotionSystem(ps *PhysicsSystem) *MotionSystem {
	return &MotionSystem{physics: ps}
}

func (s *MotionSystem) Update(w *ecs.World) {
	if s == nil || s.physics == nil || w == nil {
		return
	}
	arena := s.physics.Arena()
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, pc *component.Player, pb *component.PhysicsBody) {
		if pc.State == nil || !pc.State.Alive() {
			return
		}
		vel, ok := arena.Velocity(pb.ID)
		if !ok {
			return
		}
		switch {
		case vel.Y < 0:
			pc.State.SetRising()
		case vel.Y > 0:
			pc.State.SetFalling()
		}
	})
}

// FallDeathSystem kills a player that dropped past the bottom of the world.
// Wrap-tagged players never leave the bounds.
type FallDeathSystem struct{}

func NewFallDeathSystem() *FallDeathSystem { return &FallDeathSystem{} }

func (s *FallDeathSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	bounds, ok := worldBounds(w)
	if !ok {
		return
	}
	limit := bounds.Box.T + bounds.FallMargin
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pc *component.Player, t *component.Transform) {
		if pc.State == nil || ecs.Has(w, e, component.WrapComponent.Kind()) {
			return
		}
		if t.Y > limit {
			pc.State.Die()
		}
	})
}
