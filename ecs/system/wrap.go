package system

import (
	"github.com/milk9111/jumpy/ecs"
	"github.com/milk9111/jumpy/ecs/component"
	"github.com/milk9111/jumpy/physics"
)

// WrapSystem moves Wrap-tagged bodies that left the world bounds to the
// opposite edge. Velocity is untouched.
type WrapSystem struct {
	physics *PhysicsSystem
}

func NewWrapSystem(ps *PhysicsSystem) *WrapSystem {
	return &WrapSystem{physics: ps}
}

func (s *WrapSystem) Update(w *ecs.World) {
	if s == nil || s.physics == nil || w == nil {
		return
	}
	bounds, ok := worldBounds(w)
	if !ok {
		return
	}
	arena := s.physics.Arena()

	ecs.ForEach2(w, component.WrapComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, _ *component.Wrap, pb *component.PhysicsBody) {
		pos, ok := arena.Position(pb.ID)
		if !ok {
			return
		}
		wrapped, changed := physics.Wrap(pos, bounds.Box)
		if !changed {
			return
		}
		arena.SetPosition(pb.ID, wrapped)
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.X = wrapped.X
			t.Y = wrapped.Y
		}
	})
}

func worldBounds(w *ecs.World) (*component.WorldBounds, bool) {
	e, ok := ecs.First(w, component.WorldBoundsComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.WorldBoundsComponent.Kind())
}
