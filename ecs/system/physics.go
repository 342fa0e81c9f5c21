package system

import (
	"log"

	"github.com/milk9111/jumpy/common"
	"github.com/milk9111/jumpy/ecs"
	"github.com/milk9111/jumpy/ecs/component"
	"github.com/milk9111/jumpy/physics"
)

// PhysicsSystem creates arena bodies for new PhysicsBody components, releases
// bodies of destroyed entities, steps the arena and copies positions back to
// transforms.
type PhysicsSystem struct {
	arena  *physics.Arena
	owners *physics.Owners[ecs.Entity]
	dt     float64

	entities map[ecs.Entity]physics.BodyID
}

func NewPhysicsSystem(gravity, dt float64) *PhysicsSystem {
	if dt <= 0 {
		dt = common.StepDT
	}
	return &PhysicsSystem{
		arena:    physics.NewArena(gravity),
		owners:   physics.NewOwners[ecs.Entity](),
		dt:       dt,
		entities: make(map[ecs.Entity]physics.BodyID),
	}
}

func (ps *PhysicsSystem) Arena() *physics.Arena { return ps.arena }

func (ps *PhysicsSystem) Owners() *physics.Owners[ecs.Entity] { return ps.owners }

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.releaseStale(w)
	ps.syncEntities(w)

	ps.arena.Step(ps.dt)

	ps.syncTransforms(w)
}

// Detach keeps e's body in the space, so it goes on moving, but drops its
// owner mapping and its contacts. The body is removed once e is destroyed.
func (ps *PhysicsSystem) Detach(e ecs.Entity) {
	if ps == nil {
		return
	}
	id, ok := ps.entities[e]
	if !ok {
		return
	}
	ps.arena.Detach(id)
	ps.owners.Unbind(id)
}

// Reset drops every body and owner mapping.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	ps.arena.Reset()
	ps.owners.Clear()
	ps.entities = make(map[ecs.Entity]physics.BodyID)
}

func (ps *PhysicsSystem) releaseStale(w *ecs.World) {
	for e, id := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.arena.QueueRemove(id)
		ps.owners.Unbind(id)
		delete(ps.entities, e)
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.ID.Valid() && ps.arena.Valid(pb.ID) {
			return
		}
		id := ps.arena.Create(pb.Def(t.X, t.Y))
		if !id.Valid() {
			log.Printf("Physics: could not create body for %v", e)
			return
		}
		pb.ID = id
		ps.owners.Bind(id, e)
		ps.entities[e] = id
		if pk, ok := ecs.Get(w, e, component.PickupComponent.Kind()); ok && pk.Collectable != nil {
			pk.Collectable.SetBody(id)
		}
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		pos, ok := ps.arena.Position(pb.ID)
		if !ok {
			return
		}
		t.X = pos.X
		t.Y = pos.Y
	})
}
