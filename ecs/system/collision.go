package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/jumpy/ecs"
	"github.com/milk9111/jumpy/ecs/component"
	"github.com/milk9111/jumpy/pickup"
)

const defaultPickupTTLFrames = 30

// CollectedEvent is the payload of ecs.EventPickupCollected.
type CollectedEvent struct {
	Entity ecs.Entity
	Type   string
	Item   string
	Coins  int
	Health int
}

// CollisionSystem resolves the contacts of the last physics step. A pickup
// touched by the player fires its effect once, loses its body and is torn
// down after TTLFrames. The body flies off until the teardown.
type CollisionSystem struct {
	physics   *PhysicsSystem
	TTLFrames int
	Debug     bool
}

func NewCollisionSystem(ps *PhysicsSystem, ttlFrames int) *CollisionSystem {
	if ttlFrames <= 0 {
		ttlFrames = defaultPickupTTLFrames
	}
	return &CollisionSystem{physics: ps, TTLFrames: ttlFrames}
}

func (s *CollisionSystem) Update(w *ecs.World) {
	if s == nil || s.physics == nil || w == nil {
		return
	}

	owners := s.physics.Owners()
	for _, c := range s.physics.Arena().DrainContacts() {
		a, okA := owners.Owner(c.A)
		b, okB := owners.Owner(c.B)
		if !okA || !okB {
			if s.Debug {
				log.Printf("Collision: contact %v/%v has no owner", c.A, c.B)
			}
			continue
		}
		s.resolve(w, a, b)
	}
}

func (s *CollisionSystem) resolve(w *ecs.World, a, b ecs.Entity) {
	playerEnt, other, ok := splitPlayer(w, a, b)
	if !ok {
		return
	}
	pc, ok := ecs.Get(w, playerEnt, component.PlayerComponent.Kind())
	if !ok || pc.State == nil || !pc.State.Alive() {
		return
	}
	pk, ok := ecs.Get(w, other, component.PickupComponent.Kind())
	if !ok || pk.Collectable == nil {
		return
	}

	c := pk.Collectable
	body := c.Body()
	arena := s.physics.Arena()
	ctx := &pickup.ObtainContext{
		Player: pc.State,
		Hide: func() {
			if sprite, ok := ecs.Get(w, other, component.SpriteComponent.Kind()); ok {
				sprite.Visible = false
			}
		},
		Impulse: func(x, y float64) {
			arena.ApplyImpulse(body, cp.Vector{X: x, Y: y})
		},
	}
	if !pickup.Collect(c, ctx) {
		return
	}

	s.physics.Detach(other)
	ecs.Remove(w, other, component.WrapComponent.Kind())
	_ = ecs.Add(w, other, component.TTLComponent.Kind(), &component.TTL{Frames: s.TTLFrames})

	w.Events().Push(ecs.Event{
		Type: ecs.EventPickupCollected,
		Data: CollectedEvent{
			Entity: other,
			Type:   c.Type(),
			Item:   c.ShopItem().ID(),
			Coins:  pc.State.Coins(),
			Health: pc.State.Health(),
		},
	})
}

// splitPlayer returns the player entity and the other side when exactly one
// of a and b is the player.
func splitPlayer(w *ecs.World, a, b ecs.Entity) (ecs.Entity, ecs.Entity, bool) {
	aIsPlayer := ecs.Has(w, a, component.PlayerComponent.Kind())
	bIsPlayer := ecs.Has(w, b, component.PlayerComponent.Kind())
	switch {
	case aIsPlayer && !bIsPlayer:
		return a, b, true
	case bIsPlayer && !aIsPlayer:
		return b, a, true
	default:
		return 0, 0, false
	}
}

