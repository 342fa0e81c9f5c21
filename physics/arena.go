package physics

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/jakecoffman/cp"
)

// Layer selects the Chipmunk collision type of a body's shape.
type Layer int

const (
	LayerScenery Layer = iota
	LayerPlayer
	LayerPickup
)

const (
	collisionTypeScenery cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypePickup
)

func (l Layer) collisionType() cp.CollisionType {
	switch l {
	case LayerPlayer:
		return collisionTypePlayer
	case LayerPickup:
		return collisionTypePickup
	default:
		return collisionTypeScenery
	}
}

// ParseLayer maps a prefab layer name to a Layer. Empty means scenery.
func ParseLayer(name string) (Layer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "scenery":
		return LayerScenery, nil
	case "player":
		return LayerPlayer, nil
	case "pickup":
		return LayerPickup, nil
	default:
		return LayerScenery, fmt.Errorf("physics: unknown layer %q", name)
	}
}

func (l Layer) String() string {
	switch l {
	case LayerPlayer:
		return "player"
	case LayerPickup:
		return "pickup"
	default:
		return "scenery"
	}
}

// BodyDef describes a body to create. Position is the body centre.
type BodyDef struct {
	X, Y          float64
	VX, VY        float64
	Width, Height float64
	Radius        float64
	Mass          float64
	Friction      float64
	Elasticity    float64
	Sensor        bool
	IgnoreGravity bool
	FixedRotation bool
	Layer         Layer
}

// Contact is a contact-begin notification between two bodies.
type Contact struct {
	A, B BodyID
}

type bodySlot struct {
	gen   uint32
	live  bool
	body  *cp.Body
	shape *cp.Shape
}

// Arena owns the Chipmunk space and hands out stable body handles.
type Arena struct {
	space         *cp.Space
	handlersReady bool

	slots  []bodySlot
	free   []uint32
	shapes map[*cp.Shape]BodyID

	contacts      []Contact
	pendingRemove []BodyID
	stepping      bool
}

// NewArena creates an arena with gravity along +Y.
func NewArena(gravity float64) *Arena {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	a := &Arena{
		space:  space,
		shapes: make(map[*cp.Shape]BodyID),
	}
	a.ensureHandlers()
	return a
}

func (a *Arena) ensureHandlers() {
	if a.handlersReady || a.space == nil {
		return
	}

	pickupHandler := a.space.NewCollisionHandler(collisionTypePlayer, collisionTypePickup)
	pickupHandler.UserData = a
	pickupHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		arena, ok := userData.(*Arena)
		if !ok || arena == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		idA, okA := arena.shapes[shapeA]
		idB, okB := arena.shapes[shapeB]
		if !okA || !okB {
			return true
		}
		arena.contacts = append(arena.contacts, Contact{A: idA, B: idB})
		return true
	}

	a.handlersReady = true
}

// Create adds a body built from def and returns its handle. Calls made while
// the space is stepping are refused and return the zero BodyID.
func (a *Arena) Create(def BodyDef) BodyID {
	if a == nil || a.space == nil {
		return 0
	}
	if a.stepping {
		log.Printf("Arena: Create refused during step")
		return 0
	}

	mass := def.Mass
	if mass <= 0 {
		mass = 1
	}
	width, height, radius := def.Width, def.Height, def.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width, height = 32, 32
	}

	var moment float64
	switch {
	case def.FixedRotation:
		moment = math.Inf(1)
	case radius > 0:
		moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
	default:
		moment = cp.MomentForBox(mass, width, height)
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: def.X, Y: def.Y})
	body.SetVelocity(def.VX, def.VY)
	if def.IgnoreGravity {
		body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
		})
	}

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(def.Friction)
	shape.SetElasticity(def.Elasticity)
	shape.SetSensor(def.Sensor)
	shape.SetCollisionType(def.Layer.collisionType())

	a.space.AddBody(body)
	a.space.AddShape(shape)

	id := a.allocate(body, shape)
	a.shapes[shape] = id
	return id
}

func (a *Arena) allocate(body *cp.Body, shape *cp.Shape) BodyID {
	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, bodySlot{gen: 1})
		index = uint32(len(a.slots))
	}
	slot := &a.slots[index-1]
	slot.live = true
	slot.body = body
	slot.shape = shape
	return makeBodyID(index, slot.gen)
}

func (a *Arena) slot(id BodyID) *bodySlot {
	if a == nil {
		return nil
	}
	index := id.Index()
	if index == 0 || int(index) > len(a.slots) {
		return nil
	}
	s := &a.slots[index-1]
	if !s.live || s.gen != id.Generation() {
		return nil
	}
	return s
}

// Valid reports whether id still refers to a live body.
func (a *Arena) Valid(id BodyID) bool {
	return a.slot(id) != nil
}

// Len reports the number of live bodies.
func (a *Arena) Len() int {
	if a == nil {
		return 0
	}
	return len(a.slots) - len(a.free)
}

func (a *Arena) Position(id BodyID) (cp.Vector, bool) {
	s := a.slot(id)
	if s == nil {
		return cp.Vector{}, false
	}
	return s.body.Position(), true
}

func (a *Arena) SetPosition(id BodyID, pos cp.Vector) bool {
	s := a.slot(id)
	if s == nil {
		return false
	}
	s.body.SetPosition(pos)
	return true
}

func (a *Arena) Velocity(id BodyID) (cp.Vector, bool) {
	s := a.slot(id)
	if s == nil {
		return cp.Vector{}, false
	}
	return s.body.Velocity(), true
}

// SetVelocity sets the linear velocity of a body. This is the impulse the
// game applies: a pickup popping away or the player jumping.
func (a *Arena) SetVelocity(id BodyID, vel cp.Vector) bool {
	s := a.slot(id)
	if s == nil {
		return false
	}
	s.body.SetVelocityVector(vel)
	return true
}

// ApplyImpulse adds an impulse at the body centre. A collected pickup's
// fly-off goes through here.
func (a *Arena) ApplyImpulse(id BodyID, impulse cp.Vector) bool {
	s := a.slot(id)
	if s == nil {
		return false
	}
	s.body.ApplyImpulseAtWorldPoint(impulse, s.body.Position())
	return true
}

// Detach stops a body reporting contacts and turns its shape into a sensor.
// The body keeps integrating until it is queued for removal.
func (a *Arena) Detach(id BodyID) bool {
	s := a.slot(id)
	if s == nil {
		return false
	}
	if s.shape != nil {
		delete(a.shapes, s.shape)
		s.shape.SetSensor(true)
	}
	return true
}

// Reporting tells whether contacts on id still reach DrainContacts.
func (a *Arena) Reporting(id BodyID) bool {
	s := a.slot(id)
	if s == nil || s.shape == nil {
		return false
	}
	_, ok := a.shapes[s.shape]
	return ok
}

// QueueRemove schedules a body for removal at the start of the next step.
// The body stops reporting contacts immediately.
func (a *Arena) QueueRemove(id BodyID) {
	s := a.slot(id)
	if s == nil {
		return
	}
	if s.shape != nil {
		delete(a.shapes, s.shape)
	}
	a.pendingRemove = append(a.pendingRemove, id)
}

func (a *Arena) flushRemovals() {
	for _, id := range a.pendingRemove {
		s := a.slot(id)
		if s == nil {
			continue
		}
		if s.shape != nil {
			a.space.RemoveShape(s.shape)
			delete(a.shapes, s.shape)
		}
		if s.body != nil {
			a.space.RemoveBody(s.body)
		}
		s.live = false
		s.body = nil
		s.shape = nil
		s.gen++
		a.free = append(a.free, id.Index())
	}
	a.pendingRemove = a.pendingRemove[:0]
}

// Step flushes deferred removals and advances the simulation. Contacts that
// began during the step are buffered until DrainContacts.
func (a *Arena) Step(dt float64) {
	if a == nil || a.space == nil {
		return
	}
	a.ensureHandlers()
	a.flushRemovals()

	a.stepping = true
	a.space.Step(dt)
	a.stepping = false
}

// DrainContacts returns the contacts buffered since the last drain in the
// order the engine reported them.
func (a *Arena) DrainContacts() []Contact {
	if a == nil || len(a.contacts) == 0 {
		return nil
	}
	out := a.contacts
	a.contacts = nil
	return out
}

// Reset removes every body and drops buffered contacts.
func (a *Arena) Reset() {
	if a == nil {
		return
	}
	for i := range a.slots {
		s := &a.slots[i]
		if s.live {
			a.pendingRemove = append(a.pendingRemove, makeBodyID(uint32(i+1), s.gen))
		}
	}
	a.flushRemovals()
	a.contacts = nil
}
