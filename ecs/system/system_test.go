package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/jumpy/economy"
	"github.com/milk9111/jumpy/ecs"
	"github.com/milk9111/jumpy/ecs/component"
	"github.com/milk9111/jumpy/physics"
	"github.com/milk9111/jumpy/pickup"
	"github.com/milk9111/jumpy/player"
	"github.com/milk9111/jumpy/shop"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func newTestWorld(t *testing.T) (*ecs.World, *PhysicsSystem) {
	t.Helper()
	w := ecs.NewWorld()
	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.WorldBoundsComponent.Kind(), &component.WorldBounds{
		Box:        physics.Bounds(480, 800),
		FallMargin: 64,
	}); err != nil {
		t.Fatalf("bounds: %v", err)
	}
	return w, NewPhysicsSystem(0, 1)
}

func addTestPlayer(t *testing.T, w *ecs.World, p *player.Player, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	must(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	must(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width: 20, Height: 20, FixedRotation: true, IgnoreGravity: true, Layer: physics.LayerPlayer,
	}))
	must(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{State: p, MoveSpeed: 4, JumpSpeed: 10}))
	must(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	must(t, ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Visible: true}))
	return e
}

func addTestPickup(t *testing.T, w *ecs.World, c pickup.Collectable, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	must(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	must(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius: 10, Sensor: true, IgnoreGravity: true, Layer: physics.LayerPickup,
	}))
	must(t, ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Collectable: c}))
	must(t, ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Visible: true}))
	return e
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestCollisionCollectsLife(t *testing.T) {
	w, ps := newTestWorld(t)
	cs := NewCollisionSystem(ps, 3)

	p := player.New(economy.New(0, 2))
	addTestPlayer(t, w, p, 100, 100)
	life := pickup.NewLife(shop.NewItem("life", "Life", 10, nil))
	pe := addTestPickup(t, w, life, 100, 100)

	ps.Update(w)
	if !life.Body().Valid() {
		t.Fatalf("physics should bind the pickup body")
	}
	body := life.Body()
	cs.Update(w)

	if p.Health() != 3 || p.Coins() != 0 || life.Active() {
		t.Fatalf("health=%d coins=%d active=%v", p.Health(), p.Coins(), life.Active())
	}
	sprite, _ := ecs.Get(w, pe, component.SpriteComponent.Kind())
	if sprite.Visible {
		t.Fatalf("collected pickup should be hidden")
	}
	if ttl, ok := ecs.Get(w, pe, component.TTLComponent.Kind()); !ok || ttl.Frames != 3 {
		t.Fatalf("expected TTL of 3 frames, got %+v ok=%v", ttl, ok)
	}
	if _, ok := ps.Owners().Owner(body); ok {
		t.Fatalf("owner mapping should be dropped")
	}
	if ps.Arena().Reporting(body) {
		t.Fatalf("collected pickup must stop reporting contacts")
	}
	if v, ok := ps.Arena().Velocity(body); !ok || !approx(v.Y, pickup.ObtainImpulseY) {
		t.Fatalf("expected fly-off velocity, got %v ok=%v", v, ok)
	}

	events := w.Events().Drain()
	if len(events) != 1 || events[0].Type != ecs.EventPickupCollected {
		t.Fatalf("unexpected events %v", events)
	}
	if ev, ok := events[0].Data.(CollectedEvent); !ok || ev.Item != "life" || ev.Health != 3 {
		t.Fatalf("unexpected payload %+v", events[0].Data)
	}

	ps.Update(w)
	cs.Update(w)
	if p.Health() != 3 || w.Events().Len() != 0 {
		t.Fatalf("second round must not re-apply")
	}
}

func TestCollectedPickupFliesOffUntilTeardown(t *testing.T) {
	w, ps := newTestWorld(t)
	cs := NewCollisionSystem(ps, 5)
	ttl := NewTTLSystem()

	p := player.New(economy.New(0, 3))
	addTestPlayer(t, w, p, 100, 100)
	life := pickup.NewLife(shop.NewItem("life", "Life", 10, nil))
	pe := addTestPickup(t, w, life, 100, 100)
	must(t, ecs.Add(w, pe, component.WrapComponent.Kind(), &component.Wrap{}))

	ps.Update(w)
	cs.Update(w)
	body := life.Body()
	if life.Active() || p.Coins() != 10 {
		t.Fatalf("pickup should be collected, coins=%d", p.Coins())
	}
	if ecs.Has(w, pe, component.WrapComponent.Kind()) {
		t.Fatalf("a flying pickup must not wrap back into the world")
	}

	tr, _ := ecs.Get(w, pe, component.TransformComponent.Kind())
	lastY := tr.Y
	for i := 0; i < 4; i++ {
		ps.Update(w)
		cs.Update(w)
		ttl.Update(w)
		if !ecs.IsAlive(w, pe) {
			t.Fatalf("pickup torn down early at step %d", i)
		}
		if tr.Y >= lastY {
			t.Fatalf("step %d: y=%v did not move up from %v", i, tr.Y, lastY)
		}
		lastY = tr.Y
		if !ps.Arena().Valid(body) {
			t.Fatalf("body removed before teardown at step %d", i)
		}
	}
	if p.Coins() != 10 || p.Health() != 3 {
		t.Fatalf("fly-off re-applied the effect: coins=%d health=%d", p.Coins(), p.Health())
	}

	ttl.Update(w)
	if ecs.IsAlive(w, pe) {
		t.Fatalf("pickup should be torn down after its TTL")
	}
	ps.Update(w)
	if ps.Arena().Valid(body) {
		t.Fatalf("body should be removed once the entity is gone")
	}
}

func TestCollisionIgnoresDeadPlayer(t *testing.T) {
	w, ps := newTestWorld(t)
	cs := NewCollisionSystem(ps, 0)

	p := player.New(economy.New(4, 2))
	p.Die()
	addTestPlayer(t, w, p, 100, 100)
	coin := pickup.NewCurrency(1)
	addTestPickup(t, w, coin, 100, 100)

	ps.Update(w)
	cs.Update(w)
	if p.Coins() != 4 || !coin.Active() || w.Events().Len() != 0 {
		t.Fatalf("dead player collected: coins=%d active=%v", p.Coins(), coin.Active())
	}
}

func TestCollisionFullHealthPaysOut(t *testing.T) {
	w, ps := newTestWorld(t)
	cs := NewCollisionSystem(ps, 0)

	p := player.New(economy.New(0, 3))
	addTestPlayer(t, w, p, 200, 200)
	life := pickup.NewLife(shop.NewItem("life", "Life", 10, nil))
	addTestPickup(t, w, life, 200, 200)

	ps.Update(w)
	cs.Update(w)
	if p.Health() != 3 || p.Coins() != 10 || life.Active() {
		t.Fatalf("health=%d coins=%d active=%v", p.Health(), p.Coins(), life.Active())
	}
}

func TestCollisionDuplicateContacts(t *testing.T) {
	w, ps := newTestWorld(t)
	cs := NewCollisionSystem(ps, 0)

	p := player.New(economy.New(0, 3))
	pl := addTestPlayer(t, w, p, 50, 50)
	coin := pickup.NewCurrency(1)
	pe := addTestPickup(t, w, coin, 300, 300)
	ps.Update(w)

	for i := 0; i < 4; i++ {
		cs.resolve(w, pl, pe)
		cs.resolve(w, pe, pl)
	}
	if p.Coins() != 1 {
		t.Fatalf("duplicate contacts paid %d coins", p.Coins())
	}
	if n := w.Events().Len(); n != 1 {
		t.Fatalf("expected one collected event, got %d", n)
	}
}

func TestCollisionIgnoresUnrelatedPairs(t *testing.T) {
	w, ps := newTestWorld(t)
	cs := NewCollisionSystem(ps, 0)
	cs.Debug = true

	p := player.New(economy.New(0, 3))
	pl := addTestPlayer(t, w, p, 100, 100)
	other := addTestPlayer(t, w, player.New(nil), 100, 100)
	coinA := pickup.NewCurrency(1)
	a := addTestPickup(t, w, coinA, 300, 300)
	coinB := pickup.NewCurrency(1)
	b := addTestPickup(t, w, coinB, 300, 300)

	t.Run("both_players", func(t *testing.T) {
		cs.resolve(w, pl, other)
	})
	t.Run("neither_player", func(t *testing.T) {
		cs.resolve(w, a, b)
	})
	t.Run("inactive_pickup", func(t *testing.T) {
		coinA.Deactivate()
		cs.resolve(w, pl, a)
	})
	t.Run("destroyed_side", func(t *testing.T) {
		ecs.DestroyEntity(w, b)
		cs.resolve(w, pl, b)
	})

	if p.Coins() != 0 || !coinB.Active() || w.Events().Len() != 0 {
		t.Fatalf("unrelated pairs had an effect: coins=%d", p.Coins())
	}
}

func TestCollisionMissingOwnerIgnored(t *testing.T) {
	w, ps := newTestWorld(t)
	cs := NewCollisionSystem(ps, 0)

	p := player.New(economy.New(0, 3))
	addTestPlayer(t, w, p, 100, 100)
	coin := pickup.NewCurrency(1)
	addTestPickup(t, w, coin, 100, 100)

	ps.Update(w)
	ps.Owners().Unbind(coin.Body())
	cs.Update(w)

	if p.Coins() != 0 || !coin.Active() {
		t.Fatalf("contact without an owner must be ignored")
	}
}

func TestWrapSystemKeepsVelocity(t *testing.T) {
	w, ps := newTestWorld(t)
	wrap := NewWrapSystem(ps)

	e := ecs.CreateEntity(w)
	must(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 479, Y: 400}))
	must(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width: 4, Height: 4, Sensor: true, IgnoreGravity: true, VelocityX: 2,
	}))
	must(t, ecs.Add(w, e, component.WrapComponent.Kind(), &component.Wrap{}))

	ps.Update(w)
	wrap.Update(w)

	pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	pos, _ := ps.Arena().Position(pb.ID)
	vel, _ := ps.Arena().Velocity(pb.ID)
	if !approx(pos.X, 1) || !approx(pos.Y, 400) {
		t.Fatalf("expected wrap to x=1, got %v", pos)
	}
	if !approx(vel.X, 2) || !approx(vel.Y, 0) {
		t.Fatalf("wrap changed velocity: %v", vel)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if !approx(tr.X, 1) {
		t.Fatalf("transform not updated: %+v", tr)
	}
}

func TestMotionAndSpriteSync(t *testing.T) {
	w, ps := newTestWorld(t)
	motion := NewMotionSystem(ps)
	sync := NewSpriteSyncSystem()

	p := player.New(nil)
	e := addTestPlayer(t, w, p, 240, 400)
	ps.Update(w)
	pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())

	cases := []struct {
		vy   float64
		want player.State
	}{
		{5, player.StateFalling},
		{0, player.StateFalling},
		{-5, player.StateRising},
	}
	for _, c := range cases {
		ps.Arena().SetVelocity(pb.ID, cp.Vector{Y: c.vy})
		motion.Update(w)
		if p.State() != c.want {
			t.Fatalf("vy=%v: state %s, want %s", c.vy, p.State().Name(), c.want.Name())
		}
	}

	p.TurnLeft()
	p.Die()
	motion.Update(w)
	sync.Update(w)
	sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
	if sprite.TileIndex != 2 || !sprite.FlipH || p.State() != player.StateDead {
		t.Fatalf("unexpected sprite %+v state=%s", sprite, p.State().Name())
	}
}

func TestFallDeath(t *testing.T) {
	w, _ := newTestWorld(t)
	fall := NewFallDeathSystem()

	p := player.New(nil)
	e := addTestPlayer(t, w, p, 240, 850)
	fall.Update(w)
	if !p.Alive() {
		t.Fatalf("player inside the margin should survive")
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	tr.Y = 900
	fall.Update(w)
	if p.Alive() {
		t.Fatalf("player below the margin should die")
	}
}

func TestPlayerControl(t *testing.T) {
	w, ps := newTestWorld(t)
	control := NewPlayerControlSystem(ps)

	p := player.New(economy.New(0, 3))
	e := addTestPlayer(t, w, p, 240, 400)
	ps.Update(w)
	pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())

	velocity := func() cp.Vector {
		v, _ := ps.Arena().Velocity(pb.ID)
		return v
	}

	in.MoveX = -1
	in.Jump = true
	control.Update(w)
	if v := velocity(); !approx(v.X, -4) || !approx(v.Y, -10) || p.Facing() != player.FacingLeft {
		t.Fatalf("jump: v=%v facing=%s", v, p.Facing())
	}
	if in.Jump {
		t.Fatalf("jump flag should be consumed")
	}

	ps.Arena().SetVelocity(pb.ID, cp.Vector{})
	in.SuperJump = true
	control.Update(w)
	if v := velocity(); !approx(v.Y, 0) {
		t.Fatalf("super jump without a charge moved the player: %v", v)
	}

	p.Economy().Grant(SuperJumpItem, 1)
	in.MoveX = 1
	in.SuperJump = true
	control.Update(w)
	if v := velocity(); !approx(v.Y, -20) || p.Economy().Owned(SuperJumpItem) != 0 || p.Facing() != player.FacingRight {
		t.Fatalf("super jump: v=%v owned=%d", v, p.Economy().Owned(SuperJumpItem))
	}

	p.Die()
	ps.Arena().SetVelocity(pb.ID, cp.Vector{})
	in.Jump = true
	control.Update(w)
	if v := velocity(); !approx(v.Y, 0) {
		t.Fatalf("dead player jumped: %v", v)
	}
}

func TestTTLSystem(t *testing.T) {
	w := ecs.NewWorld()
	ttl := NewTTLSystem()
	e := ecs.CreateEntity(w)
	must(t, ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: 2}))

	ttl.Update(w)
	if !ecs.IsAlive(w, e) {
		t.Fatalf("entity should survive the first tick")
	}
	ttl.Update(w)
	if ecs.IsAlive(w, e) {
		t.Fatalf("entity should be destroyed after two ticks")
	}
}

func TestPhysicsReleasesDestroyedEntities(t *testing.T) {
	w, ps := newTestWorld(t)
	coin := pickup.NewCurrency(1)
	e := addTestPickup(t, w, coin, 10, 10)
	ps.Update(w)
	body := coin.Body()

	ecs.DestroyEntity(w, e)
	ps.Update(w)
	if ps.Arena().Valid(body) {
		t.Fatalf("destroyed entity's body should be removed")
	}
	if _, ok := ps.Owners().Owner(body); ok {
		t.Fatalf("destroyed entity's owner should be dropped")
	}
}

func TestSpawnSystem(t *testing.T) {
	w, _ := newTestWorld(t)

	var spawned []string
	spawn := func(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
		spawned = append(spawned, prefab)
		if x < 0 || x > 480 || y != 0 {
			t.Fatalf("spawn outside the top edge: %v,%v", x, y)
		}
		e := ecs.CreateEntity(w)
		return e, ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Collectable: pickup.NewCurrency(1)})
	}
	s := NewSpawnSystem([]SpawnEntry{{Prefab: "coin.yaml", Weight: 3}, {Prefab: "skip.yaml", Weight: 0}}, 2, 1, 1, spawn)

	for i := 0; i < 6; i++ {
		s.Update(w)
	}
	if len(spawned) != 1 || spawned[0] != "coin.yaml" {
		t.Fatalf("expected a single capped spawn, got %v", spawned)
	}

	ecs.ForEach(w, component.PickupComponent.Kind(), func(_ ecs.Entity, pk *component.Pickup) {
		pk.Collectable.Deactivate()
	})
	s.Update(w)
	s.Update(w)
	if len(spawned) != 2 {
		t.Fatalf("inactive pickups should not count toward the cap, got %v", spawned)
	}
}
