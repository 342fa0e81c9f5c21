// Package session runs one play session: it builds the world from prefabs,
// owns the step loop and applies requests posted from UI goroutines.
package session

import (
	"errors"
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/jumpy/common"
	"github.com/milk9111/jumpy/economy"
	"github.com/milk9111/jumpy/ecs"
	"github.com/milk9111/jumpy/ecs/component"
	"github.com/milk9111/jumpy/ecs/entity"
	"github.com/milk9111/jumpy/ecs/system"
	"github.com/milk9111/jumpy/physics"
	"github.com/milk9111/jumpy/player"
	"github.com/milk9111/jumpy/prefabs"
	"github.com/milk9111/jumpy/shop"
)

var ErrUnknownItem = errors.New("session: unknown item")

// PurchaseEvent is the payload of ecs.EventPurchase.
type PurchaseEvent struct {
	Item   string
	Sell   bool
	Result economy.Result
}

type Options struct {
	World *prefabs.WorldSpec
	Shop  *prefabs.ShopSpec
	// Snapshot restores a saved balance instead of the world's starting one.
	Snapshot *economy.Snapshot
	// DisableSpawning leaves pickup spawning to the caller.
	DisableSpawning bool
	Debug           bool
}

type Session struct {
	world     *ecs.World
	econ      *economy.Economy
	player    *player.Player
	catalogue *shop.Catalogue
	spec      prefabs.WorldSpec

	physics   *system.PhysicsSystem
	scheduler *ecs.Scheduler
	commands  ecs.CommandQueue[*Session]
	watcher   *prefabs.Watcher

	playerEntity ecs.Entity
	frame        int
}

// Load builds a session from the embedded (or disk-overridden) prefabs.
func Load() (*Session, error) {
	worldSpec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, err
	}
	shopSpec, err := prefabs.LoadShopSpec()
	if err != nil {
		return nil, err
	}
	return New(Options{World: worldSpec, Shop: shopSpec})
}

func New(opts Options) (*Session, error) {
	if opts.World == nil {
		return nil, fmt.Errorf("session: world spec is nil")
	}
	catalogue, err := shop.NewCatalogue(opts.Shop)
	if err != nil {
		return nil, fmt.Errorf("session: shop: %w", err)
	}

	econ := economy.New(opts.World.Economy.Coins, opts.World.Economy.Health)
	if opts.Snapshot != nil {
		econ.Restore(*opts.Snapshot)
	}

	s := &Session{
		world:     ecs.NewWorld(),
		econ:      econ,
		player:    player.New(econ),
		catalogue: catalogue,
		spec:      *opts.World,
	}
	s.player.OnDeath(func() {
		s.world.Events().Push(ecs.Event{Type: ecs.EventPlayerDied, Data: s.econ.Snapshot()})
	})

	s.physics = system.NewPhysicsSystem(s.spec.Gravity, s.spec.Step)
	collision := system.NewCollisionSystem(s.physics, s.spec.PickupTTLFrames)
	collision.Debug = opts.Debug

	s.scheduler = ecs.NewScheduler(
		system.NewPlayerControlSystem(s.physics),
		s.physics,
		collision,
		system.NewWrapSystem(s.physics),
		system.NewMotionSystem(s.physics),
		system.NewFallDeathSystem(),
		system.NewTTLSystem(),
		system.NewSpriteSyncSystem(),
	)
	if !opts.DisableSpawning {
		s.scheduler.Add(system.NewSpawnSystem(spawnTable(s.spec.Spawn), s.spec.Spawn.IntervalFrames, s.spec.Spawn.MaxActive, s.spec.Spawn.Seed, s.spawn))
	}

	if err := s.populate(); err != nil {
		return nil, err
	}
	return s, nil
}

func spawnTable(spec prefabs.SpawnSpec) []system.SpawnEntry {
	out := make([]system.SpawnEntry, 0, len(spec.Table))
	for _, entry := range spec.Table {
		out = append(out, system.SpawnEntry{Prefab: entry.Prefab, Weight: entry.Weight})
	}
	return out
}

func (s *Session) deps() entity.Deps {
	return entity.Deps{Catalogue: s.catalogue, Player: s.player}
}

func (s *Session) spawn(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
	return entity.BuildEntityAt(w, prefab, s.deps(), x, y)
}

func (s *Session) populate() error {
	bounds := ecs.CreateEntity(s.world)
	if err := ecs.Add(s.world, bounds, component.WorldBoundsComponent.Kind(), &component.WorldBounds{
		Box:        physics.Bounds(s.spec.Width, s.spec.Height),
		FallMargin: s.spec.FallMargin,
	}); err != nil {
		return err
	}

	for _, placed := range s.spec.Scenery {
		if _, err := s.spawn(s.world, placed.Prefab, placed.X, placed.Y); err != nil {
			return fmt.Errorf("session: scenery: %w", err)
		}
	}

	e, err := s.spawn(s.world, s.spec.Player.Prefab, s.spec.Player.X, s.spec.Player.Y)
	if err != nil {
		return fmt.Errorf("session: player: %w", err)
	}
	s.playerEntity = e
	return nil
}

// Step advances the session by one tick and returns the events it raised.
// It must be called from a single goroutine.
func (s *Session) Step() []ecs.Event {
	s.pollReloads()
	s.commands.Drain(s)
	s.scheduler.Update(s.world)
	s.frame++
	return s.world.Events().Drain()
}

// Post queues fn to run on the logic goroutine at the start of the next
// Step. It is safe to call from any goroutine.
func (s *Session) Post(fn func(*Session)) {
	s.commands.Post(fn)
}

func (s *Session) Pending() int {
	return s.commands.Len()
}

// RequestPurchase buys the item with id at the next step and hands the
// result to reply on the logic goroutine. reply may be nil.
func (s *Session) RequestPurchase(id string, reply func(economy.Result)) {
	s.Post(func(s *Session) {
		res := s.transact(id, false)
		if reply != nil {
			reply(res)
		}
	})
}

func (s *Session) RequestSell(id string, reply func(economy.Result)) {
	s.Post(func(s *Session) {
		res := s.transact(id, true)
		if reply != nil {
			reply(res)
		}
	})
}

func (s *Session) transact(id string, sell bool) economy.Result {
	item, ok := s.catalogue.Item(id)
	if !ok {
		log.Printf("Session: %v: %q", ErrUnknownItem, id)
	}
	var res economy.Result
	if sell {
		res = s.econ.Sell(item)
	} else {
		res = s.econ.Purchase(item)
	}
	s.world.Events().Push(ecs.Event{Type: ecs.EventPurchase, Data: PurchaseEvent{Item: id, Sell: sell, Result: res}})
	return res
}

// SetInput posts the player's movement intent for the next step.
func (s *Session) SetInput(moveX float64, jump, superJump bool) {
	s.Post(func(s *Session) {
		in, ok := ecs.Get(s.world, s.playerEntity, component.InputComponent.Kind())
		if !ok {
			return
		}
		in.MoveX = common.Clamp(moveX, -1, 1)
		in.Jump = in.Jump || jump
		in.SuperJump = in.SuperJump || superJump
	})
}

// Restart rebuilds the world for a new round. Coins and inventory carry
// over; health returns to the starting value.
func (s *Session) Restart() error {
	for _, e := range ecs.Entities(s.world) {
		ecs.DestroyEntity(s.world, e)
	}
	s.world.Events().Drain()
	s.physics.Reset()
	s.player.Reset()
	s.econ.SetHealth(s.spec.Economy.Health)
	s.frame = 0
	return s.populate()
}

func (s *Session) World() *ecs.World { return s.world }

func (s *Session) Economy() *economy.Economy { return s.econ }

func (s *Session) Player() *player.Player { return s.player }

func (s *Session) PlayerEntity() ecs.Entity { return s.playerEntity }

func (s *Session) Catalogue() *shop.Catalogue { return s.catalogue }

func (s *Session) Physics() *system.PhysicsSystem { return s.physics }

func (s *Session) Frame() int { return s.frame }

func (s *Session) Bounds() cp.BB { return physics.Bounds(s.spec.Width, s.spec.Height) }

func (s *Session) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}
