package entity

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/milk9111/jumpy/ecs"
	"github.com/milk9111/jumpy/ecs/component"
	"github.com/milk9111/jumpy/physics"
	"github.com/milk9111/jumpy/pickup"
	"github.com/milk9111/jumpy/player"
	"github.com/milk9111/jumpy/prefabs"
	"github.com/milk9111/jumpy/shop"
)

var ErrMissingDependency = errors.New("build entity: missing dependency")

// Deps are the session objects prefab components bind to.
type Deps struct {
	Catalogue *shop.Catalogue
	Player    *player.Player
}

type buildContext struct {
	PrefabPath string
	Deps       Deps
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"scenery_tag":  addSceneryTag,
	"player":       addPlayer,
	"input":        addInput,
	"transform":    addTransform,
	"sprite":       addSprite,
	"physics_body": addPhysicsBody,
	"wrap":         addWrap,
	"pickup":       addPickup,
	"ttl":          addTTL,
}

var componentBuildOrder = []string{
	"player_tag",
	"scenery_tag",
	"player",
	"input",
	"transform",
	"sprite",
	"physics_body",
	"wrap",
	"pickup",
	"ttl",
}

func BuildEntity(w *ecs.World, prefabPath string, deps Deps) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Deps: deps}

	names := make([]string, 0, len(spec.Components))
	for _, name := range componentBuildOrder {
		if _, ok := spec.Components[name]; ok {
			names = append(names, name)
		}
	}
	var unknown []string
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, unknown[0])
	}

	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

// BuildEntityAt builds prefabPath and places it at (x, y).
func BuildEntityAt(w *ecs.World, prefabPath string, deps Deps, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefabPath, deps)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, x, y, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addSceneryTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SceneryTagComponent.Kind(), &component.SceneryTag{})
}

func addWrap(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.WrapComponent.Kind(), &component.Wrap{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	if ctx.Deps.Player == nil {
		return fmt.Errorf("%w: player", ErrMissingDependency)
	}
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		State:     ctx.Deps.Player,
		MoveSpeed: spec.MoveSpeed,
		JumpSpeed: spec.JumpSpeed,
	})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	return SetEntityTransform(w, e, spec.X, spec.Y, spec.Rotation)
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return err
	}
	glyph := '?'
	if r, size := utf8.DecodeRuneInString(spec.Glyph); size > 0 && r != utf8.RuneError {
		glyph = r
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:   spec.Width,
		Height:  spec.Height,
		Color:   spec.Color,
		Glyph:   glyph,
		Visible: !spec.Hidden,
	})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return err
	}
	layer, err := physics.ParseLayer(spec.Layer)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:         spec.Width,
		Height:        spec.Height,
		Radius:        spec.Radius,
		Mass:          spec.Mass,
		Friction:      spec.Friction,
		Elasticity:    spec.Elasticity,
		Sensor:        spec.Sensor,
		IgnoreGravity: spec.IgnoreGravity,
		FixedRotation: spec.FixedRotation,
		Layer:         layer,
		VelocityX:     spec.VelocityX,
		VelocityY:     spec.VelocityY,
	})
}

func addPickup(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PickupComponentSpec](raw)
	if err != nil {
		return err
	}
	c, err := pickup.FromSpec(spec, ctx.Deps.Catalogue)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{
		Collectable: c,
		Prefab:      ctx.PrefabPath,
	})
}

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TTLComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: spec.Frames})
}
