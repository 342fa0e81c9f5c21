package system

import (
	"log"

	"github.com/milk9111/jumpy/ecs"
	"github.com/milk9111/jumpy/ecs/component"
)

// SuperJumpItem is the inventory id consumed by a super jump.
const SuperJumpItem = "super_jump"

const superJumpFactor = 2

// PlayerControlSystem applies the player's Input to its body: horizontal
// speed and facing, jumps, and super jumps paid with an owned charge.
type PlayerControlSystem struct {
	physics *PhysicsSystem
}

func NewPlayerControlSystem(ps *PhysicsSystem) *PlayerControlSystem {
	return &PlayerControlSystem{physics: ps}
}

func (s *PlayerControlSystem) Update(w *ecs.World) {
	if s == nil || s.physics == nil || w == nil {
		return
	}
	arena := s.physics.Arena()
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, pc *component.Player, in *component.Input) {
		jump, super := in.Jump, in.SuperJump
		in.Jump, in.SuperJump = false, false

		p := pc.State
		if p == nil || !p.Alive() {
			return
		}
		switch {
		case in.MoveX < 0:
			p.TurnLeft()
		case in.MoveX > 0:
			p.TurnRight()
		}

		pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			return
		}
		vel, ok := arena.Velocity(pb.ID)
		if !ok {
			return
		}
		vel.X = in.MoveX * pc.MoveSpeed

		if super {
			if p.Economy().Consume(SuperJumpItem) {
				vel.Y = -pc.JumpSpeed * superJumpFactor
				jump = false
			} else {
				log.Printf("PlayerControl: no super jump charges")
			}
		}
		if jump {
			vel.Y = -pc.JumpSpeed
		}
		arena.SetVelocity(pb.ID, vel)
	})
}
