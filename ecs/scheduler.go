package ecs

import (
	"fmt"
	"strings"
)

type System interface {
	Update(w *World)
}

// Scheduler runs its systems once per tick in the order they were added.
// The order is the step contract: input, physics, contacts, wrap, then the
// per-frame bookkeeping systems.
type Scheduler struct {
	systems []System
	ticks   int
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
	s.ticks++
}

// Ticks reports how many times Update has run.
func (s *Scheduler) Ticks() int { return s.ticks }

// Order lists the systems by type name, e.g. "PhysicsSystem".
func (s *Scheduler) Order() []string {
	names := make([]string, 0, len(s.systems))
	for _, sys := range s.systems {
		name := fmt.Sprintf("%T", sys)
		if i := strings.LastIndex(name, "."); i >= 0 {
			name = name[i+1:]
		}
		names = append(names, name)
	}
	return names
}
