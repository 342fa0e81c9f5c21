package system

import (
	"log"
	"math/rand"

	"github.com/milk9111/jumpy/ecs"
	"github.com/milk9111/jumpy/ecs/component"
)

// SpawnEntry is one weighted row of the spawn table.
type SpawnEntry struct {
	Prefab string
	Weight int
}

// SpawnFunc builds prefab at (x, y).
type SpawnFunc func(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error)

// SpawnSystem drops a random pickup at the top edge every Interval updates
// while fewer than MaxActive pickups are live.
type SpawnSystem struct {
	Table     []SpawnEntry
	Interval  int
	MaxActive int

	spawn SpawnFunc
	rng   *rand.Rand
	timer int
	total int
}

func NewSpawnSystem(table []SpawnEntry, interval, maxActive int, seed int64, spawn SpawnFunc) *SpawnSystem {
	s := &SpawnSystem{
		Interval:  interval,
		MaxActive: maxActive,
		spawn:     spawn,
		rng:       rand.New(rand.NewSource(seed)),
	}
	for _, entry := range table {
		if entry.Prefab == "" || entry.Weight <= 0 {
			continue
		}
		s.Table = append(s.Table, entry)
		s.total += entry.Weight
	}
	return s
}

func (s *SpawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.spawn == nil || s.total == 0 || s.Interval <= 0 {
		return
	}
	s.timer++
	if s.timer < s.Interval {
		return
	}
	s.timer = 0

	if s.MaxActive > 0 && activePickups(w) >= s.MaxActive {
		return
	}
	bounds, ok := worldBounds(w)
	if !ok {
		return
	}

	prefab := s.pick()
	x := bounds.Box.L + s.rng.Float64()*(bounds.Box.R-bounds.Box.L)
	if _, err := s.spawn(w, prefab, x, bounds.Box.B); err != nil {
		log.Printf("Spawn: %s: %v", prefab, err)
	}
}

func (s *SpawnSystem) pick() string {
	n := s.rng.Intn(s.total)
	for _, entry := range s.Table {
		if n < entry.Weight {
			return entry.Prefab
		}
		n -= entry.Weight
	}
	return s.Table[len(s.Table)-1].Prefab
}

func activePickups(w *ecs.World) int {
	n := 0
	ecs.ForEach(w, component.PickupComponent.Kind(), func(_ ecs.Entity, pk *component.Pickup) {
		if pk.Collectable != nil && pk.Collectable.Active() {
			n++
		}
	})
	return n
}
