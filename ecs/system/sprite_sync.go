package system

import (
	"github.com/milk9111/jumpy/ecs"
	"github.com/milk9111/jumpy/ecs/component"
)

// SpriteSyncSystem copies the player's tile and facing onto its sprite.
type SpriteSyncSystem struct{}

func NewSpriteSyncSystem() *SpriteSyncSystem { return &SpriteSyncSystem{} }

func (s *SpriteSyncSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, pc *component.Player, sprite *component.Sprite) {
		if pc.State == nil {
			return
		}
		sprite.TileIndex = pc.State.TileIndex()
		sprite.FlipH = pc.State.FlippedHorizontal()
	})
}
