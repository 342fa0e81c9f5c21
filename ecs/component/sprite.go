package component

// Sprite is what renderers read. Color is a colornames key; Glyph is used by
// the terminal renderer.
type Sprite struct {
	Width     float64
	Height    float64
	Color     string
	Glyph     rune
	Visible   bool
	TileIndex int
	FlipH     bool
}

var SpriteComponent = NewComponent[Sprite]()
