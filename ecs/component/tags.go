package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Wrap marks entities repositioned toroidally at the world edges.
type Wrap struct{}

var WrapComponent = NewComponent[Wrap]()

type SceneryTag struct{}

var SceneryTagComponent = NewComponent[SceneryTag]()
