package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Color  string  `yaml:"color"`
	Glyph  string  `yaml:"glyph"`
	Hidden bool    `yaml:"hidden"`
}

type PhysicsBodyComponentSpec struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Radius        float64 `yaml:"radius"`
	Mass          float64 `yaml:"mass"`
	Friction      float64 `yaml:"friction"`
	Elasticity    float64 `yaml:"elasticity"`
	Sensor        bool    `yaml:"sensor"`
	IgnoreGravity bool    `yaml:"ignore_gravity"`
	FixedRotation bool    `yaml:"fixed_rotation"`
	Layer         string  `yaml:"layer"`
	VelocityX     float64 `yaml:"velocity_x"`
	VelocityY     float64 `yaml:"velocity_y"`
}

type PlayerComponentSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
}

type PickupComponentSpec struct {
	Variant    string `yaml:"variant"`
	Item       string `yaml:"item"`
	RewardItem string `yaml:"reward_item"`
	Value      int    `yaml:"value"`
	Damage     int    `yaml:"damage"`
}

type TTLComponentSpec struct {
	Frames int `yaml:"frames"`
}
