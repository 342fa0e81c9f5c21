package prefabs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/jumpy/common"
	"gopkg.in/yaml.v3"
)

var ErrUnknownItem = errors.New("prefabs: unknown item")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// WorldSpec configures a play session: bounds, gravity, spawning and the
// starting economy.
type WorldSpec struct {
	Name            string          `yaml:"name"`
	Width           float64         `yaml:"width"`
	Height          float64         `yaml:"height"`
	Gravity         float64         `yaml:"gravity"`
	Step            float64         `yaml:"step"`
	PickupTTLFrames int             `yaml:"pickup_ttl_frames"`
	FallMargin      float64         `yaml:"fall_margin"`
	Spawn           SpawnSpec       `yaml:"spawn"`
	Scenery         []PlacementSpec `yaml:"scenery"`
	Player          PlacementSpec   `yaml:"player"`
	Economy         EconomySpec     `yaml:"economy"`
}

type SpawnSpec struct {
	IntervalFrames int              `yaml:"interval_frames"`
	MaxActive      int              `yaml:"max_active"`
	Seed           int64            `yaml:"seed"`
	Table          []SpawnEntrySpec `yaml:"table"`
}

type SpawnEntrySpec struct {
	Prefab string `yaml:"prefab"`
	Weight int    `yaml:"weight"`
}

type PlacementSpec struct {
	Prefab string  `yaml:"prefab"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

type EconomySpec struct {
	Coins  int `yaml:"coins"`
	Health int `yaml:"health"`
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec]("world.yaml")
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	return &spec, nil
}

func (s *WorldSpec) applyDefaults() {
	if s.Width <= 0 {
		s.Width = common.WorldWidth
	}
	if s.Height <= 0 {
		s.Height = common.WorldHeight
	}
	if s.Step <= 0 {
		s.Step = common.StepDT
	}
	if s.PickupTTLFrames <= 0 {
		s.PickupTTLFrames = 30
	}
	if s.Player.Prefab == "" {
		s.Player.Prefab = "player.yaml"
	}
}

// ShopSpec lists the purchasable items in display order.
type ShopSpec struct {
	Items []ShopItemSpec `yaml:"items"`
}

type ShopItemSpec struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Price  int    `yaml:"price"`
	Script string `yaml:"script"`
}

func LoadShopSpec() (*ShopSpec, error) {
	spec, err := LoadSpec[ShopSpec]("shop.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate rejects entries without an id and duplicate ids.
func (s ShopSpec) Validate() error {
	seen := make(map[string]struct{}, len(s.Items))
	for i, item := range s.Items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return fmt.Errorf("prefabs: shop item %d has no id", i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("prefabs: duplicate shop item %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Item returns the entry with the given id.
func (s ShopSpec) Item(id string) (ShopItemSpec, error) {
	for _, item := range s.Items {
		if item.ID == id {
			return item, nil
		}
	}
	return ShopItemSpec{}, fmt.Errorf("%w: %q", ErrUnknownItem, id)
}
