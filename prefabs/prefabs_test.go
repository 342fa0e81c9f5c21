package prefabs

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLoadWorldSpec(t *testing.T) {
	spec, err := LoadWorldSpec()
	if err != nil {
		t.Fatalf("LoadWorldSpec: %v", err)
	}
	if spec.Width != 480 || spec.Height != 800 {
		t.Fatalf("unexpected bounds %vx%v", spec.Width, spec.Height)
	}
	if spec.Player.Prefab != "player.yaml" {
		t.Fatalf("unexpected player prefab %q", spec.Player.Prefab)
	}
	if len(spec.Spawn.Table) == 0 {
		t.Fatalf("expected a spawn table")
	}
	for _, entry := range spec.Spawn.Table {
		if _, err := LoadEntityBuildSpec(entry.Prefab); err != nil {
			t.Fatalf("spawn prefab %s: %v", entry.Prefab, err)
		}
	}
}

func TestWorldSpecDefaults(t *testing.T) {
	var spec WorldSpec
	spec.applyDefaults()
	if spec.Width != 480 || spec.Height != 800 || spec.Step != 1 || spec.PickupTTLFrames != 30 {
		t.Fatalf("unexpected defaults %+v", spec)
	}
}

func TestShopSpec(t *testing.T) {
	spec, err := LoadShopSpec()
	if err != nil {
		t.Fatalf("LoadShopSpec: %v", err)
	}
	life, err := spec.Item("life")
	if err != nil {
		t.Fatalf("expected life item: %v", err)
	}
	if life.Price != 10 || life.Name != "Life" {
		t.Fatalf("unexpected life item %+v", life)
	}
	if _, err := spec.Item("shield"); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}

	cases := []struct {
		name    string
		spec    ShopSpec
		wantErr bool
	}{
		{"empty", ShopSpec{}, false},
		{"ok", ShopSpec{Items: []ShopItemSpec{{ID: "a"}, {ID: "b"}}}, false},
		{"missing_id", ShopSpec{Items: []ShopItemSpec{{Name: "Nameless"}}}, true},
		{"duplicate", ShopSpec{Items: []ShopItemSpec{{ID: "a"}, {ID: "a"}}}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.spec.Validate()
			if (err != nil) != c.wantErr {
				t.Fatalf("Validate() err=%v, wantErr %v", err, c.wantErr)
			}
		})
	}
}

func TestDecodeComponentSpec(t *testing.T) {
	spec, err := LoadEntityBuildSpec("life.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	pickup, err := DecodeComponentSpec[PickupComponentSpec](spec.Components["pickup"])
	if err != nil {
		t.Fatalf("decode pickup: %v", err)
	}
	if pickup.Variant != "life" || pickup.Item != "life" {
		t.Fatalf("unexpected pickup spec %+v", pickup)
	}
	body, err := DecodeComponentSpec[PhysicsBodyComponentSpec](spec.Components["physics_body"])
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Sensor || !body.IgnoreGravity || body.Layer != "pickup" || body.Radius != 12 {
		t.Fatalf("unexpected body spec %+v", body)
	}

	empty, err := DecodeComponentSpec[TransformComponentSpec](nil)
	if err != nil || empty != (TransformComponentSpec{}) {
		t.Fatalf("nil raw should decode to zero value, got %+v err=%v", empty, err)
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"life.tengo", "scripts/life.tengo", "prefabs/scripts/life.tengo"} {
		if _, err := LoadScript(name); err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
	}
	if _, err := LoadScript("missing.tengo"); err == nil {
		t.Fatalf("expected an error for a missing script")
	}
}

func TestScriptKey(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"life.tengo", "scripts/life.tengo"},
		{"scripts/life.tengo", "scripts/life.tengo"},
		{"prefabs/scripts/life.tengo", "scripts/life.tengo"},
	}
	for _, c := range cases {
		if got := ScriptKey(c.in); got != c.want {
			t.Fatalf("ScriptKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLoadAcceptsDirPrefix(t *testing.T) {
	bare, err := Load("shop.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	prefixed, err := Load(Dir + "/shop.yaml")
	if err != nil || string(prefixed) != string(bare) {
		t.Fatalf("prefixed load differs: err=%v", err)
	}
}

func TestWatcherRelative(t *testing.T) {
	root := filepath.Join("some", "prefabs")
	w := &Watcher{root: root}

	cases := []struct {
		path string
		want string
		ok   bool
	}{
		{filepath.Join(root, "shop.yaml"), "shop.yaml", true},
		{filepath.Join(root, "scripts", "life.tengo"), "scripts/life.tengo", true},
		{filepath.Join(root, "notes.txt"), "", false},
		{filepath.Join("some", "other.yaml"), "", false},
	}
	for _, c := range cases {
		got, ok := w.relative(c.path)
		if ok != c.ok || got != c.want {
			t.Fatalf("relative(%q) = %q,%v want %q,%v", c.path, got, ok, c.want, c.ok)
		}
	}
}
