package shop

import (
	"errors"
	"testing"

	"github.com/milk9111/jumpy/prefabs"
)

type fakeLedger struct {
	coins  int
	health int
	owned  map[string]int
}

func newFakeLedger(coins, health int) *fakeLedger {
	return &fakeLedger{coins: coins, health: health, owned: map[string]int{}}
}

func (l *fakeLedger) Coins() int { return l.coins }
func (l *fakeLedger) Health() int { return l.health }
func (l *fakeLedger) Owned(id string) int { return l.owned[id] }
func (l *fakeLedger) Grant(id string, n int) { l.owned[id] += n }
func (l *fakeLedger) Heal(n int) { l.health += n }

func TestItemSetters(t *testing.T) {
	it := NewItem("super_jump", "", -5, nil)
	if it.Name() != "super_jump" {
		t.Fatalf("empty name should fall back to id, got %q", it.Name())
	}
	if it.Price() != 0 {
		t.Fatalf("negative price should clamp to 0, got %d", it.Price())
	}
	it.SetName("Super Jump")
	it.SetPrice(1000)
	it.SetName("")
	if it.Name() != "Super Jump" || it.Price() != 1000 {
		t.Fatalf("unexpected item %v", it)
	}
	if err := it.Buy(newFakeLedger(0, 0)); err != nil {
		t.Fatalf("nil hooks should be a no-op, got %v", err)
	}

	var nilItem *Item
	if nilItem.Name() != "" || nilItem.Price() != 0 || nilItem.Buy(nil) != nil {
		t.Fatalf("nil item accessors should be zero")
	}
}

func TestScriptHooks(t *testing.T) {
	cases := []struct {
		name       string
		src        string
		phase      string
		health     int
		wantErr    bool
		wantHealth int
		wantOwned  int
	}{
		{
			name:       "heal_on_buy",
			src:        "buy := func(shop) { shop.heal(1) }\nsell := func(shop) {}",
			phase:      "buy",
			health:     2,
			wantHealth: 3,
		},
		{
			name:    "fail_rejects",
			src:     "buy := func(shop) { shop.fail(\"nope\") }\nsell := func(shop) {}",
			phase:   "buy",
			health:  1,
			wantErr: true, wantHealth: 1,
		},
		{
			name:    "runtime_error",
			src:     "buy := func(shop) { shop.missing() }\nsell := func(shop) {}",
			phase:   "buy",
			health:  1,
			wantErr: true, wantHealth: 1,
		},
		{
			name:       "grant_on_sell",
			src:        "buy := func(shop) {}\nsell := func(shop) { shop.grant(shop.item, 2) }",
			phase:      "sell",
			health:     3,
			wantHealth: 3,
			wantOwned:  2,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hooks, err := CompileScriptHooks(c.name+".tengo", []byte(c.src))
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			it := NewItem("item", "Item", 5, hooks)
			l := newFakeLedger(10, c.health)

			if c.phase == "buy" {
				err = it.Buy(l)
			} else {
				err = it.Sell(l)
			}
			if (err != nil) != c.wantErr {
				t.Fatalf("err=%v, wantErr %v", err, c.wantErr)
			}
			if err != nil && !errors.Is(err, ErrScriptHook) {
				t.Fatalf("expected ErrScriptHook, got %v", err)
			}
			if l.health != c.wantHealth || l.owned["item"] != c.wantOwned {
				t.Fatalf("ledger health=%d owned=%d, want %d %d", l.health, l.owned["item"], c.wantHealth, c.wantOwned)
			}
		})
	}

	t.Run("missing_hook_does_not_compile", func(t *testing.T) {
		if _, err := CompileScriptHooks("half.tengo", []byte("buy := func(shop) {}")); err == nil {
			t.Fatalf("expected compile error without sell")
		}
	})
}

func TestEmbeddedLifeScript(t *testing.T) {
	hooks, err := NewScriptHooks("life.tengo")
	if err != nil {
		t.Fatalf("load life script: %v", err)
	}
	it := NewItem("life", "Life", 10, hooks)

	full := newFakeLedger(0, 3)
	if err := it.Buy(full); err == nil {
		t.Fatalf("buying a life at full health should fail")
	}
	hurt := newFakeLedger(0, 2)
	if err := it.Buy(hurt); err != nil || hurt.health != 3 {
		t.Fatalf("expected heal to 3, got health=%d err=%v", hurt.health, err)
	}
}

func TestCatalogue(t *testing.T) {
	c, err := LoadCatalogue()
	if err != nil {
		t.Fatalf("LoadCatalogue: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", c.Len())
	}
	jump, ok := c.Item("super_jump")
	if !ok || jump.Price() != 1000 {
		t.Fatalf("unexpected super_jump %v ok=%v", jump, ok)
	}

	spec := &prefabs.ShopSpec{Items: []prefabs.ShopItemSpec{
		{ID: "life", Name: "Life", Price: 10},
		{ID: "super_jump", Name: "Mega Jump", Price: 750},
		{ID: "shield", Name: "Shield", Price: 50},
	}}
	if n := c.Apply(spec); n != 1 {
		t.Fatalf("expected 1 changed item, got %d", n)
	}
	if jump.Name() != "Mega Jump" || jump.Price() != 750 {
		t.Fatalf("reload did not update the shared item: %v", jump)
	}
	if _, ok := c.Item("shield"); ok {
		t.Fatalf("new items are not added by Apply")
	}

	n, err := c.ReloadScript("scripts/super_jump.tengo")
	if err != nil || n != 1 {
		t.Fatalf("ReloadScript = %d, %v", n, err)
	}

	if _, err := NewCatalogue(&prefabs.ShopSpec{Items: []prefabs.ShopItemSpec{{ID: "a"}, {ID: "a"}}}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}
