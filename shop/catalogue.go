package shop

import (
	"log"

	"github.com/milk9111/jumpy/prefabs"
)

// Catalogue holds the shop's items in display order.
type Catalogue struct {
	items []*Item
	byID  map[string]*Item
}

func LoadCatalogue() (*Catalogue, error) {
	spec, err := prefabs.LoadShopSpec()
	if err != nil {
		return nil, err
	}
	return NewCatalogue(spec)
}

func NewCatalogue(spec *prefabs.ShopSpec) (*Catalogue, error) {
	c := &Catalogue{byID: make(map[string]*Item)}
	if spec == nil {
		return c, nil
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	for _, s := range spec.Items {
		hooks, err := hooksFor(s)
		if err != nil {
			return nil, err
		}
		item := NewItem(s.ID, s.Name, s.Price, hooks)
		c.items = append(c.items, item)
		c.byID[item.ID()] = item
	}
	return c, nil
}

func hooksFor(s prefabs.ShopItemSpec) (Hooks, error) {
	if s.Script == "" {
		return NopHooks{}, nil
	}
	return NewScriptHooks(s.Script)
}

func (c *Catalogue) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Items returns the items in display order.
func (c *Catalogue) Items() []*Item {
	if c == nil {
		return nil
	}
	out := make([]*Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalogue) Item(id string) (*Item, bool) {
	if c == nil {
		return nil, false
	}
	it, ok := c.byID[id]
	return it, ok
}

// Apply updates names and prices of known items in place, so pickups and UI
// already holding an *Item see the new values. Items added or removed in spec
// are reported and otherwise ignored until the next session. It returns the
// number of items that changed.
func (c *Catalogue) Apply(spec *prefabs.ShopSpec) int {
	if c == nil || spec == nil {
		return 0
	}
	changed := 0
	seen := make(map[string]struct{}, len(spec.Items))
	for _, s := range spec.Items {
		seen[s.ID] = struct{}{}
		it, ok := c.byID[s.ID]
		if !ok {
			log.Printf("Shop: new item %q ignored until restart", s.ID)
			continue
		}
		before := *it
		it.SetName(s.Name)
		it.SetPrice(s.Price)
		if before.name != it.name || before.price != it.price {
			changed++
		}
	}
	for id := range c.byID {
		if _, ok := seen[id]; !ok {
			log.Printf("Shop: item %q missing from reload, keeping it", id)
		}
	}
	return changed
}

// ReloadScript recompiles the hooks of every item using script. A compile
// failure leaves the previous hooks in place.
func (c *Catalogue) ReloadScript(script string) (int, error) {
	if c == nil {
		return 0, nil
	}
	var (
		fresh   *ScriptHooks
		updated int
	)
	for _, it := range c.items {
		sh, ok := it.hooks.(*ScriptHooks)
		if !ok || !sameScript(sh.Path(), script) {
			continue
		}
		if fresh == nil {
			h, err := NewScriptHooks(script)
			if err != nil {
				return updated, err
			}
			fresh = h
		}
		it.SetHooks(fresh)
		updated++
	}
	return updated, nil
}

func sameScript(a, b string) bool {
	return prefabs.ScriptKey(a) == prefabs.ScriptKey(b)
}
