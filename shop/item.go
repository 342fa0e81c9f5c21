package shop

import (
	"fmt"
	"log"
)

// Ledger is the balance a buy or sell hook may read and adjust. The economy
// implements it.
type Ledger interface {
	Coins() int
	Health() int
	Owned(id string) int
	Grant(id string, n int)
	Heal(n int)
}

// Hooks customise what happens after a purchase or sale has been charged.
// Returning an error rolls the transaction back.
type Hooks interface {
	Buy(item *Item, l Ledger) error
	Sell(item *Item, l Ledger) error
}

type NopHooks struct{}

func (NopHooks) Buy(*Item, Ledger) error { return nil }
func (NopHooks) Sell(*Item, Ledger) error { return nil }

// Item is a purchasable record. The id is stable for the session; name and
// price may change when the catalogue reloads.
type Item struct {
	id    string
	name  string
	price int
	hooks Hooks
}

func NewItem(id, name string, price int, hooks Hooks) *Item {
	if name == "" {
		name = id
	}
	it := &Item{id: id, name: name, hooks: hooks}
	it.SetPrice(price)
	return it
}

func (it *Item) ID() string {
	if it == nil {
		return ""
	}
	return it.id
}

func (it *Item) Name() string {
	if it == nil {
		return ""
	}
	return it.name
}

func (it *Item) Price() int {
	if it == nil {
		return 0
	}
	return it.price
}

func (it *Item) SetName(name string) {
	if it == nil || name == "" {
		return
	}
	it.name = name
}

// SetPrice stores price, clamping negative values to zero.
func (it *Item) SetPrice(price int) {
	if it == nil {
		return
	}
	if price < 0 {
		log.Printf("Shop: %s price %d clamped to 0", it.id, price)
		price = 0
	}
	it.price = price
}

func (it *Item) SetHooks(h Hooks) {
	if it == nil {
		return
	}
	it.hooks = h
}

func (it *Item) Buy(l Ledger) error {
	if it == nil || it.hooks == nil {
		return nil
	}
	return it.hooks.Buy(it, l)
}

func (it *Item) Sell(l Ledger) error {
	if it == nil || it.hooks == nil {
		return nil
	}
	return it.hooks.Sell(it, l)
}

func (it *Item) String() string {
	if it == nil {
		return "<nil item>"
	}
	return fmt.Sprintf("%s(%d)", it.name, it.price)
}
