// Package economy tracks the player's coins, health and owned power-ups and
// runs shop transactions against them.
package economy

import (
	"fmt"
	"log"
	"sort"

	"github.com/milk9111/jumpy/common"
	"github.com/milk9111/jumpy/shop"
)

const MaxHealth = 3

type ChangeKind int

const (
	ChangeCoins ChangeKind = iota
	ChangeHealth
	ChangeInventory
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCoins:
		return "coins"
	case ChangeHealth:
		return "health"
	case ChangeInventory:
		return "inventory"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change is delivered to subscribers after a balance changes.
type Change struct {
	Kind   ChangeKind
	Coins  int
	Health int
	Item   string
	Owned  int
}

type listener struct {
	id int
	fn func(Change)
}

type Economy struct {
	coins     int
	health    int
	inventory map[string]int

	listeners []listener
	nextID    int

	// non-nil while a transaction is open
	pending *[]Change
}

func New(coins, health int) *Economy {
	e := &Economy{inventory: make(map[string]int)}
	if coins < 0 {
		coins = 0
	}
	e.coins = coins
	e.health = common.ClampInt(health, 0, MaxHealth)
	return e
}

func (e *Economy) Coins() int {
	if e == nil {
		return 0
	}
	return e.coins
}

func (e *Economy) Health() int {
	if e == nil {
		return 0
	}
	return e.health
}

// AddCoins adds n coins. Negative n is ignored.
func (e *Economy) AddCoins(n int) {
	if e == nil {
		return
	}
	if n < 0 {
		log.Printf("Economy: AddCoins(%d) ignored, negative amount", n)
		return
	}
	if n == 0 {
		return
	}
	e.coins += n
	e.emit(Change{Kind: ChangeCoins, Coins: e.coins, Health: e.health})
}

// SetHealth stores h clamped into [0, MaxHealth].
func (e *Economy) SetHealth(h int) {
	if e == nil {
		return
	}
	clamped := common.ClampInt(h, 0, MaxHealth)
	if clamped != h {
		log.Printf("Economy: health %d clamped to %d", h, clamped)
	}
	if clamped == e.health {
		return
	}
	e.health = clamped
	e.emit(Change{Kind: ChangeHealth, Coins: e.coins, Health: e.health})
}

func (e *Economy) Heal(n int) {
	if e == nil || n <= 0 {
		return
	}
	e.SetHealth(common.ClampInt(e.health+n, 0, MaxHealth))
}

// Damage lowers health by n and returns the new value.
func (e *Economy) Damage(n int) int {
	if e == nil {
		return 0
	}
	if n > 0 {
		e.SetHealth(common.ClampInt(e.health-n, 0, MaxHealth))
	}
	return e.health
}

func (e *Economy) Owned(id string) int {
	if e == nil {
		return 0
	}
	return e.inventory[id]
}

func (e *Economy) Grant(id string, n int) {
	if e == nil || id == "" || n <= 0 {
		return
	}
	e.inventory[id] += n
	e.emit(Change{Kind: ChangeInventory, Coins: e.coins, Health: e.health, Item: id, Owned: e.inventory[id]})
}

// Consume uses one owned unit of id.
func (e *Economy) Consume(id string) bool {
	if e == nil || e.inventory[id] <= 0 {
		return false
	}
	e.take(id)
	return true
}

func (e *Economy) take(id string) {
	e.inventory[id]--
	left := e.inventory[id]
	if left == 0 {
		delete(e.inventory, id)
	}
	e.emit(Change{Kind: ChangeInventory, Coins: e.coins, Health: e.health, Item: id, Owned: left})
}

// Subscribe registers fn for change notifications. Listeners run in
// registration order on the caller's goroutine.
func (e *Economy) Subscribe(fn func(Change)) (unsubscribe func()) {
	if e == nil || fn == nil {
		return func() {}
	}
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

func (e *Economy) emit(c Change) {
	if e.pending != nil {
		*e.pending = append(*e.pending, c)
		return
	}
	ls := make([]listener, len(e.listeners))
	copy(ls, e.listeners)
	for _, l := range ls {
		l.fn(c)
	}
}

// Snapshot is the balance handed to and from persistence.
type Snapshot struct {
	Coins     int
	Health    int
	Inventory map[string]int
}

func (e *Economy) Snapshot() Snapshot {
	if e == nil {
		return Snapshot{}
	}
	inv := make(map[string]int, len(e.inventory))
	for k, v := range e.inventory {
		inv[k] = v
	}
	return Snapshot{Coins: e.coins, Health: e.health, Inventory: inv}
}

// Restore replaces the balance with s, sanitising out-of-range values, and
// notifies subscribers of every part that changed.
func (e *Economy) Restore(s Snapshot) {
	if e == nil {
		return
	}
	e.restore(s, true)
}

func (e *Economy) restore(s Snapshot, notify bool) {
	prevCoins, prevHealth := e.coins, e.health
	prevInv := e.inventory

	e.coins = s.Coins
	if e.coins < 0 {
		e.coins = 0
	}
	e.health = common.ClampInt(s.Health, 0, MaxHealth)
	e.inventory = make(map[string]int, len(s.Inventory))
	for k, v := range s.Inventory {
		if v > 0 {
			e.inventory[k] = v
		}
	}
	if !notify {
		return
	}

	if e.coins != prevCoins {
		e.emit(Change{Kind: ChangeCoins, Coins: e.coins, Health: e.health})
	}
	if e.health != prevHealth {
		e.emit(Change{Kind: ChangeHealth, Coins: e.coins, Health: e.health})
	}
	ids := make([]string, 0, len(prevInv)+len(e.inventory))
	for id := range prevInv {
		ids = append(ids, id)
	}
	for id := range e.inventory {
		if _, ok := prevInv[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		if prevInv[id] != e.inventory[id] {
			e.emit(Change{Kind: ChangeInventory, Coins: e.coins, Health: e.health, Item: id, Owned: e.inventory[id]})
		}
	}
}

var _ shop.Ledger = (*Economy)(nil)
