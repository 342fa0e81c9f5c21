package economy

import (
	"fmt"
	"log"

	"github.com/milk9111/jumpy/shop"
)

type Reason int

const (
	ReasonNone Reason = iota
	ReasonNoItem
	ReasonInsufficientFunds
	ReasonNotOwned
	ReasonHookFailed
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNoItem:
		return "no item"
	case ReasonInsufficientFunds:
		return "insufficient funds"
	case ReasonNotOwned:
		return "not owned"
	case ReasonHookFailed:
		return "hook failed"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Result reports the outcome of a purchase or sale. Coins is the balance
// after the attempt.
type Result struct {
	OK      bool
	Reason  Reason
	Coins   int
	Message string
}

// Purchase charges the item's price, grants one unit and runs the item's buy
// hook. A failing hook rolls the whole transaction back.
func (e *Economy) Purchase(item *shop.Item) Result {
	if e == nil || item == nil {
		return Result{Reason: ReasonNoItem, Coins: e.Coins(), Message: "no item selected"}
	}
	price := item.Price()
	if e.coins < price {
		return Result{
			Reason:  ReasonInsufficientFunds,
			Coins:   e.coins,
			Message: fmt.Sprintf("Not enough coins for %s: need %d, have %d", item.Name(), price, e.coins),
		}
	}

	err := e.transact(func() error {
		e.coins -= price
		e.emit(Change{Kind: ChangeCoins, Coins: e.coins, Health: e.health})
		e.Grant(item.ID(), 1)
		return item.Buy(e)
	})
	if err != nil {
		log.Printf("Economy: purchase of %s rolled back: %v", item.ID(), err)
		return Result{Reason: ReasonHookFailed, Coins: e.coins, Message: fmt.Sprintf("Could not buy %s", item.Name())}
	}
	return Result{OK: true, Coins: e.coins, Message: fmt.Sprintf("Bought %s", item.Name())}
}

// Sell returns one owned unit for its current price and runs the item's
// sell hook.
func (e *Economy) Sell(item *shop.Item) Result {
	if e == nil || item == nil {
		return Result{Reason: ReasonNoItem, Coins: e.Coins(), Message: "no item selected"}
	}
	if e.inventory[item.ID()] <= 0 {
		return Result{Reason: ReasonNotOwned, Coins: e.coins, Message: fmt.Sprintf("You do not own %s", item.Name())}
	}

	price := item.Price()
	err := e.transact(func() error {
		e.take(item.ID())
		e.coins += price
		e.emit(Change{Kind: ChangeCoins, Coins: e.coins, Health: e.health})
		return item.Sell(e)
	})
	if err != nil {
		log.Printf("Economy: sale of %s rolled back: %v", item.ID(), err)
		return Result{Reason: ReasonHookFailed, Coins: e.coins, Message: fmt.Sprintf("Could not sell %s", item.Name())}
	}
	return Result{OK: true, Coins: e.coins, Message: fmt.Sprintf("Sold %s", item.Name())}
}

// transact runs fn with notifications held back. On error the balance is
// restored and the held notifications are dropped.
func (e *Economy) transact(fn func() error) error {
	before := e.Snapshot()
	var held []Change
	e.pending = &held

	err := fn()

	e.pending = nil
	if err != nil {
		e.restore(before, false)
		return err
	}
	for _, c := range held {
		e.emit(c)
	}
	return nil
}
