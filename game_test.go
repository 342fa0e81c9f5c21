package main

import (
	"testing"

	"github.com/milk9111/jumpy/economy"
	"github.com/milk9111/jumpy/prefabs"
	"github.com/milk9111/jumpy/session"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	worldSpec, err := prefabs.LoadWorldSpec()
	if err != nil {
		t.Fatalf("world spec: %v", err)
	}
	shopSpec, err := prefabs.LoadShopSpec()
	if err != nil {
		t.Fatalf("shop spec: %v", err)
	}
	s, err := session.New(session.Options{
		World:           worldSpec,
		Shop:            shopSpec,
		Snapshot:        &economy.Snapshot{Coins: 20, Health: 2},
		DisableSpawning: true,
	})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return NewGame(s, false)
}

func TestClosedShopIsNotRebuilt(t *testing.T) {
	g := newTestGame(t)
	if g.shop.ui != nil {
		t.Fatalf("shop widgets built before the menu was opened")
	}

	g.session.Economy().AddCoins(5)
	g.session.Economy().SetHealth(1)
	if g.shop.ui != nil || !g.shop.stale {
		t.Fatalf("economy change rebuilt a closed shop: ui=%v stale=%v", g.shop.ui != nil, g.shop.stale)
	}

	var res economy.Result
	g.session.RequestPurchase("life", func(r economy.Result) { res = r })
	g.session.Step()
	if !res.OK {
		t.Fatalf("purchase failed: %+v", res)
	}
	g.shop.setMessage(purchaseMessage("life", res))
	if g.shop.ui != nil || g.shop.message == "" {
		t.Fatalf("reply should only record the message, ui=%v message=%q", g.shop.ui != nil, g.shop.message)
	}
}

func TestPurchaseMessage(t *testing.T) {
	cases := []struct {
		name string
		res  economy.Result
		want string
	}{
		{"message_wins", economy.Result{OK: true, Message: "Bought Life"}, "Bought Life"},
		{"reason_fallback", economy.Result{Reason: economy.ReasonInsufficientFunds}, "life: insufficient funds"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := purchaseMessage("life", c.res); got != c.want {
				t.Fatalf("purchaseMessage = %q, want %q", got, c.want)
			}
		})
	}
}
