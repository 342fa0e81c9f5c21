package shop

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/jumpy/prefabs"
)

var ErrScriptHook = errors.New("shop: script hook failed")

// Scripts define buy(shop) and sell(shop); the dispatcher below picks one.
const hookDispatchScript = `
if __phase == "buy" {
	buy(__shop)
} else if __phase == "sell" {
	sell(__shop)
}
`

// ScriptHooks runs a tengo script for buy and sell.
type ScriptHooks struct {
	path     string
	compiled *tengo.Compiled
}

// NewScriptHooks loads path through prefabs.LoadScript and compiles it.
func NewScriptHooks(path string) (*ScriptHooks, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("shop: load script %s: %w", path, err)
	}
	return CompileScriptHooks(path, src)
}

func CompileScriptHooks(path string, src []byte) (*ScriptHooks, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + hookDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__shop", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("shop: compile script %s: %w", path, err)
	}
	return &ScriptHooks{path: path, compiled: compiled}, nil
}

func (h *ScriptHooks) Path() string {
	if h == nil {
		return ""
	}
	return h.path
}

func (h *ScriptHooks) Buy(item *Item, l Ledger) error {
	return h.run("buy", item, l)
}

func (h *ScriptHooks) Sell(item *Item, l Ledger) error {
	return h.run("sell", item, l)
}

func (h *ScriptHooks) run(phase string, item *Item, l Ledger) error {
	if h == nil || h.compiled == nil {
		return fmt.Errorf("%w: nil script", ErrScriptHook)
	}

	var failure string
	if err := h.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := h.compiled.Set("__shop", buildShopObject(item, l, &failure)); err != nil {
		return err
	}
	if err := h.compiled.Run(); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrScriptHook, h.path, phase, err)
	}
	if failure != "" {
		return fmt.Errorf("%w: %s %s: %s", ErrScriptHook, item.ID(), phase, failure)
	}
	return nil
}

func buildShopObject(item *Item, l Ledger, failure *string) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"item":  &tengo.String{Value: item.ID()},
		"name":  &tengo.String{Value: item.Name()},
		"price": &tengo.Int{Value: int64(item.Price())},
	}

	values["coins"] = &tengo.UserFunction{Name: "coins", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if l == nil {
			return &tengo.Int{}, nil
		}
		return &tengo.Int{Value: int64(l.Coins())}, nil
	}}

	values["health"] = &tengo.UserFunction{Name: "health", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if l == nil {
			return &tengo.Int{}, nil
		}
		return &tengo.Int{Value: int64(l.Health())}, nil
	}}

	values["owned"] = &tengo.UserFunction{Name: "owned", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if l == nil || len(args) < 1 {
			return &tengo.Int{}, nil
		}
		id, _ := tengo.ToString(args[0])
		return &tengo.Int{Value: int64(l.Owned(id))}, nil
	}}

	values["grant"] = &tengo.UserFunction{Name: "grant", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if l == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		id, ok := tengo.ToString(args[0])
		if !ok || strings.TrimSpace(id) == "" {
			return tengo.FalseValue, nil
		}
		n := 1
		if len(args) > 1 {
			if v, ok := tengo.ToInt(args[1]); ok {
				n = v
			}
		}
		l.Grant(id, n)
		return tengo.TrueValue, nil
	}}

	values["heal"] = &tengo.UserFunction{Name: "heal", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if l == nil {
			return tengo.FalseValue, nil
		}
		n := 1
		if len(args) > 0 {
			if v, ok := tengo.ToInt(args[0]); ok {
				n = v
			}
		}
		l.Heal(n)
		return tengo.TrueValue, nil
	}}

	values["fail"] = &tengo.UserFunction{Name: "fail", Value: func(args ...tengo.Object) (tengo.Object, error) {
		msg := "failed"
		if len(args) > 0 {
			if s, ok := tengo.ToString(args[0]); ok && s != "" {
				msg = s
			}
		}
		*failure = msg
		return tengo.UndefinedValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			s, _ := tengo.ToString(a)
			parts = append(parts, s)
		}
		log.Printf("Shop: %s: %s", item.ID(), strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}
