//go:build js && wasm

package main

import (
	"syscall/js"

	"nexadev.com/landing-web/internal/reveal"
)

// each calls fn for every element matching sel, in document order.
func each(sel string, fn func(js.Value)) {
	list := document.Call("querySelectorAll", sel)
	for i := 0; i < list.Length(); i++ {
		fn(list.Index(i))
	}
}

// elementTarget reveals a DOM element by adding the visible class.
// classList.add is idempotent and harmless on a detached node.
type elementTarget struct{ el js.Value }

func (t elementTarget) Reveal() { t.el.Get("classList").Call("add", "visible") }

// section is a reveal container over the [data-reveal] descendants of el.
type section struct{ el js.Value }

func (s section) Targets() []reveal.Target {
	list := s.el.Call("querySelectorAll", "[data-reveal]")
	out := make([]reveal.Target, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		out = append(out, elementTarget{el: list.Index(i)})
	}
	return out
}

// viewport adapts IntersectionObserver. Browsers without it report every
// section as fully visible straight away.
type viewport struct {
	ctor js.Value
}

func newViewport() viewport {
	return viewport{ctor: js.Global().Get("IntersectionObserver")}
}

func (v viewport) Observe(c reveal.Container, threshold float64, fn func(float64)) func() {
	s, ok := c.(section)
	if !ok || v.ctor.IsUndefined() {
		fn(1)
		return func() {}
	}
	var cb js.Func
	cb = js.FuncOf(func(_ js.Value, args []js.Value) any {
		entries := args[0]
		for i := 0; i < entries.Length(); i++ {
			e := entries.Index(i)
			if ratio, ok := reveal.Crossing(e.Get("isIntersecting").Bool(), e.Get("intersectionRatio").Float(), threshold); ok {
				fn(ratio)
			}
		}
		return nil
	})
	obs := v.ctor.New(cb, map[string]any{"threshold": threshold})
	obs.Call("observe", s.el)
	return func() {
		obs.Call("disconnect")
		// the callback may still be on the stack; release it afterwards
		go cb.Release()
	}
}
