//go:build js && wasm

// Command client is the browser half of the site, compiled to WebAssembly.
// It reveals sections as they scroll into view and switches locale and theme
// in place, reusing the translation tables the server renders with.
package main

import (
	"strconv"
	"strings"
	"syscall/js"
	"time"

	"nexadev.com/landing-web/internal/i18n"
	"nexadev.com/landing-web/internal/nav"
	"nexadev.com/landing-web/internal/reveal"
	"nexadev.com/landing-web/internal/theme"
	"nexadev.com/landing-web/locales"
)

// glassOffset is the scroll position past which the navigation bar turns
// translucent.
const glassOffset = 50

var (
	document js.Value
	window   js.Value
	console  js.Value
)

func main() {
	document = js.Global().Get("document")
	window = js.Global().Get("window")
	console = js.Global().Get("console")

	bundle, err := i18n.Load(locales.FS, i18n.Locales...)
	if err != nil {
		console.Call("error", "client: "+err.Error())
		revealAll()
		return
	}
	c := &client{locale: i18n.NewStore(bundle)}
	whenReady(c.start)

	// Keep the WASM runtime alive
	select {}
}

type client struct {
	locale *i18n.Store
	theme  *theme.Store
	mounts []*reveal.Mounted
}

func whenReady(fn func()) {
	if document.Get("readyState").String() != "loading" {
		fn()
		return
	}
	var ready js.Func
	ready = js.FuncOf(func(js.Value, []js.Value) any {
		ready.Release()
		fn()
		return nil
	})
	document.Call("addEventListener", "DOMContentLoaded", ready)
}

func (c *client) start() {
	root := document.Get("documentElement")
	if l, ok := i18n.ParseLocale(root.Get("lang").String()); ok {
		_ = c.locale.SetLocale(l)
	}
	initial := theme.Light
	if root.Get("classList").Call("contains", "dark").Bool() {
		initial = theme.Dark
	}
	c.theme = theme.NewStore(initial)

	onClick("[data-locale-toggle]", func() { c.applyLocale(c.locale.Toggle()) })
	onClick("[data-theme-toggle]", func() { c.applyTheme(c.theme.Toggle()) })
	c.wireMenu()
	c.wireScroll()
	c.mountReveals()
}

// onClick intercepts clicks on every element matching sel. The elements are
// plain links, so without the client they still work by reloading.
func onClick(sel string, fn func()) {
	h := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			args[0].Call("preventDefault")
		}
		fn()
		return nil
	})
	each(sel, func(el js.Value) { el.Call("addEventListener", "click", h) })
}

func (c *client) applyLocale(loc i18n.Locale) {
	tr := c.locale.Translator()
	document.Get("documentElement").Set("lang", loc.String())
	document.Set("title", tr.T("site.name")+" | "+tr.T("hero.slogan"))

	each("[data-i18n]", func(el js.Value) {
		el.Set("textContent", tr.T(el.Call("getAttribute", "data-i18n").String()))
	})
	each("[data-i18n-aria]", func(el js.Value) {
		el.Call("setAttribute", "aria-label", tr.T(el.Call("getAttribute", "data-i18n-aria").String()))
	})
	each("[data-i18n-placeholder]", func(el js.Value) {
		el.Call("setAttribute", "placeholder", tr.T(el.Call("getAttribute", "data-i18n-placeholder").String()))
	})
	each("[data-l10n]", func(el js.Value) {
		el.Set("hidden", el.Call("getAttribute", "data-l10n").String() != loc.String())
	})
	each("[data-locale-input]", func(el js.Value) { el.Set("value", loc.String()) })
	each("[data-locale-code]", func(el js.Value) { el.Set("textContent", loc.Other().String()) })
	c.updateToggleLinks()
}

func (c *client) applyTheme(th theme.Theme) {
	root := document.Get("documentElement")
	root.Get("classList").Call("toggle", "dark", th == theme.Dark)
	root.Call("setAttribute", "data-theme", th.String())
	c.updateToggleLinks()
}

func (c *client) updateToggleLinks() {
	loc, th := c.locale.Locale(), c.theme.Theme()
	each("[data-locale-toggle]", func(el js.Value) { el.Set("href", nav.PrefsHref(loc.Other(), th)) })
	each("[data-theme-toggle]", func(el js.Value) { el.Set("href", nav.PrefsHref(loc, th.Other())) })
}

func (c *client) wireMenu() {
	bar := document.Call("querySelector", "[data-nav]")
	if bar.IsNull() {
		return
	}
	setOpen := func(open bool) {
		bar.Get("classList").Call("toggle", "menu-open", open)
		each("[data-menu-toggle]", func(el js.Value) {
			el.Call("setAttribute", "aria-expanded", strconv.FormatBool(open))
		})
	}
	toggle := js.FuncOf(func(js.Value, []js.Value) any {
		setOpen(!bar.Get("classList").Call("contains", "menu-open").Bool())
		return nil
	})
	each("[data-menu-toggle]", func(el js.Value) { el.Call("addEventListener", "click", toggle) })
	closeMenu := js.FuncOf(func(js.Value, []js.Value) any {
		setOpen(false)
		return nil
	})
	each("[data-nav-link]", func(el js.Value) { el.Call("addEventListener", "click", closeMenu) })
}

func (c *client) wireScroll() {
	bar := document.Call("querySelector", "[data-nav]")
	if bar.IsNull() {
		return
	}
	update := func() {
		bar.Get("classList").Call("toggle", "glass", window.Get("scrollY").Float() > glassOffset)
	}
	onScroll := js.FuncOf(func(js.Value, []js.Value) any {
		update()
		return nil
	})
	window.Call("addEventListener", "scroll", onScroll, map[string]any{"passive": true})
	update()
}

func (c *client) mountReveals() {
	vp := newViewport()
	each("[data-reveal-section]", func(el js.Value) {
		cfg := reveal.DefaultConfig
		if ms, err := strconv.Atoi(strings.TrimSpace(el.Call("getAttribute", "data-reveal-stagger").String())); err == nil {
			cfg.Stagger = time.Duration(ms) * time.Millisecond
		}
		c.mounts = append(c.mounts, reveal.Mount(vp, section{el: el}, cfg, nil))
	})
}

func revealAll() {
	each("[data-reveal]", func(el js.Value) { elementTarget{el: el}.Reveal() })
}
