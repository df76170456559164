package nav

import (
	"strings"

	"nexadev.com/landing-web/internal/i18n"
)

// Item is an in-page navigation entry.
type Item struct {
	Anchor   string // section id, e.g. "services"
	LabelKey string // i18n key, e.g. "nav.services"
}

// Href returns the fragment link for the item.
func (it Item) Href() string { return "#" + it.Anchor }

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main lists the page sections reachable from the navigation bar, in page order.
var Main = []Item{
	{Anchor: "services", LabelKey: "nav.services"},
	{Anchor: "portfolio", LabelKey: "nav.portfolio"},
	{Anchor: "about", LabelKey: "nav.about"},
	{Anchor: "contact", LabelKey: "nav.contact"},
}

// Build renders Main with labels from tr. current is the active fragment
// ("#about" or "about"); empty marks nothing active.
func Build(tr i18n.Translator, current string) []RenderedItem {
	return render(Main, tr, current)
}

func render(items []Item, tr i18n.Translator, current string) []RenderedItem {
	current = strings.TrimPrefix(strings.TrimSpace(current), "#")
	out := make([]RenderedItem, 0, len(items))
	for _, it := range items {
		out = append(out, RenderedItem{
			Href:     it.Href(),
			LabelKey: it.LabelKey,
			Label:    tr.T(it.LabelKey),
			Active:   current != "" && current == it.Anchor,
		})
	}
	return out
}

// IsSection reports whether anchor names a navigable section.
func IsSection(anchor string) bool {
	anchor = strings.TrimPrefix(anchor, "#")
	for _, it := range Main {
		if it.Anchor == anchor {
			return true
		}
	}
	return false
}
