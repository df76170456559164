package nav

import "nexadev.com/landing-web/internal/i18n"

// Link is a footer entry whose label comes from a translation key.
type Link struct {
	Href     string
	LabelKey string
}

// Footer is the rendered footer navigation.
type Footer struct {
	QuickLinks []RenderedItem
	Services   []RenderedItem
}

// BuildFooter renders the quick links (the same sections as Main) and the
// service links.
func BuildFooter(tr i18n.Translator, services []Link) Footer {
	f := Footer{QuickLinks: render(Main, tr, "")}
	for _, l := range services {
		f.Services = append(f.Services, RenderedItem{
			Href:     l.Href,
			LabelKey: l.LabelKey,
			Label:    tr.T(l.LabelKey),
		})
	}
	return f
}
