package handlers

import (
	"html/template"
	"time"

	"nexadev.com/landing-web/internal/content"
	"nexadev.com/landing-web/internal/i18n"
	"nexadev.com/landing-web/internal/nav"
	"nexadev.com/landing-web/internal/seo"
	"nexadev.com/landing-web/internal/theme"
)

// HomeData is the view model for the page. Sections appear in this order:
// navigation, hero, services, portfolio, about, contact, footer.
type HomeData struct {
	Lang       string
	Theme      string
	ThemeClass string
	SEO        seo.Meta
	Analytics  Analytics

	Nav       NavView
	Hero      HeroView
	Services  ServicesView
	Portfolio PortfolioView
	About     AboutView
	Contact   ContactView
	Footer    FooterView

	tr i18n.Translator
}

// T translates key in the page locale; templates use it for one-off strings.
func (d HomeData) T(key string) string { return d.tr.T(key) }

// NavView is the navigation bar with its toggles.
type NavView struct {
	Brand        Label
	Home         Label
	Items        []nav.RenderedItem
	CTA          Label
	Menu         Label
	LocaleToggle ToggleView
	ThemeToggle  ToggleView
}

// ToggleView is an icon control. Href is the no-JS fallback.
type ToggleView struct {
	AriaLabel Label
	Current   string
	Next      string
	Href      string
}

// FooterView is the page footer.
type FooterView struct {
	Brand     Label
	Tagline   Label
	QuickHead Label
	ServHead  Label
	ContHead  Label
	Nav       nav.Footer
	Socials   []content.Social
	Channels  []ChannelCard
	Year      int
	Rights    Label
	MadeWith  Label
}

// HomeInput carries the explicit dependencies of BuildHomeData.
type HomeInput struct {
	Translator i18n.Translator
	Theme      theme.Theme
	Site       *content.Site
	SiteURL    string
	Analytics  Analytics
	Form       ContactForm
	Now        time.Time
}

// BuildHomeData composes the page from translations, theme and site content.
func BuildHomeData(in HomeInput) HomeData {
	tr := in.Translator
	loc := tr.Locale()
	site := in.Site
	if site == nil {
		site = &content.Site{}
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	if in.Theme != theme.Dark {
		in.Theme = theme.Light
	}

	d := HomeData{
		Lang:       loc.String(),
		Theme:      in.Theme.String(),
		ThemeClass: in.Theme.Class(),
		Analytics:  in.Analytics,
		tr:         tr,
	}
	d.SEO = buildSEO(tr, site, in.SiteURL)
	d.Nav = buildNav(tr, in.Theme)
	d.Hero = buildHero(tr, site)
	d.Services = buildServices(tr, site)
	d.Portfolio = buildPortfolio(tr, site)
	d.About = buildAbout(tr, site)
	d.Contact = buildContact(tr, site, in.Form)
	d.Footer = buildFooter(tr, site, in.Now)
	return d
}

func buildNav(tr i18n.Translator, th theme.Theme) NavView {
	loc := tr.Locale()
	return NavView{
		Brand: label(tr, "site.name"),
		Home:  label(tr, "nav.home"),
		Items: nav.Build(tr, ""),
		CTA:   label(tr, "hero.cta"),
		Menu:  label(tr, "nav.menu"),
		LocaleToggle: ToggleView{
			AriaLabel: label(tr, "nav.toggle.locale"),
			Current:   loc.String(),
			Next:      loc.Other().String(),
			Href:      nav.PrefsHref(loc.Other(), th),
		},
		ThemeToggle: ToggleView{
			AriaLabel: label(tr, "nav.toggle.theme"),
			Current:   th.String(),
			Next:      th.Other().String(),
			Href:      nav.PrefsHref(loc, th.Other()),
		},
	}
}

func buildHero(tr i18n.Translator, site *content.Site) HeroView {
	h := HeroView{
		Slogan:   label(tr, "hero.slogan"),
		Subtitle: label(tr, "hero.subtitle"),
		CTA:      label(tr, "hero.cta"),
	}
	for _, b := range site.Hero.Badges {
		h.Badges = append(h.Badges, BadgeView{Label: label(tr, b.Key), Icon: b.Icon})
	}
	return h
}

func buildServices(tr i18n.Translator, site *content.Site) ServicesView {
	v := ServicesView{
		Reveal:   Reveal{Stagger: site.Reveal.Services},
		Title:    label(tr, "services.title"),
		Subtitle: label(tr, "services.subtitle"),
	}
	for _, s := range site.Services {
		v.Cards = append(v.Cards, ServiceCard{
			Title:        label(tr, s.TitleKey()),
			Description:  label(tr, s.DescriptionKey()),
			Icon:         s.Icon,
			Gradient:     s.Gradient,
			Technologies: s.Technologies,
			LearnMore:    label(tr, "portfolio.learnMore"),
		})
	}
	return v
}

func buildPortfolio(tr i18n.Translator, site *content.Site) PortfolioView {
	loc := tr.Locale()
	v := PortfolioView{
		Reveal:    Reveal{Stagger: site.Reveal.Portfolio},
		Title:     label(tr, "portfolio.title"),
		Subtitle:  label(tr, "portfolio.subtitle"),
		LearnMore: label(tr, "portfolio.learnMore"),
		Source:    label(tr, "portfolio.source"),
	}
	for _, p := range site.Projects {
		v.Cards = append(v.Cards, ProjectCard{
			Slug:         p.Slug,
			Title:        textVariants(p.Title, loc),
			Description:  htmlVariants(func(l i18n.Locale) template.HTML { return site.ProjectDescription(p, l) }, loc),
			AltText:      p.Title.In(loc),
			Image:        p.Image,
			Category:     label(tr, p.Category),
			Color:        p.Color,
			Technologies: p.Technologies,
			URL:          p.URL,
			SourceURL:    p.SourceURL,
		})
	}
	return v
}

func buildAbout(tr i18n.Translator, site *content.Site) AboutView {
	v := AboutView{
		Reveal:    Reveal{Stagger: site.Reveal.About},
		Title:     label(tr, "about.title"),
		TeamTitle: label(tr, "about.team.title"),
		TeamBlurb: htmlVariants(site.TeamBlurb, tr.Locale()),
	}
	for _, val := range site.Values {
		v.Values = append(v.Values, ValueCard{
			Title:       label(tr, "about."+val.Key+".title"),
			Description: label(tr, "about."+val.Key+".text"),
			Icon:        val.Icon,
			Color:       val.Color,
		})
	}
	for _, s := range site.Stats {
		v.Stats = append(v.Stats, StatCard{Number: s.Number, Label: label(tr, s.Label), Icon: s.Icon})
	}
	return v
}

func channels(tr i18n.Translator, site *content.Site) []ChannelCard {
	out := make([]ChannelCard, 0, len(site.Channels))
	for _, c := range site.Channels {
		out = append(out, ChannelCard{Kind: c.Kind, Label: label(tr, c.Label), Value: c.Value, Href: c.Href, Icon: c.Icon})
	}
	return out
}

func buildContact(tr i18n.Translator, site *content.Site, form ContactForm) ContactView {
	return ContactView{
		Reveal:   Reveal{Stagger: site.Reveal.Contact},
		Title:    label(tr, "contact.title"),
		Subtitle: label(tr, "contact.subtitle"),
		InfoHead: label(tr, "contact.info.title"),
		Follow:   label(tr, "contact.follow"),
		Channels: channels(tr, site),
		Socials:  site.ContactSocials(),
		Form:     form,
	}
}

func buildFooter(tr i18n.Translator, site *content.Site, now time.Time) FooterView {
	links := make([]nav.Link, 0, len(site.FooterServices))
	for _, l := range site.FooterServices {
		links = append(links, nav.Link{Href: l.Href, LabelKey: l.Key})
	}
	return FooterView{
		Brand:     label(tr, "site.name"),
		Tagline:   label(tr, "footer.tagline"),
		QuickHead: label(tr, "footer.quickLinks"),
		ServHead:  label(tr, "footer.services"),
		ContHead:  label(tr, "footer.contact"),
		Nav:       nav.BuildFooter(tr, links),
		Socials:   site.Socials,
		Channels:  channels(tr, site),
		Year:      now.Year(),
		Rights:    label(tr, "footer.rights"),
		MadeWith:  label(tr, "footer.madeWith"),
	}
}

func buildSEO(tr i18n.Translator, site *content.Site, siteURL string) seo.Meta {
	loc := tr.Locale()
	langs := make([]string, 0, len(i18n.Locales))
	for _, l := range i18n.Locales {
		langs = append(langs, l.String())
	}
	name := tr.T("site.name")
	m := seo.Meta{
		Title:       name + " | " + tr.T("hero.slogan"),
		Description: tr.T("site.description"),
		Robots:      "index,follow",
		OG: seo.OpenGraph{
			Title:       name,
			Description: tr.T("hero.subtitle"),
			Type:        "website",
			SiteName:    name,
			Locale:      loc.String(),
		},
		Twitter: seo.Twitter{Card: "summary_large_image"},
	}
	if siteURL != "" {
		m.Canonical = seo.LocalizedURL(siteURL, loc.String(), i18n.Primary.String())
		m.OG.URL = m.Canonical
		m.Alternates = seo.Alternates(siteURL, langs, i18n.Primary.String())
	}

	var cp seo.ContactPoint
	cp.Languages = langs
	for _, c := range site.Channels {
		switch c.Kind {
		case "email":
			cp.Email = c.Value
		case "phone":
			cp.Telephone = c.Value
		}
	}
	var sameAs []string
	for _, s := range site.Socials {
		sameAs = append(sameAs, s.Href)
	}
	m.AddJSONLD(seo.Organization(name, siteURL, "", cp, sameAs))
	m.AddJSONLD(seo.WebSite(name, siteURL, loc.String()))
	works := make([]seo.Work, 0, len(site.Projects))
	for _, p := range site.Projects {
		works = append(works, seo.Work{Name: p.Title.In(loc), Image: p.Image, Keywords: p.Technologies})
	}
	if len(works) > 0 {
		m.AddJSONLD(seo.Portfolio(works))
	}
	return m
}
