package seo

import (
	"html/template"
	"net/url"
	"strings"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Alternate is an hreflang link.
type Alternate struct {
	Href     string
	Hreflang string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []template.JS
}

// LocalizedURL returns base with the hl parameter set, or base unchanged for
// the default language. A relative or empty base yields a relative URL.
func LocalizedURL(base, lang, defaultLang string) string {
	base = strings.TrimRight(base, "/") + "/"
	if lang == "" || lang == defaultLang {
		return base
	}
	return base + "?" + url.Values{"hl": {lang}}.Encode()
}

// Alternates builds hreflang links for langs plus x-default.
func Alternates(base string, langs []string, defaultLang string) []Alternate {
	out := make([]Alternate, 0, len(langs)+1)
	for _, l := range langs {
		out = append(out, Alternate{Href: LocalizedURL(base, l, defaultLang), Hreflang: l})
	}
	out = append(out, Alternate{Href: LocalizedURL(base, "", defaultLang), Hreflang: "x-default"})
	return out
}

// AddJSONLD appends a schema payload; payloads that fail to encode are dropped.
func (m *Meta) AddJSONLD(v any) {
	if s := JSON(v); s != "" {
		m.JSONLD = append(m.JSONLD, template.JS(s))
	}
}
