package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Locale is one of the two display languages of the site.
type Locale string

const (
	Primary   Locale = "en"
	Secondary Locale = "fr"
)

// Locales lists the supported locales, primary first.
var Locales = []Locale{Primary, Secondary}

// ErrUnsupportedLocale is returned when a locale outside Locales is requested.
var ErrUnsupportedLocale = errors.New("i18n: unsupported locale")

func (l Locale) String() string { return string(l) }

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool { return l == Primary || l == Secondary }

// Other returns the opposite member of the locale pair.
func (l Locale) Other() Locale {
	if l == Secondary {
		return Primary
	}
	return Secondary
}

// Tag returns the BCP 47 tag for l.
func (l Locale) Tag() language.Tag { return language.Make(string(l)) }

// ParseLocale maps BCP 47 input ("fr-FR", "EN") onto the supported set.
func ParseLocale(s string) (Locale, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	l := Locale(base.String())
	if !l.Valid() {
		return "", false
	}
	return l, true
}

// Bundle holds the translation tables of every supported locale.
type Bundle struct {
	bundle     *goi18n.Bundle
	localizers map[Locale]*goi18n.Localizer
	tables     map[Locale]map[string]string
}

// Load reads <locale>.toml for each locale from fsys. Every requested locale
// must be present; the primary locale is always loaded.
func Load(fsys fs.FS, locales ...Locale) (*Bundle, error) {
	if len(locales) == 0 {
		locales = Locales
	}
	b := &Bundle{
		bundle:     goi18n.NewBundle(Primary.Tag()),
		localizers: map[Locale]*goi18n.Localizer{},
		tables:     map[Locale]map[string]string{},
	}
	for _, l := range locales {
		if !l.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, string(l))
		}
		raw, err := fs.ReadFile(fsys, string(l)+".toml")
		if err != nil {
			return nil, fmt.Errorf("i18n: load locale %s: %w", l, err)
		}
		var table map[string]string
		if err := toml.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("i18n: unmarshal %s: %w", l, err)
		}
		msgs := make([]*goi18n.Message, 0, len(table))
		for id, text := range table {
			msgs = append(msgs, &goi18n.Message{ID: id, Other: text})
		}
		if err := b.bundle.AddMessages(l.Tag(), msgs...); err != nil {
			return nil, fmt.Errorf("i18n: register %s: %w", l, err)
		}
		b.tables[l] = table
	}
	if _, ok := b.tables[Primary]; !ok {
		return nil, fmt.Errorf("i18n: primary locale %s not loaded", Primary)
	}
	for l := range b.tables {
		b.localizers[l] = goi18n.NewLocalizer(b.bundle, string(l))
	}
	return b, nil
}

// T returns the string for key in locale. A key missing from that locale's
// table comes back unchanged; there is no fallback to the other locale.
func (b *Bundle) T(locale Locale, key string) string {
	if b == nil || key == "" {
		return key
	}
	loc, ok := b.localizers[locale]
	if !ok {
		return key
	}
	// go-i18n substitutes the default language on a miss and reports it as
	// an error, so any error means "not in this table".
	msg, err := loc.Localize(&goi18n.LocalizeConfig{MessageID: key})
	if err != nil || msg == "" {
		return key
	}
	return msg
}

// Has reports whether locale's table defines key.
func (b *Bundle) Has(locale Locale, key string) bool {
	_, ok := b.tables[locale][key]
	return ok
}

// Supported returns the loaded locales, primary first.
func (b *Bundle) Supported() []Locale {
	out := make([]Locale, 0, len(b.tables))
	for _, l := range Locales {
		if _, ok := b.tables[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Keys returns the sorted keys of locale's table.
func (b *Bundle) Keys(locale Locale) []string {
	table := b.tables[locale]
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Table returns a copy of locale's table.
func (b *Bundle) Table(locale Locale) map[string]string {
	out := make(map[string]string, len(b.tables[locale]))
	for k, v := range b.tables[locale] {
		out[k] = v
	}
	return out
}

// Missing lists, per locale, the keys another loaded locale defines but it
// does not. An empty result means the tables are complete.
func (b *Bundle) Missing() map[Locale][]string {
	all := map[string]struct{}{}
	for _, table := range b.tables {
		for k := range table {
			all[k] = struct{}{}
		}
	}
	out := map[Locale][]string{}
	for l, table := range b.tables {
		for k := range all {
			if _, ok := table[k]; !ok {
				out[l] = append(out[l], k)
			}
		}
		sort.Strings(out[l])
	}
	for l, keys := range out {
		if len(keys) == 0 {
			delete(out, l)
		}
	}
	return out
}
