package i18n

import (
	"context"
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"nexadev.com/landing-web/locales"
)

func loadTestBundle(t *testing.T) *Bundle {
	t.Helper()
	b, err := Load(os.DirFS("../../locales"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return b
}

func TestTranslationTablesAreComplete(t *testing.T) {
	b := loadTestBundle(t)
	if missing := b.Missing(); len(missing) != 0 {
		t.Fatalf("tables out of sync: %v", missing)
	}
	for _, from := range b.Supported() {
		for _, key := range b.Keys(from) {
			for _, to := range b.Supported() {
				if got := b.T(to, key); got == "" || got == key {
					t.Errorf("key %q (from %s) has no %s translation, got %q", key, from, to, got)
				}
			}
		}
	}
}

func TestEmbeddedTablesMatchDisk(t *testing.T) {
	disk := loadTestBundle(t)
	embedded, err := Load(locales.FS)
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	for _, l := range Locales {
		if len(disk.Keys(l)) != len(embedded.Keys(l)) {
			t.Fatalf("%s: disk has %d keys, embedded %d", l, len(disk.Keys(l)), len(embedded.Keys(l)))
		}
	}
}

func TestMissingKeyReturnsKey(t *testing.T) {
	b := loadTestBundle(t)
	for _, l := range Locales {
		if got := b.T(l, "does.not.exist"); got != "does.not.exist" {
			t.Fatalf("%s: expected raw key, got %q", l, got)
		}
	}
	if got := b.T(Locale("de"), "nav.services"); got != "nav.services" {
		t.Fatalf("unknown locale should degrade to key, got %q", got)
	}
}

func TestNoFallbackToOtherLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"en.toml": {Data: []byte("\"only.en\" = \"English only\"\n\"both\" = \"Both\"\n")},
		"fr.toml": {Data: []byte("\"both\" = \"Les deux\"\n")},
	}
	b, err := Load(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.T(Secondary, "only.en"); got != "only.en" {
		t.Fatalf("expected key for untranslated entry, got %q", got)
	}
	if got := b.T(Primary, "only.en"); got != "English only" {
		t.Fatalf("unexpected primary value %q", got)
	}
	missing := b.Missing()
	if len(missing[Secondary]) != 1 || missing[Secondary][0] != "only.en" {
		t.Fatalf("expected only.en missing from fr, got %v", missing)
	}
}

func TestLoadRequiresEveryLocale(t *testing.T) {
	fsys := fstest.MapFS{"en.toml": {Data: []byte("\"a\" = \"A\"\n")}}
	if _, err := Load(fsys); err == nil {
		t.Fatal("expected error when fr.toml is absent")
	}
	if _, err := Load(fsys, Primary, Locale("de")); !errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("expected ErrUnsupportedLocale, got %v", err)
	}
}

func TestToggleIsInvolution(t *testing.T) {
	s := NewStore(loadTestBundle(t))
	if s.Locale() != Primary {
		t.Fatalf("store should start on primary, got %s", s.Locale())
	}
	before := s.T("nav.about")
	if got := s.Toggle(); got != Secondary {
		t.Fatalf("expected secondary after one toggle, got %s", got)
	}
	if s.T("nav.about") == before {
		t.Fatalf("expected a different string under %s", s.Locale())
	}
	s.Toggle()
	if s.Locale() != Primary || s.T("nav.about") != before {
		t.Fatalf("two toggles should restore %s/%q, got %s/%q", Primary, before, s.Locale(), s.T("nav.about"))
	}
}

func TestSetLocaleTakesEffectImmediately(t *testing.T) {
	s := NewStore(loadTestBundle(t))
	if err := s.SetLocale(Secondary); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := s.T("contact.title"); got != "Contactez-nous" {
		t.Fatalf("expected french title, got %q", got)
	}
	if err := s.SetLocale(Locale("xx")); !errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("expected ErrUnsupportedLocale, got %v", err)
	}
	if s.Locale() != Secondary {
		t.Fatalf("failed SetLocale must not change the locale")
	}
}

func TestTranslatorIsPinned(t *testing.T) {
	s := NewStore(loadTestBundle(t))
	tr := s.Translator()
	s.Toggle()
	if tr.Locale() != Primary || tr.T("nav.about") != "About" {
		t.Fatalf("translator should keep its locale, got %s/%q", tr.Locale(), tr.T("nav.about"))
	}
}

func TestFromContextWithoutProvider(t *testing.T) {
	if _, err := FromContext(context.Background()); !errors.Is(err, ErrNoProvider) {
		t.Fatalf("expected ErrNoProvider, got %v", err)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("MustFromContext should panic without a provider")
		}
	}()
	MustFromContext(context.Background())
}

func TestFromContextWithProvider(t *testing.T) {
	s := NewStore(loadTestBundle(t))
	got, err := FromContext(WithStore(context.Background(), s))
	if err != nil || got != s {
		t.Fatalf("expected attached store, got %v, %v", got, err)
	}
}

func TestParseLocale(t *testing.T) {
	cases := map[string]Locale{"en": Primary, "EN": Primary, "en-US": Primary, "fr": Secondary, "fr-CA": Secondary}
	for in, want := range cases {
		got, ok := ParseLocale(in)
		if !ok || got != want {
			t.Errorf("ParseLocale(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	for _, in := range []string{"", "de", "not a tag"} {
		if _, ok := ParseLocale(in); ok {
			t.Errorf("ParseLocale(%q) should fail", in)
		}
	}
}
