package handlers

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nexadev.com/landing-web/internal/contact"
	"nexadev.com/landing-web/internal/content"
	"nexadev.com/landing-web/internal/i18n"
	"nexadev.com/landing-web/internal/theme"
)

func fixtures(t *testing.T) (*i18n.Bundle, *content.Site) {
	t.Helper()
	b, err := i18n.Load(os.DirFS("../../locales"))
	require.NoError(t, err)
	site, err := content.Load(os.DirFS("../../content"), "site.yaml")
	require.NoError(t, err)
	return b, site
}

func TestBuildHomeDataPrimary(t *testing.T) {
	b, site := fixtures(t)
	tr := i18n.NewTranslator(b, i18n.Primary)
	d := BuildHomeData(HomeInput{
		Translator: tr,
		Site:       site,
		SiteURL:    "https://nexadev.example",
		Now:        time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC),
	})

	require.Equal(t, "en", d.Lang)
	require.Equal(t, "light", d.Theme)
	require.Empty(t, d.ThemeClass)
	require.Equal(t, "Our Services", d.Services.Title.Text)
	require.Equal(t, "services.title", d.Services.Title.Key)
	require.Len(t, d.Services.Cards, 3)
	require.Equal(t, 200, d.Services.Reveal.Stagger)
	require.Len(t, d.Portfolio.Cards, 6)
	require.Equal(t, 150, d.Portfolio.Reveal.Stagger)
	require.Len(t, d.About.Stats, 4)
	require.Equal(t, "Happy Clients", d.About.Stats[0].Label.Text)
	require.Equal(t, 2031, d.Footer.Year)
	require.Equal(t, "Get in Touch", d.T("contact.title"))
	require.Equal(t, "missing.key", d.T("missing.key"))

	require.Equal(t, "fr", d.Nav.LocaleToggle.Next)
	require.Equal(t, "/?hl=fr", d.Nav.LocaleToggle.Href)
	require.Equal(t, "/?theme=dark", d.Nav.ThemeToggle.Href)
	require.Equal(t, "Switch language", d.Nav.LocaleToggle.AriaLabel.Text)
}

func TestBuildHomeDataSecondaryDark(t *testing.T) {
	b, site := fixtures(t)
	d := BuildHomeData(HomeInput{
		Translator: i18n.NewTranslator(b, i18n.Secondary),
		Theme:      theme.Dark,
		Site:       site,
	})
	require.Equal(t, "fr", d.Lang)
	require.Equal(t, "dark", d.ThemeClass)
	require.Equal(t, "Contactez-nous", d.Contact.Title.Text)
	require.Equal(t, "/?theme=dark", d.Nav.LocaleToggle.Href, "switching back to en keeps the theme")
	require.Equal(t, "/?hl=fr", d.Nav.ThemeToggle.Href)

	title := d.Portfolio.Cards[0].Title
	require.Len(t, title, 2)
	require.False(t, title[0].Active)
	require.True(t, title[1].Active)
	require.Equal(t, "Plateforme e-commerce", title[1].Text)
	require.Equal(t, "Plateforme e-commerce", d.Portfolio.Cards[0].AltText)
	require.Contains(t, string(d.Portfolio.Cards[0].Description[1].HTML), "<strong>")
}

func TestBuildHomeDataSEO(t *testing.T) {
	b, site := fixtures(t)
	d := BuildHomeData(HomeInput{Translator: i18n.NewTranslator(b, i18n.Secondary), Site: site, SiteURL: "https://nexadev.example"})
	require.Equal(t, "https://nexadev.example/?hl=fr", d.SEO.Canonical)
	require.Len(t, d.SEO.Alternates, 3)
	require.Len(t, d.SEO.JSONLD, 3)

	var org map[string]any
	require.NoError(t, json.Unmarshal([]byte(d.SEO.JSONLD[0]), &org))
	require.Equal(t, "NEXADEV", org["name"])
	require.Equal(t, "nexadevcontact@gmail.com", org["contactPoint"].(map[string]any)["email"])

	d = BuildHomeData(HomeInput{Translator: i18n.NewTranslator(b, i18n.Primary), Site: site})
	require.Empty(t, d.SEO.Canonical)
	require.Empty(t, d.SEO.Alternates)
}

func TestBuildHomeDataWithoutSite(t *testing.T) {
	b, _ := fixtures(t)
	d := BuildHomeData(HomeInput{Translator: i18n.NewTranslator(b, i18n.Primary)})
	require.Empty(t, d.Portfolio.Cards)
	require.Equal(t, "Our Portfolio", d.Portfolio.Title.Text)
}

func TestBuildContactForm(t *testing.T) {
	b, _ := fixtures(t)
	tr := i18n.NewTranslator(b, i18n.Primary)
	notice, _ := contact.NoticeFor(contact.OutcomeFailed, nil)
	f := BuildContactForm(ContactFormInput{
		Translator: tr,
		CSRFToken:  "tok",
		Draft:      contact.Draft{Name: "Ada", Email: "nope"},
		Problems:   contact.Problems{contact.FieldEmail: "contact.form.invalidEmail"},
		Notice:     &notice,
	})

	require.Equal(t, "tok", f.CSRFToken)
	require.Equal(t, "en", f.Lang)
	require.Len(t, f.Fields, 4)
	require.Equal(t, "name", f.Fields[0].Name)
	require.Equal(t, "Ada", f.Fields[0].Value)
	require.Nil(t, f.Fields[0].Problem)
	require.NotNil(t, f.Fields[1].Problem)
	require.Equal(t, "Please enter a valid email address.", f.Fields[1].Problem.Text)
	require.False(t, f.Fields[2].Required, "phone/company is optional")
	require.Equal(t, "textarea", f.Fields[3].Type)
	require.Equal(t, "failure", f.Notice.Kind)
	require.Equal(t, "Error sending message", f.Notice.Title.Text)
}
