package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"nexadev.com/landing-web/internal/i18n"
)

func loadSite(t *testing.T) *Site {
	t.Helper()
	site, err := Load(os.DirFS("../../content"), "site.yaml")
	require.NoError(t, err)
	return site
}

func TestSiteFileLoads(t *testing.T) {
	t.Parallel()

	site := loadSite(t)
	require.Len(t, site.Services, 3)
	require.Len(t, site.Projects, 6)
	require.Len(t, site.Values, 3)
	require.Len(t, site.Stats, 4)
	require.Equal(t, "20+", site.Stats[0].Number)
	require.Equal(t, "99%", site.Stats[3].Number)
	require.Equal(t, 150, site.Reveal.Portfolio)
	require.Equal(t, "+216 29 897 262", site.Channels[1].Value)
	require.Len(t, site.ContactSocials(), 3, "the mail social is footer only")
}

func TestSiteKeysExistInTranslations(t *testing.T) {
	t.Parallel()

	site := loadSite(t)
	bundle, err := i18n.Load(os.DirFS("../../locales"))
	require.NoError(t, err)

	var keys []string
	for _, b := range site.Hero.Badges {
		keys = append(keys, b.Key)
	}
	for _, s := range site.Services {
		keys = append(keys, s.TitleKey(), s.DescriptionKey())
	}
	for _, p := range site.Projects {
		keys = append(keys, p.Category)
	}
	for _, v := range site.Values {
		keys = append(keys, "about."+v.Key+".title", "about."+v.Key+".text")
	}
	for _, s := range site.Stats {
		keys = append(keys, s.Label)
	}
	for _, c := range site.Channels {
		keys = append(keys, c.Label)
	}
	for _, l := range site.FooterServices {
		keys = append(keys, l.Key)
	}
	for _, k := range keys {
		require.True(t, bundle.Has(i18n.Primary, k), "unknown key %q", k)
	}
}

func TestLocalizedFallsBackToPrimary(t *testing.T) {
	t.Parallel()

	l := Localized{"en": "Hello", "fr": "  "}
	require.Equal(t, "Hello", l.In(i18n.Secondary))
	require.Equal(t, "Bonjour", Localized{"en": "Hello", "fr": "Bonjour"}.In(i18n.Secondary))
}

func TestProjectDescriptionRendersMarkdown(t *testing.T) {
	t.Parallel()

	site := loadSite(t)
	html := string(site.ProjectDescription(site.Projects[0], i18n.Primary))
	require.Contains(t, html, "<strong>AI-powered recommendations</strong>")
	require.True(t, strings.HasPrefix(html, "<p>"))

	fr := string(site.ProjectDescription(site.Projects[0], i18n.Secondary))
	require.Contains(t, fr, "recommandations")

	require.Contains(t, string(site.TeamBlurb(i18n.Primary)), "passionate team")
}

func TestRendererSanitizes(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	out := string(r.Render("Hi <script>alert(1)</script> [site](https://example.com) <img src=x onerror=alert(1)>"))
	require.NotContains(t, out, "<script")
	require.NotContains(t, out, "onerror")
	require.Contains(t, out, `href="https://example.com"`)
	require.Contains(t, out, "nofollow")
	require.Empty(t, r.Render("   "))
}

func TestParseRejectsInvalidSite(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("projects:\n  - slug: x\n    title:\n      fr: Seulement\n"))
	require.ErrorIs(t, err, ErrInvalid)

	_, err = Parse([]byte("reveal:\n  about: -5\n"))
	require.ErrorIs(t, err, ErrInvalid)

	_, err = Parse([]byte("services: [\n"))
	require.Error(t, err)

	_, err = Load(fstest.MapFS{}, "site.yaml")
	require.Error(t, err)
}

func TestSourceCachesUntilTTL(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stats:\n  - number: \"1\"\n"), 0o644))

	src := NewSource(path, time.Hour)
	first, err := src.Site()
	require.NoError(t, err)
	require.Equal(t, "1", first.Stats[0].Number)

	require.NoError(t, os.WriteFile(path, []byte("stats:\n  - number: \"2\"\n"), 0o644))
	cached, err := src.Site()
	require.NoError(t, err)
	require.Same(t, first, cached)

	live := NewSource(path, 0)
	got, err := live.Site()
	require.NoError(t, err)
	require.Equal(t, "2", got.Stats[0].Number)
}
