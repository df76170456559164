package nav

import (
	"net/url"

	"nexadev.com/landing-web/internal/i18n"
	"nexadev.com/landing-web/internal/theme"
)

// PrefsHref links to the page rendered in lang and th. Defaults are left out
// of the query, so the primary locale in light theme is "/".
func PrefsHref(lang i18n.Locale, th theme.Theme) string {
	q := url.Values{}
	if lang.Valid() && lang != i18n.Primary {
		q.Set("hl", lang.String())
	}
	if th == theme.Dark {
		q.Set("theme", th.String())
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
