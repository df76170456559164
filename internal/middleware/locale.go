package middleware

import (
	"net/http"

	"nexadev.com/landing-web/internal/i18n"
	"nexadev.com/landing-web/internal/theme"
)

// LocaleParam is the query or form field selecting the render locale.
const LocaleParam = "hl"

// ThemeParam is the query field selecting the render theme.
const ThemeParam = "theme"

// Locale provides a fresh i18n.Store per request. Every render starts on the
// primary locale; an hl query or form value switches it for this request only.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := i18n.NewStore(bundle)
			if l, ok := i18n.ParseLocale(r.FormValue(LocaleParam)); ok {
				_ = store.SetLocale(l)
			}
			w.Header().Set("Content-Language", store.Locale().String())
			next.ServeHTTP(w, r.WithContext(i18n.WithStore(r.Context(), store)))
		})
	}
}

// Theme provides a theme.Store per request, light unless ?theme=dark.
func Theme(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t, _ := theme.Parse(r.URL.Query().Get(ThemeParam))
		ctx := theme.WithStore(r.Context(), theme.NewStore(t))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
