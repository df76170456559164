package main

import (
	"net/http"

	"go.uber.org/zap"

	"nexadev.com/landing-web/internal/contact"
	handlersPkg "nexadev.com/landing-web/internal/handlers"
	"nexadev.com/landing-web/internal/i18n"
	mw "nexadev.com/landing-web/internal/middleware"
	"nexadev.com/landing-web/internal/observability"
	"nexadev.com/landing-web/internal/theme"
)

// prefs returns the request's translator and theme. Both stores are
// installed by middleware; a handler mounted without them is a wiring bug
// and answers 500.
func prefs(w http.ResponseWriter, r *http.Request) (i18n.Translator, theme.Theme, bool) {
	store, err := i18n.FromContext(r.Context())
	if err != nil {
		serverError(w, r, "localization unavailable", err)
		return i18n.Translator{}, "", false
	}
	ts, err := theme.FromContext(r.Context())
	if err != nil {
		serverError(w, r, "theme unavailable", err)
		return i18n.Translator{}, "", false
	}
	return store.Translator(), ts.Theme(), true
}

// HomeHandler renders the landing page. The contact form shows the
// session's current draft, so a failed submission survives a reload.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	tr, th, ok := prefs(w, r)
	if !ok {
		return
	}
	form := contactDesk.Form(mw.GetSession(r).ID)
	in := handlersPkg.ContactFormInput{
		Translator: tr,
		CSRFToken:  mw.CSRFToken(r),
		Draft:      form.Draft(),
		Busy:       form.Busy(),
	}
	renderPage(w, r, http.StatusOK, tr, th, in)
}

func renderPage(w http.ResponseWriter, r *http.Request, status int, tr i18n.Translator, th theme.Theme, in handlersPkg.ContactFormInput) {
	site, err := siteSource.Site()
	if err != nil {
		observability.FromContext(r.Context()).Error("load site content", zap.String("path", siteSource.Path()), zap.Error(err))
		http.Error(w, "content unavailable", http.StatusInternalServerError)
		return
	}
	vm := handlersPkg.BuildHomeData(handlersPkg.HomeInput{
		Translator: tr,
		Theme:      th,
		Site:       site,
		SiteURL:    siteURL,
		Analytics:  analytics,
		Form:       handlersPkg.BuildContactForm(in),
	})
	render(w, r, status, "base", vm)
}

// noticePtr returns a pointer to n, or nil when there is nothing to show.
func noticePtr(n contact.Notification, ok bool) *contact.Notification {
	if !ok {
		return nil
	}
	return &n
}
