package main

import (
	"errors"
	"net/http"

	"nexadev.com/landing-web/internal/contact"
	handlersPkg "nexadev.com/landing-web/internal/handlers"
	"nexadev.com/landing-web/internal/i18n"
	mw "nexadev.com/landing-web/internal/middleware"
	"nexadev.com/landing-web/internal/theme"
)

// contactSentEvent is triggered on the client after a delivered submission.
const contactSentEvent = "contact:sent"

// ContactHandler accepts the contact form. htmx posts get the form fragment
// back; plain posts get the whole page.
//
//	200 delivered, draft cleared, success toast
//	409 a submission from this session is still in flight
//	422 validation problems, nothing sent
//	502 delivery failed, draft kept, failure toast
func ContactHandler(w http.ResponseWriter, r *http.Request) {
	tr, th, ok := prefs(w, r)
	if !ok {
		return
	}
	draft := contact.TrimDraft(contact.Draft{
		Name:    r.PostFormValue(string(contact.FieldName)),
		Email:   r.PostFormValue(string(contact.FieldEmail)),
		Phone:   r.PostFormValue(string(contact.FieldPhone)),
		Message: r.PostFormValue(string(contact.FieldMessage)),
	})
	form := contactDesk.Form(mw.GetSession(r).ID)
	in := handlersPkg.ContactFormInput{
		Translator: tr,
		CSRFToken:  mw.CSRFToken(r),
		Draft:      draft,
	}

	if problems := contact.Validate(draft); len(problems) > 0 {
		if err := form.SetDraft(draft); errors.Is(err, contact.ErrInFlight) {
			respondBusy(w, r, tr, th, in)
			return
		}
		in.Problems = problems
		respondContact(w, r, http.StatusUnprocessableEntity, tr, th, in)
		return
	}

	if err := form.SetDraft(draft); errors.Is(err, contact.ErrInFlight) {
		respondBusy(w, r, tr, th, in)
		return
	}
	outcome, err := form.Submit(r.Context(), tr.Locale())
	if errors.Is(err, contact.ErrInFlight) {
		respondBusy(w, r, tr, th, in)
		return
	}
	in.Notice = noticePtr(contact.NoticeFor(outcome, err))

	status := http.StatusOK
	switch outcome {
	case contact.OutcomeSucceeded:
		in.Draft = contact.Draft{}
		mw.TriggerEvent(w, contactSentEvent, map[string]string{"id": form.LastSubmissionID()})
	default:
		in.Draft = form.Draft()
		status = http.StatusBadGateway
	}
	respondContact(w, r, status, tr, th, in)
}

func respondBusy(w http.ResponseWriter, r *http.Request, tr i18n.Translator, th theme.Theme, in handlersPkg.ContactFormInput) {
	in.Busy = true
	in.Notice = noticePtr(contact.NoticeFor(contact.OutcomeNone, contact.ErrInFlight))
	respondContact(w, r, http.StatusConflict, tr, th, in)
}

func respondContact(w http.ResponseWriter, r *http.Request, status int, tr i18n.Translator, th theme.Theme, in handlersPkg.ContactFormInput) {
	if mw.IsHTMX(r.Context()) {
		render(w, r, status, "contact-form", handlersPkg.BuildContactForm(in))
		return
	}
	renderPage(w, r, status, tr, th, in)
}

// ContactFormHandler returns the session's form fragment. A busy form polls
// it until the pending submission resolves.
func ContactFormHandler(w http.ResponseWriter, r *http.Request) {
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, "/#contact", http.StatusSeeOther)
		return
	}
	tr, _, ok := prefs(w, r)
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
	if !in.Busy {
		in.Notice = noticePtr(contact.NoticeFor(form.Outcome(), nil))
	}
	render(w, r, http.StatusOK, "contact-form", handlersPkg.BuildContactForm(in))
}
