package handlers

import (
	"html/template"

	"nexadev.com/landing-web/internal/contact"
	"nexadev.com/landing-web/internal/content"
	"nexadev.com/landing-web/internal/i18n"
)

// Label is a translated string with the key it came from. Templates emit the
// key as data-i18n so the browser client can retranslate in place.
type Label struct {
	Key  string
	Text string
}

func label(tr i18n.Translator, key string) Label { return Label{Key: key, Text: tr.T(key)} }

// Variant is one locale's rendering of site content that is not a
// translation key. All variants are rendered; inactive ones are hidden.
type Variant struct {
	Lang   string
	Text   string
	HTML   template.HTML
	Active bool
}

func textVariants(l content.Localized, active i18n.Locale) []Variant {
	out := make([]Variant, 0, len(i18n.Locales))
	for _, loc := range i18n.Locales {
		out = append(out, Variant{Lang: loc.String(), Text: l.In(loc), Active: loc == active})
	}
	return out
}

func htmlVariants(render func(i18n.Locale) template.HTML, active i18n.Locale) []Variant {
	out := make([]Variant, 0, len(i18n.Locales))
	for _, loc := range i18n.Locales {
		out = append(out, Variant{Lang: loc.String(), HTML: render(loc), Active: loc == active})
	}
	return out
}

// Reveal carries the reveal pacing of a section, in milliseconds.
type Reveal struct {
	Stagger int
}

type HeroView struct {
	Slogan   Label
	Subtitle Label
	CTA      Label
	Badges   []BadgeView
}

type BadgeView struct {
	Label Label
	Icon  string
}

type ServicesView struct {
	Reveal   Reveal
	Title    Label
	Subtitle Label
	Cards    []ServiceCard
}

type ServiceCard struct {
	Title        Label
	Description  Label
	Icon         string
	Gradient     string
	Technologies []string
	LearnMore    Label
}

type PortfolioView struct {
	Reveal    Reveal
	Title     Label
	Subtitle  Label
	LearnMore Label
	Source    Label
	Cards     []ProjectCard
}

type ProjectCard struct {
	Slug         string
	Title        []Variant
	Description  []Variant
	AltText      string
	Image        string
	Category     Label
	Color        string
	Technologies []string
	URL          string
	SourceURL    string
}

type AboutView struct {
	Reveal    Reveal
	Title     Label
	Values    []ValueCard
	Stats     []StatCard
	TeamTitle Label
	TeamBlurb []Variant
}

type ValueCard struct {
	Title       Label
	Description Label
	Icon        string
	Color       string
}

type StatCard struct {
	Number string
	Label  Label
	Icon   string
}

type ContactView struct {
	Reveal   Reveal
	Title    Label
	Subtitle Label
	InfoHead Label
	Follow   Label
	Channels []ChannelCard
	Socials  []content.Social
	Form     ContactForm
}

type ChannelCard struct {
	Kind  string
	Label Label
	Value string
	Href  string
	Icon  string
}

// FieldView is one input of the contact form.
type FieldView struct {
	Name        string
	Label       Label
	Value       string
	Required    bool
	Type        string
	Problem     *Label
	Placeholder Label
}

// NoticeView is the toast shown after a submission resolves.
type NoticeView struct {
	Kind  string
	Title Label
	Body  Label
}

// ContactForm is the contact form fragment. It renders on its own for htmx
// posts and inside the full page otherwise.
type ContactForm struct {
	Lang      string
	CSRFToken string
	Action    string
	Fields    []FieldView
	Submit    Label
	Sending   Label
	Busy      bool
	Notice    *NoticeView
}

// ContactFormInput is what BuildContactForm needs from the caller.
type ContactFormInput struct {
	Translator i18n.Translator
	CSRFToken  string
	Draft      contact.Draft
	Problems   contact.Problems
	Busy       bool
	Notice     *contact.Notification
}

var fieldSpecs = []struct {
	field       contact.Field
	labelKey    string
	typ         string
	placeholder string
	required    bool
}{
	{contact.FieldName, "contact.form.name", "text", "contact.form.name", true},
	{contact.FieldEmail, "contact.form.email", "email", "contact.form.email", true},
	{contact.FieldPhone, "contact.form.company", "text", "contact.form.phone", false},
	{contact.FieldMessage, "contact.form.message", "textarea", "contact.form.message", true},
}

// BuildContactForm renders the form state: current values, per-field
// problems, the busy flag and an optional notice.
func BuildContactForm(in ContactFormInput) ContactForm {
	tr := in.Translator
	f := ContactForm{
		Lang:      tr.Locale().String(),
		CSRFToken: in.CSRFToken,
		Action:    "/contact",
		Submit:    label(tr, "contact.form.send"),
		Sending:   label(tr, "contact.form.sending"),
		Busy:      in.Busy,
	}
	for _, fd := range fieldSpecs {
		fv := FieldView{
			Name:        string(fd.field),
			Label:       label(tr, fd.labelKey),
			Value:       in.Draft.Get(fd.field),
			Required:    fd.required,
			Type:        fd.typ,
			Placeholder: label(tr, fd.placeholder),
		}
		if key, ok := in.Problems[fd.field]; ok {
			l := label(tr, key)
			fv.Problem = &l
		}
		f.Fields = append(f.Fields, fv)
	}
	if in.Notice != nil {
		f.Notice = &NoticeView{
			Kind:  string(in.Notice.Kind),
			Title: label(tr, in.Notice.TitleKey),
			Body:  label(tr, in.Notice.BodyKey),
		}
	}
	return f
}
