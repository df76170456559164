package contact

import (
	"net/mail"
	"strings"

	"golang.org/x/net/idna"
)

const (
	msgRequired     = "contact.form.required"
	msgInvalidEmail = "contact.form.invalidEmail"
)

// Problems maps a field to the translation key of its error.
type Problems map[Field]string

// Validate applies the same constraints the browser enforces on the form:
// name, email and message are required and the email must be an address.
func Validate(d Draft) Problems {
	d = TrimDraft(d)
	p := Problems{}
	if d.Name == "" {
		p[FieldName] = msgRequired
	}
	if d.Message == "" {
		p[FieldMessage] = msgRequired
	}
	switch {
	case d.Email == "":
		p[FieldEmail] = msgRequired
	case !validEmail(d.Email):
		p[FieldEmail] = msgInvalidEmail
	}
	return p
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	// single-label domains such as localhost are valid for type=email
	_, err = idna.Lookup.ToASCII(s[at+1:])
	return err == nil
}
