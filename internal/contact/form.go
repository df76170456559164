// Package contact implements the contact form submission flow: a draft, a
// single-flight submit against a Delivery, and the resulting notifications.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"nexadev.com/landing-web/internal/i18n"
)

// ErrInFlight is returned when a submit or edit arrives while a submission
// is still pending.
var ErrInFlight = errors.New("contact: submission already in flight")

// ErrUnknownField is returned by Edit for a field outside the draft.
var ErrUnknownField = errors.New("contact: unknown field")

// Field names a draft field; the values match the HTML input names.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldMessage Field = "message"
)

// Fields lists the draft fields in form order.
var Fields = []Field{FieldName, FieldEmail, FieldPhone, FieldMessage}

// Draft is the form content for one submission attempt.
type Draft struct {
	Name    string
	Email   string
	Phone   string // phone number or company, free text
	Message string
}

// IsZero reports whether every field is empty.
func (d Draft) IsZero() bool { return d == Draft{} }

// Get returns the value of field.
func (d Draft) Get(field Field) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldMessage:
		return d.Message
	}
	return ""
}

func (d *Draft) set(field Field, value string) error {
	switch field {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldMessage:
		d.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}
	return nil
}

// Status is the lifecycle of a form.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusResolved
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusResolved:
		return "resolved"
	default:
		return "idle"
	}
}

// Outcome tags a resolved submission.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	default:
		return "none"
	}
}

// Submission is what a Delivery sends.
type Submission struct {
	ID          string
	Draft       Draft
	Locale      i18n.Locale
	SubmittedAt time.Time
}

// Delivery forwards a submission to the outside world.
type Delivery interface {
	Send(ctx context.Context, sub Submission) error
}

// DeliveryFunc adapts a function to Delivery.
type DeliveryFunc func(ctx context.Context, sub Submission) error

// Send calls f.
func (f DeliveryFunc) Send(ctx context.Context, sub Submission) error { return f(ctx, sub) }

// NotificationKind distinguishes toast styles.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyFailure NotificationKind = "failure"
	NotifyBusy    NotificationKind = "busy"
)

// Notification is a user-facing message expressed as translation keys.
type Notification struct {
	Kind     NotificationKind
	TitleKey string
	BodyKey  string
}

var (
	successNotice = Notification{Kind: NotifySuccess, TitleKey: "contact.toast.success.title", BodyKey: "contact.toast.success.body"}
	failureNotice = Notification{Kind: NotifyFailure, TitleKey: "contact.toast.failure.title", BodyKey: "contact.toast.failure.body"}
	busyNotice    = Notification{Kind: NotifyBusy, TitleKey: "contact.toast.busy.title", BodyKey: "contact.toast.busy.body"}
)

// NoticeFor returns the notification shown for an outcome; ErrInFlight maps
// to the busy notice.
func NoticeFor(outcome Outcome, err error) (Notification, bool) {
	if errors.Is(err, ErrInFlight) {
		return busyNotice, true
	}
	switch outcome {
	case OutcomeSucceeded:
		return successNotice, true
	case OutcomeFailed:
		return failureNotice, true
	}
	return Notification{}, false
}

// Notifier receives notifications once a submission resolves.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

// Notify calls f.
func (f NotifierFunc) Notify(n Notification) { f(n) }

// Form is the state of one contact form.
type Form struct {
	delivery Delivery
	notifier Notifier
	logger   *zap.Logger
	newID    func() string
	now      func() time.Time

	mu      sync.Mutex
	draft   Draft
	status  Status
	outcome Outcome
	lastID  string
	touched time.Time
}

// Option configures a Form.
type Option func(*Form)

// WithNotifier sets the notification sink.
func WithNotifier(n Notifier) Option { return func(f *Form) { f.notifier = n } }

// WithLogger sets the logger used for delivery errors.
func WithLogger(l *zap.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithIDSource overrides submission ID generation.
func WithIDSource(fn func() string) Option { return func(f *Form) { f.newID = fn } }

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option { return func(f *Form) { f.now = now } }

// NewForm returns an idle form with an empty draft.
func NewForm(d Delivery, opts ...Option) *Form {
	f := &Form{
		delivery: d,
		logger:   zap.NewNop(),
		newID:    func() string { return ulid.Make().String() },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.touched = f.now()
	return f
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Status returns the current status.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Outcome returns the outcome of the last resolved submission, or OutcomeNone.
func (f *Form) Outcome() Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcome
}

// Busy reports whether a submission is pending; the submit control is
// disabled while it is true.
func (f *Form) Busy() bool { return f.Status() == StatusPending }

// LastSubmissionID returns the ID of the most recent submission.
func (f *Form) LastSubmissionID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastID
}

func (f *Form) lastTouched() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched
}

// Edit sets one field and returns the form to idle.
func (f *Form) Edit(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == StatusPending {
		return ErrInFlight
	}
	if err := f.draft.set(field, value); err != nil {
		return err
	}
	f.reset()
	return nil
}

// SetDraft replaces the whole draft and returns the form to idle.
func (f *Form) SetDraft(d Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == StatusPending {
		return ErrInFlight
	}
	f.draft = d
	f.reset()
	return nil
}

func (f *Form) reset() {
	f.status = StatusIdle
	f.outcome = OutcomeNone
	f.touched = f.now()
}

// Submit sends the current draft. While a previous call is pending it
// returns ErrInFlight without contacting the delivery. Delivery failures are
// not returned: they resolve the form as failed, keep the draft, log the
// cause and notify the user with a generic message.
func (f *Form) Submit(ctx context.Context, locale i18n.Locale) (Outcome, error) {
	f.mu.Lock()
	if f.status == StatusPending {
		f.mu.Unlock()
		return OutcomeNone, ErrInFlight
	}
	f.status = StatusPending
	f.outcome = OutcomeNone
	f.touched = f.now()
	sub := Submission{
		ID:          f.newID(),
		Draft:       f.draft,
		Locale:      locale,
		SubmittedAt: f.touched,
	}
	f.lastID = sub.ID
	f.mu.Unlock()

	err := f.send(ctx, sub)

	f.mu.Lock()
	f.status = StatusResolved
	f.touched = f.now()
	if err == nil {
		f.outcome = OutcomeSucceeded
		f.draft = Draft{}
	} else {
		f.outcome = OutcomeFailed
	}
	outcome := f.outcome
	f.mu.Unlock()

	if err != nil {
		f.logger.Error("contact submission failed",
			zap.String("submission_id", sub.ID),
			zap.String("locale", sub.Locale.String()),
			zap.Error(err),
		)
	} else {
		f.logger.Info("contact submission delivered",
			zap.String("submission_id", sub.ID),
			zap.String("locale", sub.Locale.String()),
		)
	}
	if f.notifier != nil {
		n, _ := NoticeFor(outcome, nil)
		f.notifier.Notify(n)
	}
	return outcome, nil
}

func (f *Form) send(ctx context.Context, sub Submission) (err error) {
	if f.delivery == nil {
		return errors.New("contact: no delivery configured")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("contact: delivery panic: %v", r)
		}
	}()
	return f.delivery.Send(ctx, sub)
}

// TrimDraft trims surrounding whitespace from every field.
func TrimDraft(d Draft) Draft {
	return Draft{
		Name:    strings.TrimSpace(d.Name),
		Email:   strings.TrimSpace(d.Email),
		Phone:   strings.TrimSpace(d.Phone),
		Message: strings.TrimSpace(d.Message),
	}
}
