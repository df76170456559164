// Package emailjs delivers contact submissions through the EmailJS REST API.
package emailjs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"nexadev.com/landing-web/internal/contact"
)

const (
	DefaultBaseURL = "https://api.emailjs.com"
	defaultTimeout = 10 * time.Second
	sendPath       = "/api/v1.0/email/send"
)

// ErrRejected wraps any non-2xx answer from the API.
var ErrRejected = errors.New("emailjs: request rejected")

// Config identifies the EmailJS service, template and account keys.
type Config struct {
	BaseURL    string
	ServiceID  string
	TemplateID string
	PublicKey  string
	// PrivateKey is sent as accessToken; EmailJS requires it for calls made
	// outside a browser when strict mode is enabled on the account.
	PrivateKey string
	Timeout    time.Duration
}

// Complete reports whether the service, template and public key are all set.
func (c Config) Complete() bool {
	return strings.TrimSpace(c.ServiceID) != "" &&
		strings.TrimSpace(c.TemplateID) != "" &&
		strings.TrimSpace(c.PublicKey) != ""
}

// Client sends template emails. With an incomplete Config it runs in fake
// mode: submissions are logged and reported as delivered.
type Client struct {
	cfg    Config
	http   *resty.Client
	logger *zap.Logger
}

var _ contact.Delivery = (*Client)(nil)

// NewClient builds a client; logger may be nil.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	h := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "text/plain, application/json")
	return &Client{cfg: cfg, http: h, logger: logger}
}

// Configured reports whether real deliveries are made.
func (c *Client) Configured() bool { return c != nil && c.cfg.Complete() }

// Send implements contact.Delivery.
func (c *Client) Send(ctx context.Context, sub contact.Submission) error {
	if !c.Configured() {
		return c.fakeSend(sub)
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(c.payload(sub)).
		Post(sendPath)
	if err != nil {
		return fmt.Errorf("emailjs: send: %w", err)
	}
	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode(), truncate(resp.String(), 256))
	}
	return nil
}

type sendPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (c *Client) payload(sub contact.Submission) sendPayload {
	return sendPayload{
		ServiceID:   c.cfg.ServiceID,
		TemplateID:  c.cfg.TemplateID,
		UserID:      c.cfg.PublicKey,
		AccessToken: c.cfg.PrivateKey,
		TemplateParams: map[string]string{
			"name":  sub.Draft.Name,
			"email": sub.Draft.Email,
			// the account's template names the phone/company field "company"
			"company":       sub.Draft.Phone,
			"message":       sub.Draft.Message,
			"locale":        sub.Locale.String(),
			"submission_id": sub.ID,
		},
	}
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
